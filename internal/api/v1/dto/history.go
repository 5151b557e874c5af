package dto

import "app/internal/model"

// HistoryQueryDTO carries the parsed pagination query parameters.
type HistoryQueryDTO struct {
	Page  int `validate:"gte=1"`
	Limit int `validate:"gte=1,lte=100"`
}

// HistoryItemDTO is one past extraction as the client renders it.
type HistoryItemDTO struct {
	ID               string             `json:"id"`
	OriginalFileName string             `json:"originalFileName"`
	ProcessedAt      string             `json:"processedAt"`
	ImageDownloadURL string             `json:"imageDownloadURL"`
	CSVDownloadURL   string             `json:"csvDownloadURL"`
	Preview          []model.PreviewRow `json:"preview"`
}

// HistoryResponse wraps the history page.
type HistoryResponse struct {
	History []HistoryItemDTO `json:"history"`
}
