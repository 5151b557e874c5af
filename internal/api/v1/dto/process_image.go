package dto

import "app/internal/model"

// ProcessImageResponse is returned for a successful extraction. TotalTime is
// elapsed wall-clock milliseconds from request start to response; it is
// reported for observability only.
type ProcessImageResponse struct {
	DocID             string             `json:"docId"`
	Preview           []model.PreviewRow `json:"preview"`
	CSVURL            string             `json:"csvUrl"`
	NewCredits        int                `json:"newCredits"`
	NewTotalDocuments int                `json:"newTotalDocuments"`
	NewPagesDigitized int                `json:"newPagesDigitized"`
	TotalTime         int64              `json:"totalTime"`
}

// ErrorResponse is the single failure body shape for every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}
