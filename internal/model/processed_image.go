package model

import "time"

// PreviewRow maps a CSV column header to the value in that row. Rows with
// fewer fields than headers simply omit the trailing keys.
type PreviewRow map[string]string

// ProcessedImage records one completed extraction. Rows are immutable once
// written; nothing in this service updates or deletes them.
type ProcessedImage struct {
	ID               string       `db:"id" json:"id"`
	UserID           string       `db:"user_id" json:"user_id"`
	OriginalFileName string       `db:"original_file_name" json:"original_file_name"`
	ProcessedAt      time.Time    `db:"processed_at" json:"processed_at"`
	ImageDownloadURL string       `db:"image_download_url" json:"image_download_url"`
	CSVDownloadURL   string       `db:"csv_download_url" json:"csv_download_url"`
	Preview          []PreviewRow `db:"preview" json:"preview"`
}
