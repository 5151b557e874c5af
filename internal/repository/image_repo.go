package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"app/internal/apperr"
	"app/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgUndefinedTable is raised while the schema is still being provisioned.
const pgUndefinedTable = "42P01"

// ImageRepository persists completed extractions. Records are insert-only.
type ImageRepository interface {
	Insert(ctx context.Context, img *model.ProcessedImage) (*model.ProcessedImage, error)
	GetByUserID(ctx context.Context, userID string, limit, offset int) ([]model.ProcessedImage, error)
}

type imageRepo struct {
	pool *pgxpool.Pool
}

func NewImageRepo(pool *pgxpool.Pool) ImageRepository {
	return &imageRepo{pool: pool}
}

// Insert writes the record and returns it with the server-assigned id and
// timestamp filled in.
func (r *imageRepo) Insert(ctx context.Context, img *model.ProcessedImage) (*model.ProcessedImage, error) {
	previewJSON, err := json.Marshal(img.Preview)
	if err != nil {
		return nil, fmt.Errorf("encoding preview: %w", err)
	}

	const q = `
		INSERT INTO processed_images (user_id, original_file_name, image_download_url, csv_download_url, preview)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, processed_at
	`
	row := r.pool.QueryRow(ctx, q, img.UserID, img.OriginalFileName, img.ImageDownloadURL, img.CSVDownloadURL, previewJSON)
	if err := row.Scan(&img.ID, &img.ProcessedAt); err != nil {
		return nil, fmt.Errorf("inserting processed image: %w", err)
	}
	return img, nil
}

func (r *imageRepo) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]model.ProcessedImage, error) {
	const q = `
		SELECT id, user_id, original_file_name, processed_at, image_download_url, csv_download_url, preview
		FROM processed_images
		WHERE user_id = $1
		ORDER BY processed_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, q, userID, limit, offset)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable {
			return nil, fmt.Errorf("%w: %v", apperr.ErrIndexNotReady, err)
		}
		return nil, fmt.Errorf("querying history for user %s: %w", userID, err)
	}
	defer rows.Close()

	var images []model.ProcessedImage
	for rows.Next() {
		var img model.ProcessedImage
		var previewJSON []byte
		if err := rows.Scan(
			&img.ID,
			&img.UserID,
			&img.OriginalFileName,
			&img.ProcessedAt,
			&img.ImageDownloadURL,
			&img.CSVDownloadURL,
			&previewJSON,
		); err != nil {
			return nil, fmt.Errorf("scanning processed image row: %w", err)
		}
		if len(previewJSON) > 0 {
			if err := json.Unmarshal(previewJSON, &img.Preview); err != nil {
				return nil, fmt.Errorf("decoding preview for image %s: %w", img.ID, err)
			}
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return images, nil
}
