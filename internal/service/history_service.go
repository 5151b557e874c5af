package service

import (
	"context"

	"app/internal/cache"
	"app/internal/model"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

// HistoryService serves a user's recent extractions through the read cache.
type HistoryService interface {
	GetHistoryPage(ctx context.Context, userID string, page, limit int) ([]model.ProcessedImage, error)
}

type historyService struct {
	images repository.ImageRepository
	cache  *cache.HistoryCache
	logger zerolog.Logger
}

func NewHistoryService(images repository.ImageRepository, c *cache.HistoryCache, logger zerolog.Logger) HistoryService {
	return &historyService{
		images: images,
		cache:  c,
		logger: logger.With().Str("service", "HistoryService").Logger(),
	}
}

// GetHistoryPage returns the user's cached page when present, ignoring the
// requested page/limit for that call; the cache stores only the most
// recently fetched page. On a miss it queries the store newest-first with
// offset pagination and fills the cache.
func (s *historyService) GetHistoryPage(ctx context.Context, userID string, page, limit int) ([]model.ProcessedImage, error) {
	if cached, ok := s.cache.Get(userID); ok {
		return cached, nil
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	records, err := s.images.GetByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	s.cache.Set(userID, records)
	s.logger.Debug().Str("user_id", userID).Int("items", len(records)).Msg("History fetched from store")
	return records, nil
}
