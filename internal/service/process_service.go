package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"app/internal/apperr"
	"app/internal/imaging"
	"app/internal/model"
	"app/internal/preview"
	"app/internal/repository"
	"app/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Invoker runs one tier-routed extraction call. Satisfied by
// inference.TierRouter.
type Invoker interface {
	Invoke(ctx context.Context, imageURL string) (string, error)
}

// ProcessResult is the successful outcome of one pipeline run.
type ProcessResult struct {
	DocID   string
	Preview []model.PreviewRow
	CSVURL  string
	Ledger  model.LedgerUpdate
}

// ProcessService runs the image extraction pipeline for one request.
type ProcessService interface {
	Process(ctx context.Context, userID, fileName string, fileData []byte) (*ProcessResult, error)
}

type processService struct {
	users     repository.UserRepository
	images    repository.ImageRepository
	store     storage.ObjectStore
	inference Invoker
	urlTTL    time.Duration
	logger    zerolog.Logger
}

func NewProcessService(
	users repository.UserRepository,
	images repository.ImageRepository,
	store storage.ObjectStore,
	inference Invoker,
	urlTTL time.Duration,
	logger zerolog.Logger,
) ProcessService {
	return &processService{
		users:     users,
		images:    images,
		store:     store,
		inference: inference,
		urlTTL:    urlTTL,
		logger:    logger.With().Str("service", "ProcessService").Logger(),
	}
}

// Process executes the pipeline steps strictly in order: credit pre-check,
// upload, inference, validation, result persistence, charge, history record.
// Each step fails fast with no retry. Objects already written to storage are
// not rolled back when a later step fails; unreferenced orphans only cost
// storage.
func (s *processService) Process(ctx context.Context, userID, fileName string, fileData []byte) (*ProcessResult, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.logger.Warn().Str("user_id", userID).Msg("User document does not exist")
		return nil, apperr.ErrAccountNotFound
	}
	if user.CreditsRemaining <= 0 {
		s.logger.Warn().Str("user_id", userID).Int("credits", user.CreditsRemaining).Msg("Insufficient credits")
		return nil, apperr.ErrInsufficientCredits
	}
	if len(fileData) == 0 {
		return nil, apperr.ErrNoFile
	}

	compressed, err := imaging.Downscale(fileData)
	if err != nil {
		return nil, fmt.Errorf("compress upload: %w", err)
	}

	imageKey := fmt.Sprintf("%s/%s_%s", userID, uuid.NewString(), fileName)
	if err := s.store.Put(ctx, imageKey, compressed, "image/jpeg"); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorageFailure, err)
	}
	imageURL, err := s.store.SignedReadURL(ctx, imageKey, s.urlTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorageFailure, err)
	}

	csvText, err := s.inference.Invoke(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	// The model emits the literal token ERROR for inputs it cannot read as a
	// document. No charge, no record.
	if strings.EqualFold(strings.TrimSpace(csvText), "ERROR") {
		s.logger.Warn().Str("user_id", userID).Msg("Image not recognized as a document")
		return nil, apperr.ErrUnprocessableImage
	}

	csvKey := fmt.Sprintf("%s/%s_results.csv", userID, uuid.NewString())
	if err := s.store.Put(ctx, csvKey, []byte(csvText), "text/csv"); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorageFailure, err)
	}
	csvURL, err := s.store.SignedReadURL(ctx, csvKey, s.urlTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStorageFailure, err)
	}

	ledger, err := s.users.ChargeCredit(ctx, userID)
	if err != nil {
		return nil, err
	}

	record, err := s.images.Insert(ctx, &model.ProcessedImage{
		UserID:           userID,
		OriginalFileName: fileName,
		ImageDownloadURL: imageURL,
		CSVDownloadURL:   csvURL,
		Preview:          preview.Parse(csvText),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("doc_id", record.ID).
		Int("new_credits", ledger.NewCredits).
		Msg("Image processed")

	return &ProcessResult{
		DocID:   record.ID,
		Preview: record.Preview,
		CSVURL:  csvURL,
		Ledger:  *ledger,
	}, nil
}
