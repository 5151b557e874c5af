package handler

import (
	"io"
	"net/http"
	"time"

	"app/internal/api/v1/dto"
	"app/internal/apperr"
	"app/internal/middleware"
	"app/internal/service"

	"github.com/rs/zerolog"
)

// maxUploadBytes bounds the multipart form held in memory.
const maxUploadBytes = 32 << 20

// ProcessHandler handles POST /processImage.
type ProcessHandler struct {
	processService service.ProcessService
	logger         zerolog.Logger
}

func NewProcessHandler(processService service.ProcessService, logger zerolog.Logger) *ProcessHandler {
	return &ProcessHandler{
		processService: processService,
		logger:         logger.With().Str("handler", "ProcessHandler").Logger(),
	}
}

// RegisterRoutes mounts the processing route behind auth.
func (h *ProcessHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/processImage", authMw(http.HandlerFunc(h.processImage)))
}

func (h *ProcessHandler) processImage(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()

	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, apperr.Message(apperr.ErrUnauthenticated))
		return
	}

	// A missing file is reported by the pipeline after the credit pre-check,
	// so an empty upload from a user with no account still returns 404.
	var fileName string
	var fileData []byte
	if err := r.ParseMultipartForm(maxUploadBytes); err == nil {
		if file, header, err := r.FormFile("image"); err == nil {
			defer file.Close()
			data, readErr := io.ReadAll(file)
			if readErr != nil {
				h.logger.Error().Err(readErr).Msg("Failed to read uploaded file")
				respondError(w, http.StatusInternalServerError, "An error occurred while processing the image")
				return
			}
			fileName = header.Filename
			fileData = data
		}
	}

	result, err := h.processService.Process(r.Context(), userID, fileName, fileData)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Error processing image")
		respondError(w, apperr.Status(err), apperr.Message(err))
		return
	}

	respondJSON(w, http.StatusOK, dto.ProcessImageResponse{
		DocID:             result.DocID,
		Preview:           result.Preview,
		CSVURL:            result.CSVURL,
		NewCredits:        result.Ledger.NewCredits,
		NewTotalDocuments: result.Ledger.NewTotalDocuments,
		NewPagesDigitized: result.Ledger.NewPagesDigitized,
		TotalTime:         time.Since(startTime).Milliseconds(),
	})
}
