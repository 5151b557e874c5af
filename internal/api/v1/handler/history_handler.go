package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"app/internal/api/v1/dto"
	"app/internal/apperr"
	"app/internal/middleware"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// HistoryHandler handles GET /userHistory.
type HistoryHandler struct {
	historyService service.HistoryService
	validate       *validator.Validate
	logger         zerolog.Logger
}

func NewHistoryHandler(historyService service.HistoryService, v *validator.Validate, logger zerolog.Logger) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
		validate:       v,
		logger:         logger.With().Str("handler", "HistoryHandler").Logger(),
	}
}

// RegisterRoutes mounts the history route behind auth.
func (h *HistoryHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/userHistory", authMw(http.HandlerFunc(h.getUserHistory)))
}

func (h *HistoryHandler) getUserHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, apperr.Message(apperr.ErrUnauthenticated))
		return
	}

	query := dto.HistoryQueryDTO{Page: 1, Limit: 10}
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			query.Page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			query.Limit = n
		}
	}
	if err := h.validate.Struct(&query); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid pagination parameters")
		return
	}

	records, err := h.historyService.GetHistoryPage(r.Context(), userID, query.Page, query.Limit)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Error fetching user history")
		if errors.Is(err, apperr.ErrIndexNotReady) {
			respondError(w, http.StatusInternalServerError, apperr.Message(apperr.ErrIndexNotReady))
			return
		}
		respondError(w, http.StatusInternalServerError, "An error occurred while fetching user history")
		return
	}

	items := make([]dto.HistoryItemDTO, 0, len(records))
	for _, rec := range records {
		items = append(items, dto.HistoryItemDTO{
			ID:               rec.ID,
			OriginalFileName: rec.OriginalFileName,
			ProcessedAt:      rec.ProcessedAt.UTC().Format(time.RFC3339),
			ImageDownloadURL: rec.ImageDownloadURL,
			CSVDownloadURL:   rec.CSVDownloadURL,
			Preview:          rec.Preview,
		})
	}
	respondJSON(w, http.StatusOK, dto.HistoryResponse{History: items})
}
