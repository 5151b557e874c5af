package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/api/v1/dto"
	"app/internal/apperr"
	"app/internal/middleware"
	"app/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type fakeHistoryService struct {
	records  []model.ProcessedImage
	err      error
	gotPage  int
	gotLimit int
}

func (f *fakeHistoryService) GetHistoryPage(ctx context.Context, userID string, page, limit int) ([]model.ProcessedImage, error) {
	f.gotPage = page
	f.gotLimit = limit
	return f.records, f.err
}

func historyRequest(t *testing.T, svc *fakeHistoryService, userID, query string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/userHistory"+query, nil)
	if userID != "" {
		req = req.WithContext(context.WithValue(req.Context(), middleware.UserContextKey, userID))
	}
	rec := httptest.NewRecorder()
	h := NewHistoryHandler(svc, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())
	h.getUserHistory(rec, req)
	return rec
}

func TestUserHistorySuccess(t *testing.T) {
	processedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := &fakeHistoryService{records: []model.ProcessedImage{{
		ID:               "doc-1",
		OriginalFileName: "scan.png",
		ProcessedAt:      processedAt,
		ImageDownloadURL: "https://signed.example/img",
		CSVDownloadURL:   "https://signed.example/csv",
		Preview:          []model.PreviewRow{{"a": "1"}},
	}}}
	rec := historyRequest(t, svc, "u1", "?page=2&limit=5")

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotPage != 2 || svc.gotLimit != 5 {
		t.Errorf("expected page=2 limit=5, got page=%d limit=%d", svc.gotPage, svc.gotLimit)
	}
	var resp dto.HistoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.History) != 1 {
		t.Fatalf("expected 1 item, got %d", len(resp.History))
	}
	item := resp.History[0]
	if item.ID != "doc-1" || item.OriginalFileName != "scan.png" {
		t.Errorf("unexpected item: %+v", item)
	}
	if item.ProcessedAt != "2024-06-01T12:00:00Z" {
		t.Errorf("expected ISO-8601 timestamp, got %q", item.ProcessedAt)
	}
}

func TestUserHistoryDefaultsPagination(t *testing.T) {
	svc := &fakeHistoryService{}
	rec := historyRequest(t, svc, "u1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d", rec.Code)
	}
	if svc.gotPage != 1 || svc.gotLimit != 10 {
		t.Errorf("expected defaults page=1 limit=10, got page=%d limit=%d", svc.gotPage, svc.gotLimit)
	}
}

func TestUserHistoryEmptyIsAnEmptyList(t *testing.T) {
	rec := historyRequest(t, &fakeHistoryService{}, "u1", "")
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	if string(raw["history"]) != "[]" {
		t.Errorf("expected history to be [], got %s", raw["history"])
	}
}

func TestUserHistoryRejectsBadPagination(t *testing.T) {
	rec := historyRequest(t, &fakeHistoryService{}, "u1", "?limit=1000")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", rec.Code)
	}
}

func TestUserHistoryUnauthenticated(t *testing.T) {
	rec := historyRequest(t, &fakeHistoryService{}, "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", rec.Code)
	}
}

func TestUserHistoryIndexNotReady(t *testing.T) {
	svc := &fakeHistoryService{err: fmt.Errorf("%w: relation missing", apperr.ErrIndexNotReady)}
	rec := historyRequest(t, svc, "u1", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d, want 500", rec.Code)
	}
	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error != apperr.Message(apperr.ErrIndexNotReady) {
		t.Errorf("expected the provisioning message, got %q", resp.Error)
	}
}

func TestUserHistoryGenericFailure(t *testing.T) {
	svc := &fakeHistoryService{err: errors.New("connection refused")}
	rec := historyRequest(t, svc, "u1", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d, want 500", rec.Code)
	}
	var resp dto.ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Error != "An error occurred while fetching user history" {
		t.Errorf("unexpected message %q", resp.Error)
	}
}
