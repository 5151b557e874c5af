package inference

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"app/internal/apperr"

	"google.golang.org/api/googleapi"
)

type fakeExtractor struct {
	name  string
	calls int
	err   error
}

func (f *fakeExtractor) Extract(ctx context.Context, imageURL string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.name, nil
}

func TestRouterFlipsAfterFlashThreshold(t *testing.T) {
	flash := &fakeExtractor{name: "flash"}
	pro := &fakeExtractor{name: "pro"}
	r := NewTierRouter(flash, pro)

	for i := 0; i < FlashThreshold; i++ {
		got, err := r.Invoke(context.Background(), "url")
		if err != nil {
			t.Fatalf("invoke %d: %v", i, err)
		}
		if got != "flash" {
			t.Fatalf("invoke %d: expected flash tier, got %s", i, got)
		}
	}
	// The request that crossed the threshold ran on flash; the next one
	// must run on pro with the flash counter reset.
	got, err := r.Invoke(context.Background(), "url")
	if err != nil {
		t.Fatal(err)
	}
	if got != "pro" {
		t.Fatalf("expected pro tier after %d flash calls, got %s", FlashThreshold, got)
	}
	if r.flashCount != 0 {
		t.Errorf("expected flash counter reset to 0, got %d", r.flashCount)
	}
}

func TestRouterFlipsBackAfterProThreshold(t *testing.T) {
	flash := &fakeExtractor{name: "flash"}
	pro := &fakeExtractor{name: "pro"}
	r := NewTierRouter(flash, pro)
	r.usePro = true

	for i := 0; i < ProThreshold; i++ {
		got, _ := r.Invoke(context.Background(), "url")
		if got != "pro" {
			t.Fatalf("invoke %d: expected pro tier, got %s", i, got)
		}
	}
	got, _ := r.Invoke(context.Background(), "url")
	if got != "flash" {
		t.Fatalf("expected flash tier after %d pro calls, got %s", ProThreshold, got)
	}
	if r.proCount != 0 {
		t.Errorf("expected pro counter reset to 0, got %d", r.proCount)
	}
}

func TestRouterErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"quota", &googleapi.Error{Code: http.StatusTooManyRequests}, apperr.ErrQuotaExceeded},
		{"upstream fault", &googleapi.Error{Code: http.StatusInternalServerError}, apperr.ErrUpstreamFault},
		{"bad request", &googleapi.Error{Code: http.StatusBadRequest}, apperr.ErrInferenceFailed},
		{"other", errors.New("connection reset"), apperr.ErrInferenceFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewTierRouter(&fakeExtractor{name: "flash", err: tt.err}, &fakeExtractor{name: "pro"})
			_, err := r.Invoke(context.Background(), "url")
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRouterSingleAttempt(t *testing.T) {
	flash := &fakeExtractor{name: "flash", err: errors.New("boom")}
	pro := &fakeExtractor{name: "pro"}
	r := NewTierRouter(flash, pro)

	_, _ = r.Invoke(context.Background(), "url")
	if flash.calls != 1 {
		t.Errorf("expected exactly one attempt on flash, got %d", flash.calls)
	}
	if pro.calls != 0 {
		t.Errorf("expected no failover attempt on pro, got %d", pro.calls)
	}
}
