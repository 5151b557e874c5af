package inference

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"app/internal/apperr"

	"google.golang.org/api/googleapi"
)

// Tier thresholds: how many consecutive requests a tier absorbs before the
// router flips to the other one. The flip takes effect on the next
// invocation; the request that crossed the threshold still runs on the tier
// it incremented.
const (
	FlashThreshold = 50
	ProThreshold   = 15
)

// Extractor is one inference capacity tier.
type Extractor interface {
	Extract(ctx context.Context, imageURL string) (string, error)
}

// TierRouter spreads extraction calls across a fast/cheap tier and an
// accurate/expensive tier using rolling request counts. The counters are
// process-local and reset on restart, which silently restarts rotation at
// the flash tier; rotation is a load-spreading heuristic, not an exact quota
// ledger.
type TierRouter struct {
	mu         sync.Mutex
	flash      Extractor
	pro        Extractor
	flashCount int
	proCount   int
	usePro     bool
}

func NewTierRouter(flash, pro Extractor) *TierRouter {
	return &TierRouter{flash: flash, pro: pro}
}

// Invoke selects the active tier, advances the rotation state, and runs the
// extraction there. Upstream failures are mapped to the pipeline taxonomy;
// there is no local retry.
func (r *TierRouter) Invoke(ctx context.Context, imageURL string) (string, error) {
	r.mu.Lock()
	var tier Extractor
	if r.usePro {
		tier = r.pro
		r.proCount++
		if r.proCount >= ProThreshold {
			r.usePro = false
			r.proCount = 0
		}
	} else {
		tier = r.flash
		r.flashCount++
		if r.flashCount >= FlashThreshold {
			r.usePro = true
			r.flashCount = 0
		}
	}
	r.mu.Unlock()

	text, err := tier.Extract(ctx, imageURL)
	if err != nil {
		return "", mapExtractError(err)
	}
	return text, nil
}

func mapExtractError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", apperr.ErrQuotaExceeded, err)
		case http.StatusInternalServerError:
			return fmt.Errorf("%w: %v", apperr.ErrUpstreamFault, err)
		}
	}
	return fmt.Errorf("%w: %v", apperr.ErrInferenceFailed, err)
}
