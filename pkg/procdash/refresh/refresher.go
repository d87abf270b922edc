package refresh

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ukaji3/procdash-go/internal/logger"
	"github.com/ukaji3/procdash-go/pkg/procdash"
	"github.com/ukaji3/procdash-go/pkg/procdash/models"
	"github.com/ukaji3/procdash-go/pkg/procdash/source"
)

// RetryPolicy bounds fetch retries.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

// Refresher fetches the dataset and republishes the dashboard when the
// blob version changes.
type Refresher struct {
	src   source.Source
	theme *models.Theme
	slot  *Slot
	retry RetryPolicy

	// serialises passes so a slow pass cannot overwrite a newer one
	runMu sync.Mutex

	errMu   sync.RWMutex
	lastErr error
}

// New returns a Refresher publishing into slot.
func New(src source.Source, theme *models.Theme, slot *Slot, retry RetryPolicy) *Refresher {
	return &Refresher{src: src, theme: theme, slot: slot, retry: retry}
}

// Slot returns the slot the refresher publishes into.
func (r *Refresher) Slot() *Slot { return r.slot }

// Source returns the underlying source.
func (r *Refresher) Source() source.Source { return r.src }

// LastError returns the error of the most recent pass, or nil.
func (r *Refresher) LastError() error {
	r.errMu.RLock()
	defer r.errMu.RUnlock()
	return r.lastErr
}

func (r *Refresher) setErr(err error) {
	r.errMu.Lock()
	r.lastErr = err
	r.errMu.Unlock()
}

// Refresh fetches the latest blob and renders it if its version is new.
// It reports whether a new snapshot was published. On failure the previous
// snapshot stays in place.
func (r *Refresher) Refresh(ctx context.Context) (bool, error) {
	r.runMu.Lock()
	defer r.runMu.Unlock()

	blob, err := source.Retry(ctx, r.retry.Attempts, r.retry.Backoff, r.src.Latest)
	if err != nil {
		err = fmt.Errorf("fetch dataset from %s: %w", r.src.Name(), err)
		r.setErr(err)
		return false, err
	}
	if blob.Version == r.slot.Version() {
		logger.Debugf("dataset %s unchanged (version %s)", r.src.Name(), blob.Version)
		r.setErr(nil)
		return false, nil
	}

	dash, err := procdash.Run(blob.Data, r.theme)
	if err != nil {
		err = fmt.Errorf("render dataset version %s: %w", blob.Version, err)
		r.setErr(err)
		return false, err
	}
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	r.slot.Store(&Snapshot{
		Version:   blob.Version,
		Origin:    blob.Origin,
		ModTime:   blob.ModTime,
		LoadedAt:  time.Now(),
		Dashboard: dash,
	})
	r.setErr(nil)
	logger.Infof("dashboard refreshed from %s (version %s)", blob.Origin, blob.Version)
	return true, nil
}

// Run refreshes every interval and whenever trigger fires, until ctx is done.
// A nil trigger polls only.
func (r *Refresher) Run(ctx context.Context, interval time.Duration, trigger <-chan struct{}) error {
	if interval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %s", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		case <-trigger:
		}
		if _, err := r.Refresh(ctx); err != nil && ctx.Err() == nil {
			logger.Errorf("dashboard refresh failed: %v", err)
		}
	}
}
