// Package scheduler runs the audit log retention job on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/crucial707/league-api/internal/metrics"
	"github.com/robfig/cron/v3"
)

// AuditPurger deletes audit entries created before cutoff.
type AuditPurger interface {
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Retention removes audit entries older than Keep.
type Retention struct {
	Purger AuditPurger
	Keep   time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

// PurgeOnce runs a single retention pass.
func (r *Retention) PurgeOnce(ctx context.Context) (int64, error) {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	cutoff := now().Add(-r.Keep)
	n, err := r.Purger.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	metrics.AddAuditPurged(n)
	return n, nil
}

// Run schedules PurgeOnce at spec (standard cron or descriptors such as
// "@daily") and blocks until ctx is done. A bad spec is returned immediately.
func Run(ctx context.Context, spec string, r *Retention) error {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		n, err := r.PurgeOnce(ctx)
		if err != nil {
			slog.Error("scheduler: audit purge failed", "err", err)
			return
		}
		slog.Info("scheduler: audit purge", "deleted", n, "keep", r.Keep.String())
	})
	if err != nil {
		return fmt.Errorf("scheduler: invalid cron spec %q: %w", spec, err)
	}

	c.Start()
	slog.Info("scheduler: audit retention started", "cron", spec, "keep", r.Keep.String())

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
