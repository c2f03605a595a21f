package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"storefront/client/internal/app"
)

// Refresher re-pulls the catalog on a schedule so a resident client does not
// drift from server state between focus events.
type Refresher struct {
	cron     *cron.Cron
	runtime  *app.Runtime
	schedule string
	log      zerolog.Logger
}

func NewRefresher(runtime *app.Runtime, schedule string, logger zerolog.Logger) *Refresher {
	return &Refresher{
		cron:     cron.New(),
		runtime:  runtime,
		schedule: schedule,
		log:      logger,
	}
}

func (r *Refresher) Start() error {
	if r.schedule == "" {
		return nil
	}

	if _, err := r.cron.AddFunc(r.schedule, r.refresh); err != nil {
		return err
	}

	r.cron.Start()
	return nil
}

// Stop halts the schedule and waits for an in-flight refresh, up to a grace
// period.
func (r *Refresher) Stop() {
	select {
	case <-r.cron.Stop().Done():
	case <-time.After(5 * time.Second):
		r.log.Warn().Msg("refresher stop timed out")
	}
}

func (r *Refresher) refresh() {
	if err := r.runtime.RefreshCatalog(context.Background()); err != nil {
		r.log.Warn().Err(err).Msg("scheduled catalog refresh failed")
	}
}
