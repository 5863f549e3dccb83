package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Skotchmaster/printshop/internal/repo"
)

const jobTimeout = time.Minute

// Janitor purges abandoned checkouts and guest carts.
type Janitor struct {
	Repo         *repo.GormRepo
	CheckoutTTL  time.Duration
	GuestCartTTL time.Duration
	Log          *zap.SugaredLogger
	Now          func() time.Time
}

func (j *Janitor) now() time.Time {
	if j.Now != nil {
		return j.Now()
	}
	return time.Now()
}

func (j *Janitor) PurgeCheckouts(ctx context.Context) {
	cutoff := j.now().Add(-j.CheckoutTTL)
	n, err := j.Repo.DeleteStaleCheckouts(ctx, cutoff)
	if err != nil {
		j.Log.Errorw("purge_checkouts_error", "cutoff", cutoff, "error", err)
		return
	}
	j.Log.Infow("purge_checkouts", "deleted", n, "cutoff", cutoff)
}

func (j *Janitor) PurgeGuestCarts(ctx context.Context) {
	cutoff := j.now().Add(-j.GuestCartTTL)
	n, err := j.Repo.DeleteStaleGuestCarts(ctx, cutoff)
	if err != nil {
		j.Log.Errorw("purge_guest_carts_error", "cutoff", cutoff, "error", err)
		return
	}
	j.Log.Infow("purge_guest_carts", "deleted", n, "cutoff", cutoff)
}

func (j *Janitor) run(task func(context.Context)) func() {
	return func() {
		defer func() {
			if err := recover(); err != nil {
				j.Log.Errorw("job_panic", "error", err)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		task(ctx)
	}
}

// Start schedules the janitor tasks in loc and starts the scheduler. The
// caller stops it with Stop on shutdown.
func Start(j *Janitor, loc *time.Location) (*cron.Cron, error) {
	sched := cron.New(cron.WithLocation(loc))

	if _, err := sched.AddFunc("@hourly", j.run(j.PurgeCheckouts)); err != nil {
		return nil, err
	}
	if _, err := sched.AddFunc("@daily", j.run(j.PurgeGuestCarts)); err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}
