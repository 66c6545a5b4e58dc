package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
)

// Scheduler wraps a seconds-precision cron. Backup jobs report their outcome
// through the log, so jobs take a context and return nothing.
type Scheduler struct {
	cron *cron.Cron
}

func New() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds()),
	}
}

// AddJob registers a job under the given cron spec. Jobs receive the
// registration context, so cancelling it aborts work in flight.
func (s *Scheduler) AddJob(ctx context.Context, spec string, job func(context.Context)) error {
	_, err := s.cron.AddFunc(spec, func() {
		job(ctx)
	})
	return err
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
