package scheduler

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the dashboard refresh on a cron schedule (watch mode).
type Scheduler struct {
	cron *cron.Cron
	task func()
}

// New registers the refresh task under the given cron spec (with seconds).
func New(spec string, task func()) (*Scheduler, error) {
	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(spec, task); err != nil {
		return nil, fmt.Errorf("register refresh task: %w", err)
	}
	return &Scheduler{cron: c, task: task}, nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the refresh immediately (RUN_ON_START / manual trigger).
func (s *Scheduler) RunNow() {
	s.task()
}
