package scheduler

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"CryptoBuddy/internal/engine"
)

// Scheduler drives the check cycle: once at startup, then on a fixed
// interval.
type Scheduler struct {
	Cron   *cron.Cron
	Engine *engine.Engine
}

// NewScheduler creates a new Scheduler.
func NewScheduler(eng *engine.Engine) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(),
		Engine: eng,
	}
}

// Register schedules the check cycle every intervalSeconds.
func (s *Scheduler) Register(intervalSeconds int) error {
	spec := fmt.Sprintf("@every %ds", intervalSeconds)
	if _, err := s.Cron.AddFunc(spec, s.Engine.CheckCycle); err != nil {
		return fmt.Errorf("register check cycle: %w", err)
	}
	return nil
}

// Start runs one immediate check cycle, then starts the cron scheduler.
func (s *Scheduler) Start() {
	go s.Engine.CheckCycle()
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler; an in-flight cycle is allowed to finish.
func (s *Scheduler) Stop() {
	ctx := s.Cron.Stop()
	<-ctx.Done()
	log.Println("[INFO] scheduler stopped")
}
