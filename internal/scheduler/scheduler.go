package scheduler

import (
	"fmt"
	"log"

	"safinaland-api/internal/cleanup"
	"safinaland-api/internal/config"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the daily orphaned-upload sweep.
type Scheduler struct {
	cron      *cron.Cron
	cleanup   *cleanup.Service
	config    *config.Config
	isRunning bool
}

// NewScheduler creates a new scheduler
func NewScheduler(svc *cleanup.Service, cfg *config.Config) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		cleanup: svc,
		config:  cfg,
	}
}

// Start registers the daily job and starts the cron loop.
func (s *Scheduler) Start() error {
	if !s.config.Cleanup.DailyRunEnabled {
		log.Println("Scheduler: Daily cleanup is disabled in configuration")
		return nil
	}

	cronSpec := s.parseDailyRunTime(s.config.Cleanup.DailyRunTime)

	_, err := s.cron.AddFunc(cronSpec, func() {
		log.Println("Scheduler: Starting daily cleanup job...")
		if _, err := s.runCleanup(); err != nil {
			log.Printf("Scheduler: Daily cleanup failed: %v", err)
		} else {
			log.Println("Scheduler: Daily cleanup completed successfully")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("Scheduler: Started with daily run at %s (cron: %s)", s.config.Cleanup.DailyRunTime, cronSpec)

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	if s.isRunning {
		s.cron.Stop()
		s.isRunning = false
		log.Println("Scheduler: Stopped")
	}
}

func (s *Scheduler) runCleanup() (*cleanup.CleanupResult, error) {
	return s.cleanup.Run(cleanup.CleanupConfig{
		Retention:    s.config.Cleanup.Retention(),
		MaxDeletions: s.config.Cleanup.MaxDeletions,
	})
}

// RunNow immediately executes the cleanup job (for manual trigger).
func (s *Scheduler) RunNow() (*cleanup.CleanupResult, error) {
	log.Println("Scheduler: Manual trigger - starting cleanup job...")
	return s.runCleanup()
}

// parseDailyRunTime converts HH:MM format to cron specification
// Example: "02:00" -> "0 2 * * *" (run at 2:00 AM every day)
func (s *Scheduler) parseDailyRunTime(timeStr string) string {
	var hour, minute int
	n, _ := fmt.Sscanf(timeStr, "%d:%d", &hour, &minute)
	if n == 2 && hour >= 0 && hour < 24 && minute >= 0 && minute < 60 {
		return fmt.Sprintf("%d %d * * *", minute, hour)
	}

	log.Printf("Scheduler: Failed to parse time '%s', using default 02:00", timeStr)
	return "0 2 * * *"
}
