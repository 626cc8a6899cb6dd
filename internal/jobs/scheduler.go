package jobs

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/yukikurage/taskboard-api/internal/services"
)

// Scheduler runs the recurring background jobs.
type Scheduler struct {
	scheduler  gocron.Scheduler
	cleanupSvc *services.CleanupService
	log        *slog.Logger
}

// NewScheduler creates a scheduler with the cleanup job registered.
func NewScheduler(cleanupSvc *services.CleanupService, log *slog.Logger) (*Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		scheduler:  scheduler,
		cleanupSvc: cleanupSvc,
		log:        log,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(time.Minute),
		gocron.NewTask(s.runCleanup),
		gocron.WithName("completed-task-cleanup"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins executing registered jobs.
func (s *Scheduler) Start() {
	s.log.Info("starting background job scheduler")
	s.scheduler.Start()
}

// Stop shuts the scheduler down, waiting for running jobs.
func (s *Scheduler) Stop() error {
	s.log.Info("stopping background job scheduler")
	return s.scheduler.Shutdown()
}

func (s *Scheduler) runCleanup() {
	affected, err := s.cleanupSvc.MarkCompletedTasksAsDeleted()
	if err != nil {
		s.log.Error("completed-task cleanup failed", "error", err)
		return
	}
	if affected > 0 {
		s.log.Info("completed-task cleanup finished", "deleted", affected)
	}
}
