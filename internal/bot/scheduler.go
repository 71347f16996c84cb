package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/edgard/railuxbot/internal/bot/tasks"
	"github.com/edgard/railuxbot/internal/config"
	applog "github.com/edgard/railuxbot/internal/logger"
)

// Scheduler manages scheduled tasks using the gocron library.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
	cfg       *config.SchedulerConfig
	taskMap   map[string]tasks.ScheduledTaskFunc
	mu        sync.Mutex // protects running during start/stop
	running   bool

	// ctx is handed to tasks and cancelled by Stop.
	ctx    context.Context
	cancel context.CancelFunc
}

// NewScheduler creates a new scheduler instance using gocron.
func NewScheduler(logger *slog.Logger, cfg *config.SchedulerConfig, taskMap map[string]tasks.ScheduledTaskFunc) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "scheduler")

	s, err := gocron.NewScheduler(gocron.WithLogger(applog.NewGocronLogger(log)))
	if err != nil {
		log.Error("Failed to create gocron scheduler", "error", err)
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		scheduler: s,
		logger:    log,
		cfg:       cfg,
		taskMap:   taskMap,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// Start schedules all enabled tasks based on the configuration and starts
// the scheduler. Tasks that cannot be scheduled are logged and skipped.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler is already running")
	}

	s.logger.Debug("Configuring scheduler jobs...")

	if s.cfg == nil || len(s.cfg.Tasks) == 0 {
		s.logger.Warn("No scheduler tasks configured.")
		s.scheduler.Start()
		s.running = true
		return nil
	}

	names := make([]string, 0, len(s.cfg.Tasks))
	for name := range s.cfg.Tasks {
		names = append(names, name)
	}
	sort.Strings(names)

	scheduledCount := 0
	for _, taskName := range names {
		taskConfig := s.cfg.Tasks[taskName]
		if !taskConfig.Enabled {
			s.logger.Info("Skipping disabled task", "task_name", taskName)
			continue
		}

		taskFunc, exists := s.taskMap[taskName]
		if !exists {
			s.logger.Warn("Scheduled task configured but not found in registry, skipping", "task_name", taskName)
			continue
		}

		if taskConfig.Schedule == "" {
			s.logger.Warn("Scheduled task enabled but has empty schedule, skipping", "task_name", taskName)
			continue
		}

		_, err := s.scheduler.NewJob(
			gocron.CronJob(taskConfig.Schedule, true), // true = schedule has a seconds field
			gocron.NewTask(s.wrap(taskName, taskFunc)),
			gocron.WithName(taskName),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			s.logger.Error("Failed to schedule task", "task_name", taskName, "schedule", taskConfig.Schedule, "error", err)
			continue
		}

		s.logger.Info("Scheduled task", "task_name", taskName, "schedule", taskConfig.Schedule)
		scheduledCount++
	}

	s.scheduler.Start()
	s.running = true
	s.logger.Info("Scheduler initialized and started", "tasks_scheduled", scheduledCount)

	return nil
}

// wrap adds logging around a task and runs it with the scheduler's context.
func (s *Scheduler) wrap(name string, taskFunc tasks.ScheduledTaskFunc) func() {
	return func() {
		s.logger.Info("Running scheduled task", "task_name", name)
		startTime := time.Now()
		if err := taskFunc(s.ctx); err != nil {
			s.logger.Error("Scheduled task failed", "task_name", name, "error", err)
		}
		s.logger.Info("Finished scheduled task", "task_name", name, "duration", time.Since(startTime))
	}
}

// Jobs returns the names of the scheduled jobs, sorted.
func (s *Scheduler) Jobs() []string {
	jobs := s.scheduler.Jobs()
	names := make([]string, 0, len(jobs))
	for _, job := range jobs {
		names = append(names, job.Name())
	}
	sort.Strings(names)
	return names
}

// Stop cancels running tasks and shuts the scheduler down, waiting for them to return.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		s.logger.Info("Scheduler is not running, nothing to stop.")
		return nil
	}

	s.logger.Debug("Stopping scheduler gracefully (waiting for jobs)...")
	s.cancel()
	err := s.scheduler.Shutdown()
	if err != nil {
		s.logger.Error("Error during scheduler shutdown", "error", err)
	} else {
		s.logger.Info("Scheduler stopped gracefully.")
	}

	s.running = false
	return err
}
