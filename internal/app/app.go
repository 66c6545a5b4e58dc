package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/irwanda/custodia/internal/adapter/container"
	"github.com/irwanda/custodia/internal/adapter/storage"
	"github.com/irwanda/custodia/internal/config"
	"github.com/irwanda/custodia/internal/infrastructure/logger"
	"github.com/irwanda/custodia/internal/infrastructure/scheduler"
	"github.com/irwanda/custodia/internal/usecase"
)

// App wires one backup orchestrator per configured environment and decides
// between one-shot and scheduled operation.
type App struct {
	config    *config.Config
	logger    *logger.Logger
	scheduler *scheduler.Scheduler
	jobs      []environmentJob
}

type environmentJob struct {
	env      config.EnvironmentConfig
	backupUC *usecase.Backup
}

func New(cfg *config.Config) (*App, error) {
	log, err := logger.New(cfg.App.LogLevel, cfg.App.LogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log.Infof("Starting %s", cfg.App.Name)
	log.Infof("Found %d environment(s) configured", len(cfg.Environments))

	executor := container.NewDockerExecutor(cfg.CommandTimeout)

	var jobs []environmentJob
	for _, env := range cfg.Environments {
		local := storage.NewLocal(env.BackupDir)
		pg := container.NewPostgres(env.Container, env.User)
		cleanupUC := usecase.NewCleanup(env.Name, local, log, env.RetentionDays)
		backupUC := usecase.NewBackup(env.Name, env.Databases, executor, pg, local, cleanupUC, log)

		jobs = append(jobs, environmentJob{env: env, backupUC: backupUC})
		log.Infof("✓ Environment %s: container %s, %d database(s), retention %d day(s)",
			env.Name, env.Container, len(env.Databases), env.RetentionDays)
	}

	return &App{
		config:    cfg,
		logger:    log,
		scheduler: scheduler.New(),
		jobs:      jobs,
	}, nil
}

// Run executes every environment once and reports failure through its error,
// unless at least one environment carries a schedule, in which case it
// registers cron jobs and blocks until the context is cancelled.
func (a *App) Run(ctx context.Context, dryRun bool) error {
	if !a.config.HasSchedules() {
		return a.runOnce(ctx, dryRun)
	}
	return a.runScheduled(ctx, dryRun)
}

// runOnce processes environments strictly one after the other; a full cycle
// (all databases, then cleanup) completes before the next environment begins.
func (a *App) runOnce(ctx context.Context, dryRun bool) error {
	ok := true
	for _, job := range a.jobs {
		if !job.backupUC.Execute(ctx, dryRun) {
			ok = false
		}
	}
	if !ok {
		return errors.New("one or more environment backups failed")
	}
	return nil
}

func (a *App) runScheduled(ctx context.Context, dryRun bool) error {
	for _, job := range a.jobs {
		if job.env.Schedule == "" {
			a.logger.Warnf("Environment %s has no schedule, skipping in scheduled mode", job.env.Name)
			continue
		}

		backupUC := job.backupUC
		name := job.env.Name

		if err := a.scheduler.AddJob(ctx, job.env.Schedule, func(ctx context.Context) {
			a.logger.Infof("=== Triggered scheduled backup for %s ===", name)
			if !backupUC.Execute(ctx, dryRun) {
				a.logger.Errorf("=== Scheduled backup for %s failed ===", name)
			}
		}); err != nil {
			return fmt.Errorf("failed to schedule backup for %s: %w", name, err)
		}
		a.logger.Infof("✓ Scheduled backup for %s: %s", name, job.env.Schedule)
	}

	a.scheduler.Start()
	a.logger.Infof("Scheduler started successfully")

	<-ctx.Done()
	return nil
}

func (a *App) Shutdown() {
	a.logger.Infof("Shutting down...")
	a.scheduler.Stop()
	a.logger.Close()
}
