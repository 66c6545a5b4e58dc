package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/irwanda/custodia/internal/domain"
)

// Commands builds the argument vector for each step of one database backup.
type Commands interface {
	DumpCommand(a domain.Artifact) []string
	CopyCommand(a domain.Artifact) []string
	RemoveCommand(a domain.Artifact) []string
}

// LocalStorage is the slice of the storage adapter the orchestrator needs.
type LocalStorage interface {
	EnsureDir() error
	Dir() string
}

type Logger interface {
	Infof(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Warnf(template string, args ...interface{})
}

// Backup runs one environment's full cycle: dump every configured database in
// order, fetch each archive to the host, drop the in-container temp copies,
// then prune expired local dumps.
type Backup struct {
	env       string
	databases []string
	executor  domain.Executor
	commands  Commands
	storage   LocalStorage
	cleanup   *Cleanup
	logger    Logger
	now       func() time.Time
}

func NewBackup(
	env string,
	databases []string,
	executor domain.Executor,
	commands Commands,
	storage LocalStorage,
	cleanup *Cleanup,
	logger Logger,
) *Backup {
	return &Backup{
		env:       env,
		databases: databases,
		executor:  executor,
		commands:  commands,
		storage:   storage,
		cleanup:   cleanup,
		logger:    logger,
		now:       time.Now,
	}
}

// Execute returns false when the backup directory cannot be created or when
// at least one database backup failed. Cleanup problems are logged but never
// change the outcome. Dry runs skip directory creation entirely.
func (uc *Backup) Execute(ctx context.Context, dryRun bool) bool {
	uc.logger.Infof("[%s] %sstarting backup cycle", uc.env, dryRunPrefix(dryRun))

	if !dryRun {
		if err := uc.storage.EnsureDir(); err != nil {
			uc.logger.Errorf("[%s] backup directory setup failed: %v", uc.env, err)
			return false
		}
	}

	failed := 0
	for _, db := range uc.databases {
		if err := uc.backupDatabase(ctx, db, dryRun); err != nil {
			uc.logger.Errorf("[%s] backup failed for %s: %v", uc.env, db, err)
			failed++
		}
	}

	if err := uc.cleanup.Execute(ctx, dryRun); err != nil {
		uc.logger.Errorf("[%s] cleanup failed: %v", uc.env, err)
	}

	if failed > 0 {
		uc.logger.Errorf("[%s] backup cycle finished, %d of %d database(s) failed",
			uc.env, failed, len(uc.databases))
		return false
	}

	uc.logger.Infof("[%s] %sbackup cycle completed", uc.env, dryRunPrefix(dryRun))
	return true
}

// backupDatabase runs dump, fetch and remote cleanup strictly in order. The
// first failing step ends the sequence for this database; there is no retry
// and no rollback of a partially fetched local file.
func (uc *Backup) backupDatabase(ctx context.Context, database string, dryRun bool) error {
	artifact := domain.NewArtifact(database, uc.storage.Dir(), uc.now())

	steps := []struct {
		name string
		args []string
	}{
		{"dump", uc.commands.DumpCommand(artifact)},
		{"fetch", uc.commands.CopyCommand(artifact)},
		{"remove temp", uc.commands.RemoveCommand(artifact)},
	}

	for _, step := range steps {
		line := strings.Join(step.args, " ")
		if dryRun {
			uc.logger.Infof("[%s] [DRY RUN] would run: %s", uc.env, line)
			continue
		}

		uc.logger.Infof("[%s] running: %s", uc.env, line)
		if _, err := uc.executor.Run(ctx, step.args); err != nil {
			return fmt.Errorf("%s %s: %w", step.name, database, err)
		}
	}

	uc.logger.Infof("[%s] %sdatabase %s backed up: %s",
		uc.env, dryRunPrefix(dryRun), database, artifact.Filename)
	return nil
}

func dryRunPrefix(dryRun bool) string {
	if dryRun {
		return "[DRY RUN] "
	}
	return ""
}
