package usecase

import (
	"context"
	"fmt"
	"time"
)

// RetentionStorage is the slice of the storage adapter cleanup needs.
type RetentionStorage interface {
	OldDumps(cutoff time.Time) ([]string, error)
	Delete(filename string) error
}

// Cleanup prunes dump files older than the retention window. The age check is
// strict: a file exactly retentionDays old is kept.
type Cleanup struct {
	env           string
	storage       RetentionStorage
	logger        Logger
	retentionDays int
	now           func() time.Time
}

func NewCleanup(env string, storage RetentionStorage, logger Logger, retentionDays int) *Cleanup {
	return &Cleanup{
		env:           env,
		storage:       storage,
		logger:        logger,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// Execute deletes every expired dump it can; one failed deletion does not
// block the others. The caller logs and swallows the returned error, so
// retention problems never fail a backup cycle.
func (uc *Cleanup) Execute(ctx context.Context, dryRun bool) error {
	uc.logger.Infof("[%s] starting cleanup, retention: %d day(s)", uc.env, uc.retentionDays)

	cutoff := uc.now().Add(-time.Duration(uc.retentionDays) * 24 * time.Hour)
	candidates, err := uc.storage.OldDumps(cutoff)
	if err != nil {
		return fmt.Errorf("list old dumps: %w", err)
	}

	deleted := 0
	for _, name := range candidates {
		if dryRun {
			uc.logger.Infof("[%s] [DRY RUN] would delete: %s", uc.env, name)
			continue
		}

		if err := uc.storage.Delete(name); err != nil {
			uc.logger.Errorf("[%s] failed to delete %s: %v", uc.env, name, err)
			continue
		}
		uc.logger.Infof("[%s] deleted: %s", uc.env, name)
		deleted++
	}

	if dryRun {
		uc.logger.Infof("[%s] [DRY RUN] cleanup found %d deletion candidate(s)", uc.env, len(candidates))
	} else {
		uc.logger.Infof("[%s] cleanup completed, deleted %d old dump(s)", uc.env, deleted)
	}
	return nil
}
