package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/irwanda/custodia/internal/adapter/storage"
)

func writeAged(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}

func TestCleanupExecute(t *testing.T) {
	Convey("Given a cleanup with a 30 day retention window", t, func() {
		ctx := context.Background()
		tempDir := t.TempDir()
		log := &recordingLogger{}

		now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
		window := 30 * 24 * time.Hour

		uc := NewCleanup("dev", storage.NewLocal(tempDir), log, 30)
		uc.now = func() time.Time { return now }

		Convey("When a dump is older than the window", func() {
			writeAged(t, filepath.Join(tempDir, "orders_20230101_000000.dump"), now.Add(-400*24*time.Hour))
			writeAged(t, filepath.Join(tempDir, "orders_20240614_000000.dump"), now.Add(-24*time.Hour))

			So(uc.Execute(ctx, false), ShouldBeNil)

			Convey("It should delete the expired dump and keep the fresh one", func() {
				_, err := os.Stat(filepath.Join(tempDir, "orders_20230101_000000.dump"))
				So(os.IsNotExist(err), ShouldBeTrue)

				_, err = os.Stat(filepath.Join(tempDir, "orders_20240614_000000.dump"))
				So(err, ShouldBeNil)
			})

			Convey("Running it again should find nothing left to delete", func() {
				So(uc.Execute(ctx, false), ShouldBeNil)
				So(len(log.matching("deleted 0 old dump(s)")), ShouldEqual, 1)
			})
		})

		Convey("When a dump is exactly as old as the window", func() {
			boundary := filepath.Join(tempDir, "orders_20240516_120000.dump")
			writeAged(t, boundary, now.Add(-window))

			So(uc.Execute(ctx, false), ShouldBeNil)

			Convey("It should keep the file (strict greater-than comparison)", func() {
				_, err := os.Stat(boundary)
				So(err, ShouldBeNil)
			})
		})

		Convey("When old files do not carry the .dump suffix", func() {
			stale := filepath.Join(tempDir, "backup.log")
			writeAged(t, stale, now.Add(-1000*24*time.Hour))

			So(uc.Execute(ctx, false), ShouldBeNil)

			Convey("It should never touch them, regardless of age", func() {
				_, err := os.Stat(stale)
				So(err, ShouldBeNil)
			})
		})

		Convey("When running in dry-run mode", func() {
			expired := filepath.Join(tempDir, "orders_20230101_000000.dump")
			writeAged(t, expired, now.Add(-400*24*time.Hour))

			So(uc.Execute(ctx, true), ShouldBeNil)

			Convey("It should only log the deletion candidate", func() {
				_, err := os.Stat(expired)
				So(err, ShouldBeNil)
				So(len(log.matching("would delete: orders_20230101_000000.dump")), ShouldEqual, 1)
			})
		})

		Convey("When the backup directory cannot be listed", func() {
			missing := NewCleanup("dev", storage.NewLocal(filepath.Join(tempDir, "missing")), log, 30)

			Convey("It should return the listing error", func() {
				So(missing.Execute(ctx, false), ShouldNotBeNil)
			})
		})
	})
}
