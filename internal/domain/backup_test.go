package domain

import (
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestArtifact(t *testing.T) {
	Convey("Given NewArtifact", t, func() {
		now := time.Date(2020, 1, 2, 3, 4, 5, 987654321, time.UTC)

		Convey("When building an artifact for a database", func() {
			a := NewArtifact("orders", "/backups/dev", now)

			Convey("It should derive the dump filename from the database and timestamp", func() {
				So(a.Database, ShouldEqual, "orders")
				So(a.Filename, ShouldEqual, "orders_20200102_030405.dump")
			})

			Convey("It should place the temp copy under /tmp in the container", func() {
				So(a.ContainerPath, ShouldEqual, "/tmp/orders_20200102_030405.dump")
			})

			Convey("It should place the local copy directly under the backup dir", func() {
				So(a.LocalPath, ShouldEqual, filepath.Join("/backups/dev", "orders_20200102_030405.dump"))
			})

			Convey("It should truncate the timestamp to second precision", func() {
				So(a.Timestamp.Equal(time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)), ShouldBeTrue)
			})
		})
	})
}
