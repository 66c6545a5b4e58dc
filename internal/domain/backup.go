package domain

import (
	"fmt"
	"path/filepath"
	"time"
)

const timestampLayout = "20060102_150405"

// Artifact describes one database dump: the file it produces inside the
// container and where that file lands on the host. The local file is only a
// valid backup once all three steps (dump, fetch, remote cleanup) succeeded.
type Artifact struct {
	Database      string
	Timestamp     time.Time
	Filename      string
	ContainerPath string
	LocalPath     string
}

// NewArtifact derives the artifact paths for one database at second precision.
func NewArtifact(database, backupDir string, now time.Time) Artifact {
	ts := now.Truncate(time.Second)
	filename := fmt.Sprintf("%s_%s.dump", database, ts.Format(timestampLayout))

	return Artifact{
		Database:      database,
		Timestamp:     ts,
		Filename:      filename,
		ContainerPath: "/tmp/" + filename,
		LocalPath:     filepath.Join(backupDir, filename),
	}
}
