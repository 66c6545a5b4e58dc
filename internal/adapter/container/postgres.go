package container

import (
	"github.com/irwanda/custodia/internal/domain"
)

// Postgres builds the fixed command shapes for backing up databases that live
// in a named postgres container.
type Postgres struct {
	container string
	user      string
}

func NewPostgres(containerName, user string) *Postgres {
	return &Postgres{container: containerName, user: user}
}

// DumpCommand produces a custom-format archive at the artifact's in-container
// temp path, authenticated as the configured user.
func (p *Postgres) DumpCommand(a domain.Artifact) []string {
	return []string{
		"docker", "exec", p.container,
		"pg_dump", "-U", p.user, "-d", a.Database, "-F", "c", "-f", a.ContainerPath,
	}
}

// CopyCommand fetches the archive from the container filesystem to the host.
func (p *Postgres) CopyCommand(a domain.Artifact) []string {
	return []string{"docker", "cp", p.container + ":" + a.ContainerPath, a.LocalPath}
}

// RemoveCommand deletes the in-container temp copy.
func (p *Postgres) RemoveCommand(a domain.Artifact) []string {
	return []string{"docker", "exec", p.container, "rm", a.ContainerPath}
}
