package emit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mjoubert/stackup/internal/registry"
)

// CaddyfileName is the static routing artifact filename.
const CaddyfileName = "Caddyfile.generated"

// OverlayFilename returns the overlay artifact filename for an environment.
func OverlayFilename(env Environment) string {
	return fmt.Sprintf("docker-compose.override.%s.generated.yml", env)
}

// Artifacts holds the paths of the generated artifact pair.
type Artifacts struct {
	OverlayPath   string
	CaddyfilePath string
}

// WriteArtifacts renders and writes both artifacts into dir. The overlay is
// written first; if either write fails the error is returned and the caller
// must not hand anything to the orchestration driver.
func WriteArtifacts(reg *registry.Registry, services []string, env Environment, dir string) (*Artifacts, error) {
	a := &Artifacts{
		OverlayPath:   filepath.Join(dir, OverlayFilename(env)),
		CaddyfilePath: filepath.Join(dir, CaddyfileName),
	}
	if err := os.WriteFile(a.OverlayPath, []byte(Overlay(reg, services, env)), 0644); err != nil {
		return nil, fmt.Errorf("writing overlay: %w", err)
	}
	if err := os.WriteFile(a.CaddyfilePath, []byte(Caddyfile(reg, services)), 0644); err != nil {
		return nil, fmt.Errorf("writing Caddyfile: %w", err)
	}
	return a, nil
}
