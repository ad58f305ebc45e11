package emit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlayFilename(t *testing.T) {
	assert.Equal(t, "docker-compose.override.private.generated.yml", OverlayFilename(EnvPrivate))
	assert.Equal(t, "docker-compose.override.public.generated.yml", OverlayFilename(EnvPublic))
}

func TestWriteArtifacts(t *testing.T) {
	reg := parse(t, emitYAML)
	dir := t.TempDir()
	services := []string{"n8n", "caddy"}

	arts, err := WriteArtifacts(reg, services, EnvPrivate, dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "docker-compose.override.private.generated.yml"), arts.OverlayPath)
	assert.Equal(t, filepath.Join(dir, CaddyfileName), arts.CaddyfilePath)

	overlay, err := os.ReadFile(arts.OverlayPath)
	require.NoError(t, err)
	assert.Equal(t, Overlay(reg, services, EnvPrivate), string(overlay))

	caddy, err := os.ReadFile(arts.CaddyfilePath)
	require.NoError(t, err)
	assert.Equal(t, Caddyfile(reg, services), string(caddy))
}

func TestWriteArtifactsBadDir(t *testing.T) {
	reg := parse(t, emitYAML)

	_, err := WriteArtifacts(reg, []string{"n8n"}, EnvPrivate, "/nonexistent/dir")
	require.Error(t, err)
}
