package driver

import (
	"testing"

	"github.com/mjoubert/stackup/internal/emit"
	"github.com/stretchr/testify/assert"
)

func TestDownArgs(t *testing.T) {
	tests := []struct {
		name     string
		project  string
		profile  string
		expected []string
	}{
		{
			"with profile",
			"localai", "cpu",
			[]string{"compose", "-p", "localai", "--profile", "cpu", "-f", "docker-compose.yml", "down"},
		},
		{
			"profile none is suppressed",
			"localai", "none",
			[]string{"compose", "-p", "localai", "-f", "docker-compose.yml", "down"},
		},
		{
			"empty profile is suppressed",
			"localai", "",
			[]string{"compose", "-p", "localai", "-f", "docker-compose.yml", "down"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DownArgs(tt.project, tt.profile, "docker-compose.yml"))
		})
	}
}

func TestUpArgs(t *testing.T) {
	args := UpArgs("localai", "gpu-nvidia", "docker-compose.yml", "docker-compose.override.private.generated.yml")
	assert.Equal(t, []string{
		"compose", "-p", "localai",
		"--profile", "gpu-nvidia",
		"-f", "docker-compose.yml",
		"-f", "docker-compose.override.private.generated.yml",
		"up", "-d",
	}, args)
}

func TestUpArgsWithoutOverlay(t *testing.T) {
	args := UpArgs("localai", "", "docker-compose.yml", "")
	assert.Equal(t, []string{"compose", "-p", "localai", "-f", "docker-compose.yml", "up", "-d"}, args)
}

func TestExternalUpArgs(t *testing.T) {
	private := ExternalUpArgs("localai", "supabase/docker/docker-compose.yml", emit.EnvPrivate, "override.public.yml")
	assert.Equal(t, []string{
		"compose", "-p", "localai",
		"-f", "supabase/docker/docker-compose.yml",
		"up", "-d",
	}, private)

	public := ExternalUpArgs("localai", "supabase/docker/docker-compose.yml", emit.EnvPublic, "override.public.yml")
	assert.Equal(t, []string{
		"compose", "-p", "localai",
		"-f", "supabase/docker/docker-compose.yml",
		"-f", "override.public.yml",
		"up", "-d",
	}, public)
}
