package validate

import (
	"errors"
	"testing"

	"github.com/mjoubert/stackup/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *registry.Registry {
	t.Helper()
	reg, err := registry.Parse([]byte(src))
	require.NoError(t, err)
	return reg
}

func TestCheckMissingSections(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		section string
	}{
		{
			"missing global",
			"services: {}\nprofiles: {}\n",
			"global",
		},
		{
			"missing services",
			"global:\n  project_name: x\nprofiles: {}\n",
			"services",
		},
		{
			"missing profiles",
			"global:\n  project_name: x\nservices: {}\n",
			"profiles",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(parse(t, tt.src))
			require.Error(t, err)

			var se *StructuralError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.section, se.Section)
		})
	}
}

func TestCheckPortConflict(t *testing.T) {
	reg := parse(t, `global:
  project_name: x
services:
  a:
    enabled: true
    ports:
      - host_ip: 127.0.0.1
        host_port: 8000
        container_port: 80
  b:
    enabled: true
    ports:
      - host_ip: 127.0.0.1
        host_port: 8000
        container_port: 81
profiles: {}
`)

	err := Check(reg)
	require.Error(t, err)

	var pc *PortConflictError
	require.True(t, errors.As(err, &pc))
	assert.Equal(t, "a", pc.First)
	assert.Equal(t, "b", pc.Second)
	assert.Equal(t, "127.0.0.1", pc.HostIP)
	assert.Equal(t, 8000, pc.HostPort)

	// The message names both services and the exact binding.
	assert.Contains(t, err.Error(), `"a"`)
	assert.Contains(t, err.Error(), `"b"`)
	assert.Contains(t, err.Error(), "127.0.0.1:8000")
}

func TestCheckIgnoresDisabledServices(t *testing.T) {
	reg := parse(t, `global:
  project_name: x
services:
  a:
    enabled: true
    ports:
      - host_ip: 127.0.0.1
        host_port: 8000
        container_port: 80
  b:
    enabled: false
    ports:
      - host_ip: 127.0.0.1
        host_port: 8000
        container_port: 81
profiles: {}
`)

	assert.NoError(t, Check(reg))
}

func TestCheckDistinctAddressesSamePort(t *testing.T) {
	reg := parse(t, `global:
  project_name: x
services:
  a:
    enabled: true
    ports:
      - host_ip: 127.0.0.1
        host_port: 8000
        container_port: 80
  b:
    enabled: true
    ports:
      - host_ip: 0.0.0.0
        host_port: 8000
        container_port: 81
profiles: {}
`)

	assert.NoError(t, Check(reg))
}

func TestCheckIsRerunnable(t *testing.T) {
	reg := parse(t, `global:
  project_name: x
services:
  a:
    enabled: true
    ports:
      - host_ip: 127.0.0.1
        host_port: 8000
        container_port: 80
profiles: {}
`)

	require.NoError(t, Check(reg))
	require.NoError(t, Check(reg))
}

func TestConflictsReturnsEveryCollision(t *testing.T) {
	reg := parse(t, `global:
  project_name: x
services:
  a:
    enabled: true
    ports:
      - host_ip: 127.0.0.1
        host_port: 8000
        container_port: 80
      - host_ip: 127.0.0.1
        host_port: 9000
        container_port: 90
  b:
    enabled: true
    ports:
      - host_ip: 127.0.0.1
        host_port: 8000
        container_port: 81
  c:
    enabled: true
    ports:
      - host_ip: 127.0.0.1
        host_port: 9000
        container_port: 91
profiles: {}
`)

	conflicts := Conflicts(reg)
	require.Len(t, conflicts, 2)
	assert.Equal(t, "b", conflicts[0].Second)
	assert.Equal(t, "c", conflicts[1].Second)
}

func TestBindingPreCheck(t *testing.T) {
	reg := parse(t, `global:
  project_name: x
services:
  a:
    enabled: true
    ports:
      - host_ip: 127.0.0.1
        host_port: 8000
        container_port: 80
  b:
    enabled: true
    ports:
      - host_ip: 127.0.0.1
        host_port: 9000
        container_port: 90
profiles: {}
`)

	// Moving b onto a's binding collides.
	err := Binding(reg, "b", "127.0.0.1", 8000)
	var pc *PortConflictError
	require.True(t, errors.As(err, &pc))
	assert.Equal(t, "a", pc.First)

	// A service never conflicts with itself.
	assert.NoError(t, Binding(reg, "a", "127.0.0.1", 8000))

	// A fresh binding is fine.
	assert.NoError(t, Binding(reg, "b", "127.0.0.1", 9500))
}
