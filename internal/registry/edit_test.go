package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func editRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	return reg
}

func TestToggle(t *testing.T) {
	reg := editRegistry(t)

	enabled, err := reg.Toggle("ollama")
	require.NoError(t, err)
	assert.True(t, enabled)

	enabled, err = reg.Toggle("ollama")
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestToggleUnknownService(t *testing.T) {
	reg := editRegistry(t)

	_, err := reg.Toggle("ghost")
	require.Error(t, err)

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "service", nf.Kind)
	assert.Equal(t, "ghost", nf.Name)
}

func TestSetHostPort(t *testing.T) {
	reg := editRegistry(t)

	require.NoError(t, reg.SetHostPort("n8n", 0, "5700"))
	svc, _ := reg.Services.Get("n8n")
	assert.Equal(t, 5700, svc.Ports[0].HostPort)
}

func TestSetHostPortRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"non-numeric", "abc"},
		{"zero", "0"},
		{"negative", "-1"},
		{"too large", "70000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := editRegistry(t)
			err := reg.SetHostPort("n8n", 0, tt.value)
			require.Error(t, err)

			var inv *InvalidInputError
			assert.True(t, errors.As(err, &inv))

			// Prior state unchanged.
			svc, _ := reg.Services.Get("n8n")
			assert.Equal(t, 5678, svc.Ports[0].HostPort)
		})
	}
}

func TestSetHostPortIndexOutOfRange(t *testing.T) {
	reg := editRegistry(t)

	err := reg.SetHostPort("n8n", 3, "8080")
	require.Error(t, err)

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "port", nf.Kind)
}

func TestSetHostIP(t *testing.T) {
	reg := editRegistry(t)

	require.NoError(t, reg.SetHostIP("n8n", 0, "0.0.0.0"))
	svc, _ := reg.Services.Get("n8n")
	assert.Equal(t, "0.0.0.0", svc.Ports[0].HostIP)

	err := reg.SetHostIP("n8n", 0, "")
	var inv *InvalidInputError
	require.True(t, errors.As(err, &inv))
	assert.Equal(t, "0.0.0.0", svc.Ports[0].HostIP)
}

func TestSetEnabled(t *testing.T) {
	reg := editRegistry(t)

	require.NoError(t, reg.SetEnabled("caddy", false))
	svc, _ := reg.Services.Get("caddy")
	assert.False(t, svc.Enabled)

	err := reg.SetEnabled("ghost", true)
	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
}
