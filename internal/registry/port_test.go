package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePortMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected PortMapping
	}{
		{
			"8080",
			PortMapping{HostPort: 8080, ContainerPort: 8080, Protocol: "tcp"},
		},
		{
			"8080:80",
			PortMapping{HostPort: 8080, ContainerPort: 80, Protocol: "tcp"},
		},
		{
			"127.0.0.1:8080:80",
			PortMapping{HostIP: "127.0.0.1", HostPort: 8080, ContainerPort: 80, Protocol: "tcp"},
		},
		{
			"8080:80/udp",
			PortMapping{HostPort: 8080, ContainerPort: 80, Protocol: "udp"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParsePortMapping(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPortMappingBinding(t *testing.T) {
	tests := []struct {
		name     string
		pm       PortMapping
		expected string
	}{
		{
			"explicit tcp",
			PortMapping{HostIP: "127.0.0.1", HostPort: 5678, ContainerPort: 5678, Protocol: "tcp"},
			"127.0.0.1:5678:5678/tcp",
		},
		{
			"protocol defaults to tcp",
			PortMapping{HostIP: "0.0.0.0", HostPort: 443, ContainerPort: 8443},
			"0.0.0.0:443:8443/tcp",
		},
		{
			"udp",
			PortMapping{HostIP: "127.0.0.1", HostPort: 53, ContainerPort: 53, Protocol: "udp"},
			"127.0.0.1:53:53/udp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.pm.Binding())
		})
	}
}

func TestPortMappingPublicBinding(t *testing.T) {
	pm := PortMapping{HostIP: "0.0.0.0", HostPort: 443, ContainerPort: 8443}
	assert.Equal(t, "443:8443/tcp", pm.PublicBinding())
}

func TestPortMappingString(t *testing.T) {
	tests := []struct {
		pm       PortMapping
		expected string
	}{
		{PortMapping{HostIP: "127.0.0.1", HostPort: 5678, ContainerPort: 5678}, "127.0.0.1:5678 → 5678"},
		{PortMapping{HostIP: "0.0.0.0", HostPort: 53, ContainerPort: 53, Protocol: "udp"}, "0.0.0.0:53 → 53/udp"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.pm.String())
		})
	}
}
