package registry

import (
	"fmt"
	"strconv"
	"strings"
)

// PortMapping represents one host-to-container port binding.
type PortMapping struct {
	HostIP        string `yaml:"host_ip"`
	HostPort      int    `yaml:"host_port"`
	ContainerPort int    `yaml:"container_port"`
	Protocol      string `yaml:"protocol,omitempty"` // tcp or udp
}

// Proto returns the protocol, defaulting to tcp.
func (p PortMapping) Proto() string {
	if p.Protocol == "" {
		return "tcp"
	}
	return p.Protocol
}

// Binding returns the full compose binding string,
// e.g. "127.0.0.1:5678:5678/tcp".
func (p PortMapping) Binding() string {
	return fmt.Sprintf("%s:%d:%d/%s", p.HostIP, p.HostPort, p.ContainerPort, p.Proto())
}

// PublicBinding returns the binding without the host-address prefix,
// e.g. "443:8443/tcp".
func (p PortMapping) PublicBinding() string {
	return fmt.Sprintf("%d:%d/%s", p.HostPort, p.ContainerPort, p.Proto())
}

// String returns a human-readable form for listings.
func (p PortMapping) String() string {
	proto := ""
	if p.Proto() != "tcp" {
		proto = "/" + p.Proto()
	}
	return fmt.Sprintf("%s:%d → %d%s", p.HostIP, p.HostPort, p.ContainerPort, proto)
}

// ParsePortMapping parses a compose port string like "8080:80" or
// "127.0.0.1:8080:80/tcp".
func ParsePortMapping(s string) PortMapping {
	pm := PortMapping{Protocol: "tcp"}

	if idx := strings.Index(s, "/"); idx != -1 {
		pm.Protocol = s[idx+1:]
		s = s[:idx]
	}

	parts := strings.Split(s, ":")
	switch len(parts) {
	case 1:
		port, _ := strconv.Atoi(parts[0])
		pm.HostPort = port
		pm.ContainerPort = port
	case 2:
		pm.HostPort, _ = strconv.Atoi(parts[0])
		pm.ContainerPort, _ = strconv.Atoi(parts[1])
	case 3:
		pm.HostIP = parts[0]
		pm.HostPort, _ = strconv.Atoi(parts[1])
		pm.ContainerPort, _ = strconv.Atoi(parts[2])
	}
	return pm
}
