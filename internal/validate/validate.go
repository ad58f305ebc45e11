// Package validate checks a loaded registry for structural completeness and
// host port collisions. Checks are non-mutating and re-runnable; the
// interactive front-end re-validates after every edit.
package validate

import (
	"fmt"

	"github.com/mjoubert/stackup/internal/registry"
)

// Check verifies the registry and returns the first problem found:
// a *StructuralError for a missing section, or a *PortConflictError for the
// first pair of enabled services with overlapping bindings. Disabled
// services never conflict; they will not bind at runtime.
func Check(reg *registry.Registry) error {
	if err := checkStructure(reg); err != nil {
		return err
	}

	seen := make(map[string]string) // "ip:port" -> owning service
	for _, svc := range reg.Services.All() {
		if !svc.Enabled {
			continue
		}
		for _, p := range svc.Ports {
			key := bindingKey(p.HostIP, p.HostPort)
			if owner, taken := seen[key]; taken {
				return &PortConflictError{
					First:    owner,
					Second:   svc.Name,
					HostIP:   p.HostIP,
					HostPort: p.HostPort,
				}
			}
			seen[key] = svc.Name
		}
	}
	return nil
}

// Conflicts returns every binding collision among enabled services, for
// reporting more than the first failure at once.
func Conflicts(reg *registry.Registry) []*PortConflictError {
	var out []*PortConflictError
	seen := make(map[string]string)
	for _, svc := range reg.Services.All() {
		if !svc.Enabled {
			continue
		}
		for _, p := range svc.Ports {
			key := bindingKey(p.HostIP, p.HostPort)
			if owner, taken := seen[key]; taken {
				out = append(out, &PortConflictError{
					First:    owner,
					Second:   svc.Name,
					HostIP:   p.HostIP,
					HostPort: p.HostPort,
				})
				continue
			}
			seen[key] = svc.Name
		}
	}
	return out
}

// Binding reports whether giving (hostIP, hostPort) to owner would collide
// with another enabled service. Used to reject a port edit before applying.
func Binding(reg *registry.Registry, owner, hostIP string, hostPort int) error {
	for _, svc := range reg.Services.All() {
		if svc.Name == owner || !svc.Enabled {
			continue
		}
		for _, p := range svc.Ports {
			if p.HostIP == hostIP && p.HostPort == hostPort {
				return &PortConflictError{
					First:    svc.Name,
					Second:   owner,
					HostIP:   hostIP,
					HostPort: hostPort,
				}
			}
		}
	}
	return nil
}

func checkStructure(reg *registry.Registry) error {
	if reg.Global == nil {
		return &StructuralError{Section: "global"}
	}
	if reg.Services == nil {
		return &StructuralError{Section: "services"}
	}
	if reg.Profiles == nil {
		return &StructuralError{Section: "profiles"}
	}
	return nil
}

func bindingKey(hostIP string, hostPort int) string {
	return fmt.Sprintf("%s:%d", hostIP, hostPort)
}
