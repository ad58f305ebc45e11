// Package emit renders the derived configuration artifacts: the compose
// port overlay and the reverse-proxy routing file. Both emitters serialize
// by hand so the output is byte-for-byte stable; the format grammar lives
// here and nowhere near the resolution logic.
package emit

import (
	"fmt"
	"strings"

	"github.com/mjoubert/stackup/internal/registry"
)

// Environment is the deployment posture controlling which bindings are
// exposed externally.
type Environment string

const (
	EnvPrivate Environment = "private"
	EnvPublic  Environment = "public"
)

// Valid reports whether the environment is a known posture.
func (e Environment) Valid() bool {
	return e == EnvPrivate || e == EnvPublic
}

// WildcardIP is the all-interfaces host address.
const WildcardIP = "0.0.0.0"

// Overlay renders the compose override document for the resolved services.
//
// In the private environment every declared binding is emitted as
// "hostIP:hostPort:containerPort/proto". In the public environment only the
// ingress service keeps its wildcard bindings, emitted without the
// host-address prefix; everything else is suppressed to shrink the exposed
// surface.
func Overlay(reg *registry.Registry, services []string, env Environment) string {
	var b strings.Builder
	b.WriteString("services:\n")

	for _, name := range services {
		svc, ok := reg.Services.Get(name)
		if !ok || len(svc.Ports) == 0 {
			continue
		}

		bindings := serviceBindings(reg, svc, env)
		if len(bindings) == 0 {
			continue
		}

		fmt.Fprintf(&b, "  %s:\n", name)
		b.WriteString("    ports:\n")
		for _, binding := range bindings {
			fmt.Fprintf(&b, "      - %q\n", binding)
		}
	}

	return b.String()
}

func serviceBindings(reg *registry.Registry, svc *registry.ServiceDefinition, env Environment) []string {
	var out []string
	for _, p := range svc.Ports {
		switch env {
		case EnvPublic:
			if svc.Name != reg.Global.Ingress() || p.HostIP != WildcardIP {
				continue
			}
			out = append(out, p.PublicBinding())
		default:
			out = append(out, p.Binding())
		}
	}
	return out
}
