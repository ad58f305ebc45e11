// Package resolve computes the effective set of services to start for a
// requested profile.
package resolve

import "github.com/mjoubert/stackup/internal/registry"

// ProfileAll is the sentinel selecting every enabled service regardless of
// profile membership.
const ProfileAll = "all"

// Services returns the enabled services that belong to the requested
// profile, in registry document order. Membership is a union of two
// signals: the service lists the profile in its own profiles list, or the
// profile's included_services names the service. The empty profile and
// ProfileAll skip the membership filter entirely.
//
// An empty result is not an error here; the caller decides whether
// "nothing to start" is fatal.
func Services(reg *registry.Registry, profile string) []string {
	var out []string
	for _, svc := range reg.Services.All() {
		if !svc.Enabled {
			continue
		}
		if profile == "" || profile == ProfileAll {
			out = append(out, svc.Name)
			continue
		}
		if svc.InProfile(profile) {
			out = append(out, svc.Name)
			continue
		}
		if def, ok := reg.Profiles.Get(profile); ok && def.Includes(svc.Name) {
			out = append(out, svc.Name)
		}
	}
	return out
}

// Profiles returns known profile names in document order.
func Profiles(reg *registry.Registry) []string {
	return reg.Profiles.Names()
}
