// Package stack inspects the base docker-compose definition so the engine
// can warn about resolved services that the orchestrator does not know.
package stack

import (
	"context"
	"fmt"
	"os"

	"github.com/compose-spec/compose-go/v2/cli"
	yamlv3 "gopkg.in/yaml.v3"
)

// Base describes the services declared in the base compose file.
type Base struct {
	Path     string
	Services []string // names, in whatever order the loader yields
	byName   map[string]bool
}

// LoadBase parses the base compose file with compose-go. Interpolation is
// off because the stack's .env may not be complete at resolution time; a
// raw YAML parse is the fallback when compose-go rejects the file.
func LoadBase(path string) (*Base, error) {
	ctx := context.Background()

	opts, err := cli.NewProjectOptions(
		[]string{path},
		cli.WithDotEnv,
		cli.WithInterpolation(false),
	)
	if err != nil {
		return nil, fmt.Errorf("project options: %w", err)
	}

	project, err := cli.ProjectFromOptions(ctx, opts)
	if err != nil {
		return loadFallback(path)
	}

	base := newBase(path)
	for _, svc := range project.Services {
		base.add(svc.Name)
	}
	return base, nil
}

// loadFallback reads service names with a plain YAML parse.
func loadFallback(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw struct {
		Services map[string]any `yaml:"services"`
	}
	if err := yamlv3.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("yaml parse: %w", err)
	}

	base := newBase(path)
	for name := range raw.Services {
		base.add(name)
	}
	return base, nil
}

// Has reports whether the base definition declares the service.
func (b *Base) Has(name string) bool {
	return b.byName[name]
}

// Missing returns the resolved services absent from the base definition,
// preserving the resolved order.
func (b *Base) Missing(resolved []string) []string {
	var out []string
	for _, name := range resolved {
		if !b.Has(name) {
			out = append(out, name)
		}
	}
	return out
}

func newBase(path string) *Base {
	return &Base{Path: path, byName: make(map[string]bool)}
}

func (b *Base) add(name string) {
	if b.byName[name] {
		return
	}
	b.byName[name] = true
	b.Services = append(b.Services, name)
}
