package registry

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Registry is the full declarative catalog of services, ports, and profiles.
// It is loaded once per run, owned by a single caller, and written back only
// on an explicit Save.
type Registry struct {
	Global   *Global     `yaml:"global"`
	Services *ServiceMap `yaml:"services"`
	Profiles *ProfileMap `yaml:"profiles"`
}

// Global holds stack-wide settings.
type Global struct {
	ProjectName    string `yaml:"project_name"`
	DefaultHostIP  string `yaml:"default_host_ip"`
	IngressService string `yaml:"ingress_service,omitempty"`
}

// DefaultProjectName is used when global.project_name is unset.
const DefaultProjectName = "localai"

// DefaultIngressService is the service whose wildcard bindings stay exposed
// in the public environment when global.ingress_service is unset.
const DefaultIngressService = "caddy"

// Project returns the compose project name.
func (g *Global) Project() string {
	if g == nil || g.ProjectName == "" {
		return DefaultProjectName
	}
	return g.ProjectName
}

// Ingress returns the name of the public ingress service.
func (g *Global) Ingress() string {
	if g == nil || g.IngressService == "" {
		return DefaultIngressService
	}
	return g.IngressService
}

// ServiceDefinition describes one deployable unit. Catalog membership is
// fixed per load; only Enabled and Ports are mutated by user interaction.
type ServiceDefinition struct {
	Name          string        `yaml:"-"`
	Enabled       bool          `yaml:"enabled"`
	Category      string        `yaml:"category,omitempty"`
	Description   string        `yaml:"description,omitempty"`
	Ports         []PortMapping `yaml:"ports,omitempty"`
	Profiles      []string      `yaml:"profiles,omitempty"`
	ReverseProxy  bool          `yaml:"reverse_proxy,omitempty"`
	ExternalStack bool          `yaml:"external_stack,omitempty"`
}

// InProfile reports whether the service declares membership in profile.
func (s *ServiceDefinition) InProfile(profile string) bool {
	for _, p := range s.Profiles {
		if p == profile {
			return true
		}
	}
	return false
}

// ProfileDefinition is a named subset-selection policy over services. It
// references services by name only; definitions stay in the service map.
type ProfileDefinition struct {
	Name             string   `yaml:"-"`
	Description      string   `yaml:"description,omitempty"`
	IncludedServices []string `yaml:"included_services,omitempty"`
}

// Includes reports whether the profile names the service.
func (p *ProfileDefinition) Includes(service string) bool {
	for _, s := range p.IncludedServices {
		if s == service {
			return true
		}
	}
	return false
}

// ServiceMap is a name-keyed service collection that preserves document
// order, so iteration and save output are deterministic across runs.
type ServiceMap struct {
	names  []string
	byName map[string]*ServiceDefinition
}

// NewServiceMap builds a ServiceMap from definitions in the given order.
// Definitions must carry their Name.
func NewServiceMap(defs ...*ServiceDefinition) *ServiceMap {
	m := &ServiceMap{byName: make(map[string]*ServiceDefinition, len(defs))}
	for _, d := range defs {
		m.names = append(m.names, d.Name)
		m.byName[d.Name] = d
	}
	return m
}

// Get returns the service with the given name.
func (m *ServiceMap) Get(name string) (*ServiceDefinition, bool) {
	if m == nil {
		return nil, false
	}
	svc, ok := m.byName[name]
	return svc, ok
}

// Names returns service names in document order.
func (m *ServiceMap) Names() []string {
	if m == nil {
		return nil
	}
	return m.names
}

// All returns services in document order.
func (m *ServiceMap) All() []*ServiceDefinition {
	if m == nil {
		return nil
	}
	out := make([]*ServiceDefinition, len(m.names))
	for i, name := range m.names {
		out[i] = m.byName[name]
	}
	return out
}

// Len returns the number of services.
func (m *ServiceMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

// UnmarshalYAML decodes a mapping node, keeping key order.
func (m *ServiceMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("services: expected a mapping, got %s", nodeKind(node))
	}
	m.byName = make(map[string]*ServiceDefinition, len(node.Content)/2)
	for i := 0; i < len(node.Content); i += 2 {
		name := node.Content[i].Value
		if _, dup := m.byName[name]; dup {
			return fmt.Errorf("services: duplicate service %q", name)
		}
		var def ServiceDefinition
		if err := node.Content[i+1].Decode(&def); err != nil {
			return fmt.Errorf("services.%s: %w", name, err)
		}
		def.Name = name
		m.names = append(m.names, name)
		m.byName[name] = &def
	}
	return nil
}

// MarshalYAML emits the mapping in document order.
func (m *ServiceMap) MarshalYAML() (any, error) {
	return orderedMapping(m.names, func(name string) any { return m.byName[name] })
}

// ProfileMap is a name-keyed profile collection preserving document order.
type ProfileMap struct {
	names  []string
	byName map[string]*ProfileDefinition
}

// NewProfileMap builds a ProfileMap from definitions in the given order.
func NewProfileMap(defs ...*ProfileDefinition) *ProfileMap {
	m := &ProfileMap{byName: make(map[string]*ProfileDefinition, len(defs))}
	for _, d := range defs {
		m.names = append(m.names, d.Name)
		m.byName[d.Name] = d
	}
	return m
}

// Get returns the profile with the given name.
func (m *ProfileMap) Get(name string) (*ProfileDefinition, bool) {
	if m == nil {
		return nil, false
	}
	p, ok := m.byName[name]
	return p, ok
}

// Names returns profile names in document order.
func (m *ProfileMap) Names() []string {
	if m == nil {
		return nil
	}
	return m.names
}

// All returns profiles in document order.
func (m *ProfileMap) All() []*ProfileDefinition {
	if m == nil {
		return nil
	}
	out := make([]*ProfileDefinition, len(m.names))
	for i, name := range m.names {
		out[i] = m.byName[name]
	}
	return out
}

// Len returns the number of profiles.
func (m *ProfileMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

// UnmarshalYAML decodes a mapping node, keeping key order.
func (m *ProfileMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("profiles: expected a mapping, got %s", nodeKind(node))
	}
	m.byName = make(map[string]*ProfileDefinition, len(node.Content)/2)
	for i := 0; i < len(node.Content); i += 2 {
		name := node.Content[i].Value
		if _, dup := m.byName[name]; dup {
			return fmt.Errorf("profiles: duplicate profile %q", name)
		}
		var def ProfileDefinition
		if err := node.Content[i+1].Decode(&def); err != nil {
			return fmt.Errorf("profiles.%s: %w", name, err)
		}
		def.Name = name
		m.names = append(m.names, name)
		m.byName[name] = &def
	}
	return nil
}

// MarshalYAML emits the mapping in document order.
func (m *ProfileMap) MarshalYAML() (any, error) {
	return orderedMapping(m.names, func(name string) any { return m.byName[name] })
}

func orderedMapping(names []string, value func(string) any) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range names {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
		val := &yaml.Node{}
		if err := val.Encode(value(name)); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	}
	return "unknown"
}
