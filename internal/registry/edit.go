package registry

import (
	"fmt"
	"strconv"
)

// Edit operations used by the interactive front-end. Each either applies
// fully or returns a typed error with the registry unchanged.

// Toggle flips a service's enabled flag and returns the new state.
func (r *Registry) Toggle(name string) (bool, error) {
	svc, ok := r.Services.Get(name)
	if !ok {
		return false, &NotFoundError{Kind: "service", Name: name}
	}
	svc.Enabled = !svc.Enabled
	return svc.Enabled, nil
}

// SetEnabled sets a service's enabled flag.
func (r *Registry) SetEnabled(name string, enabled bool) error {
	svc, ok := r.Services.Get(name)
	if !ok {
		return &NotFoundError{Kind: "service", Name: name}
	}
	svc.Enabled = enabled
	return nil
}

// SetHostIP updates the host address of one port mapping.
func (r *Registry) SetHostIP(name string, index int, hostIP string) error {
	port, err := r.port(name, index)
	if err != nil {
		return err
	}
	if hostIP == "" {
		return &InvalidInputError{Field: "host address", Value: hostIP, Reason: "must not be empty"}
	}
	port.HostIP = hostIP
	return nil
}

// SetHostPort updates the host port of one port mapping.
func (r *Registry) SetHostPort(name string, index int, value string) error {
	port, err := r.port(name, index)
	if err != nil {
		return err
	}
	n, err := ParsePort(value)
	if err != nil {
		return err
	}
	port.HostPort = n
	return nil
}

// ParsePort parses a user-supplied port number, enforcing the 1-65535 range.
func ParsePort(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &InvalidInputError{Field: "port", Value: value, Reason: "must be a number"}
	}
	if n < 1 || n > 65535 {
		return 0, &InvalidInputError{Field: "port", Value: value, Reason: "must be between 1 and 65535"}
	}
	return n, nil
}

func (r *Registry) port(name string, index int) (*PortMapping, error) {
	svc, ok := r.Services.Get(name)
	if !ok {
		return nil, &NotFoundError{Kind: "service", Name: name}
	}
	if index < 0 || index >= len(svc.Ports) {
		return nil, &NotFoundError{Kind: "port", Name: fmt.Sprintf("%s[%d]", name, index)}
	}
	return &svc.Ports[index], nil
}
