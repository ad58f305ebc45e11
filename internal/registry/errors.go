package registry

import "fmt"

// NotFoundError reports an operation against an unknown service or an
// out-of-range port index. Recoverable: the registry is left unchanged.
type NotFoundError struct {
	Kind string // "service" or "port"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// InvalidInputError reports a malformed user-supplied value. Recoverable:
// the input is rejected and the registry is left unchanged.
type InvalidInputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}
