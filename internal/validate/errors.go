package validate

import "fmt"

// StructuralError reports a missing required top-level registry section.
// Fatal: the pipeline aborts before any artifact is written.
type StructuralError struct {
	Section string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("missing required section %q in registry", e.Section)
}

// PortConflictError reports two enabled services claiming the same
// (host address, host port) pair. Fatal: generation refuses to proceed.
type PortConflictError struct {
	First    string
	Second   string
	HostIP   string
	HostPort int
}

func (e *PortConflictError) Error() string {
	return fmt.Sprintf("port conflict: %s:%d is used by both %q and %q",
		e.HostIP, e.HostPort, e.First, e.Second)
}
