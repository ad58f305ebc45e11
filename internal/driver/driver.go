// Package driver builds and runs the docker compose invocations that start
// and stop the stack. Argument construction is separated from execution so
// the command lines are testable without a container runtime.
package driver

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/mjoubert/stackup/internal/emit"
)

// ProfileNone suppresses the compose --profile flag. It is a driver-level
// sentinel only; service selection treats it like "all".
const ProfileNone = "none"

// Driver invokes the container orchestrator.
type Driver struct {
	// command builds the exec.Cmd; swapped out in tests.
	command func(name string, args ...string) *exec.Cmd
	// Quiet drops the "Running: ..." echo before each invocation.
	Quiet bool
}

// New returns a Driver backed by exec.Command.
func New() *Driver {
	return &Driver{command: exec.Command}
}

// DownArgs builds the argv for stopping the project's containers.
func DownArgs(project, profile, composeFile string) []string {
	args := []string{"compose", "-p", project}
	args = appendProfile(args, profile)
	return append(args, "-f", composeFile, "down")
}

// UpArgs builds the argv for starting the stack with the generated overlay.
func UpArgs(project, profile, composeFile, overlayFile string) []string {
	args := []string{"compose", "-p", project}
	args = appendProfile(args, profile)
	args = append(args, "-f", composeFile)
	if overlayFile != "" {
		args = append(args, "-f", overlayFile)
	}
	return append(args, "up", "-d")
}

// ExternalUpArgs builds the argv for starting the bootstrapped external
// stack, with its public override layered on in the public environment.
func ExternalUpArgs(project, composeFile string, env emit.Environment, publicOverride string) []string {
	args := []string{"compose", "-p", project, "-f", composeFile}
	if env == emit.EnvPublic && publicOverride != "" {
		args = append(args, "-f", publicOverride)
	}
	return append(args, "up", "-d")
}

func appendProfile(args []string, profile string) []string {
	if profile != "" && profile != ProfileNone {
		return append(args, "--profile", profile)
	}
	return args
}

// StopStack stops and removes the project's containers.
func (d *Driver) StopStack(project, profile, composeFile string) error {
	return d.run("docker", DownArgs(project, profile, composeFile)...)
}

// StartStack starts the stack with the generated overlay applied.
func (d *Driver) StartStack(project, profile, composeFile, overlayFile string) error {
	return d.run("docker", UpArgs(project, profile, composeFile, overlayFile)...)
}

// StartExternal starts the bootstrapped external stack.
func (d *Driver) StartExternal(project, composeFile string, env emit.Environment, publicOverride string) error {
	return d.run("docker", ExternalUpArgs(project, composeFile, env, publicOverride)...)
}

func (d *Driver) run(name string, args ...string) error {
	if !d.Quiet {
		fmt.Printf("Running: %s %s\n", name, strings.Join(args, " "))
	}
	cmd := d.command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", name, args[0], err)
	}
	return nil
}
