// Package menu is the interactive front-end over the engine: it presents
// the catalog, applies toggle and port edits, and hands off to the start
// pipeline. All state changes go through the registry's edit operations and
// every mutation is re-validated; the menu only presents results.
package menu

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mjoubert/stackup/internal/emit"
	"github.com/mjoubert/stackup/internal/registry"
	"github.com/mjoubert/stackup/internal/resolve"
	"github.com/mjoubert/stackup/internal/ui"
	"github.com/mjoubert/stackup/internal/validate"
)

// StartFunc runs the generate-and-start pipeline for the chosen selection.
type StartFunc func(profile string, env emit.Environment, dryRun bool) error

// Menu drives the interactive configuration session.
type Menu struct {
	reg          *registry.Registry
	registryPath string
	start        StartFunc
}

// New returns a menu over the given registry.
func New(reg *registry.Registry, registryPath string, start StartFunc) *Menu {
	return &Menu{reg: reg, registryPath: registryPath, start: start}
}

// Run loops until the user quits. Recoverable errors are shown and the loop
// continues; only form-level failures (e.g. a closed terminal) abort.
func (m *Menu) Run() error {
	for {
		var action string
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("Service Configurator").
				Options(
					huh.NewOption("View all services", "view"),
					huh.NewOption("Toggle services (enable/disable)", "toggle"),
					huh.NewOption("Edit service ports", "ports"),
					huh.NewOption("Show enabled summary", "summary"),
					huh.NewOption("Show profiles", "profiles"),
					huh.NewOption("Save configuration", "save"),
					huh.NewOption("Generate and start", "start"),
					huh.NewOption("Quit", "quit"),
				).
				Value(&action),
		))
		if err := form.Run(); err != nil {
			return err
		}

		switch action {
		case "view":
			m.printServices()
		case "toggle":
			if err := m.toggleServices(); err != nil {
				return err
			}
		case "ports":
			if err := m.editPorts(); err != nil {
				return err
			}
		case "summary":
			m.printSummary()
		case "profiles":
			m.printProfiles()
		case "save":
			if err := m.reg.Save(m.registryPath); err != nil {
				fmt.Print(ui.FormatError("Failed to save", err.Error(), ""))
				continue
			}
			ui.Success(fmt.Sprintf("Configuration saved to %s", m.registryPath))
		case "start":
			if err := m.startStack(); err != nil {
				return err
			}
		case "quit":
			return nil
		}
	}
}

// printServices lists the catalog grouped by category.
func (m *Menu) printServices() {
	groups := make(map[string][]*registry.ServiceDefinition)
	for _, svc := range m.reg.Services.All() {
		cat := svc.Category
		if cat == "" {
			cat = "other"
		}
		groups[cat] = append(groups[cat], svc)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, cat := range names {
		fmt.Println(ui.Header(strings.ToUpper(cat[:1]) + cat[1:]))
		for _, svc := range groups[cat] {
			line := fmt.Sprintf("  %s %s", ui.StatusIcon(svc.Enabled), svc.Name)
			if len(svc.Ports) > 0 {
				line += " " + ui.Dim(fmt.Sprintf("(%s:%d)", svc.Ports[0].HostIP, svc.Ports[0].HostPort))
			}
			fmt.Println(line)
			if svc.Description != "" {
				fmt.Println("      " + ui.Hint(svc.Description))
			}
		}
		fmt.Println()
	}
}

// toggleServices applies a multi-select of the enabled set.
func (m *Menu) toggleServices() error {
	var opts []huh.Option[string]
	var selected []string
	for _, svc := range m.reg.Services.All() {
		label := svc.Name
		if svc.Description != "" {
			label = fmt.Sprintf("%s — %s", svc.Name, svc.Description)
		}
		opts = append(opts, huh.NewOption(label, svc.Name).Selected(svc.Enabled))
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("Enabled services").
			Description("Space toggles, enter confirms.").
			Options(opts...).
			Value(&selected),
	))
	if err := form.Run(); err != nil {
		return err
	}

	on := make(map[string]bool, len(selected))
	for _, name := range selected {
		on[name] = true
	}
	for _, name := range m.reg.Services.Names() {
		if err := m.reg.SetEnabled(name, on[name]); err != nil {
			fmt.Print(ui.FormatError("Toggle failed", err.Error(), ""))
		}
	}

	if err := validate.Check(m.reg); err != nil {
		ui.Warn(err.Error())
		fmt.Println(ui.Hint("resolve the conflict before starting; generation will refuse it"))
	} else {
		ui.Success("Selection updated")
	}
	return nil
}

// editPorts walks service -> port -> new address/port.
func (m *Menu) editPorts() error {
	var withPorts []huh.Option[string]
	for _, svc := range m.reg.Services.All() {
		if len(svc.Ports) == 0 {
			continue
		}
		withPorts = append(withPorts, huh.NewOption(svc.Name, svc.Name))
	}
	if len(withPorts) == 0 {
		ui.Warn("no service has configurable ports")
		return nil
	}

	var name string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title("Which service?").Options(withPorts...).Value(&name),
	))
	if err := form.Run(); err != nil {
		return err
	}

	svc, ok := m.reg.Services.Get(name)
	if !ok {
		fmt.Print(ui.FormatError("Unknown service", name, ""))
		return nil
	}

	index := 0
	if len(svc.Ports) > 1 {
		var portOpts []huh.Option[int]
		for i, p := range svc.Ports {
			portOpts = append(portOpts, huh.NewOption(fmt.Sprintf("Port %d: %s", i+1, p.String()), i))
		}
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[int]().Title("Which mapping?").Options(portOpts...).Value(&index),
		))
		if err := form.Run(); err != nil {
			return err
		}
	}

	current := svc.Ports[index]
	hostIP := current.HostIP
	hostPort := fmt.Sprintf("%d", current.HostPort)

	form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Host address").
			Description(fmt.Sprintf("Current: %s", current.String())).
			Validate(func(s string) error {
				if s == "" {
					return fmt.Errorf("must not be empty")
				}
				return nil
			}).
			Value(&hostIP),
		huh.NewInput().
			Title("Host port").
			Validate(func(s string) error {
				_, err := registry.ParsePort(s)
				return err
			}).
			Value(&hostPort),
	))
	if err := form.Run(); err != nil {
		return err
	}

	port, err := registry.ParsePort(hostPort)
	if err != nil {
		fmt.Print(ui.FormatError("Invalid port", err.Error(), ""))
		return nil
	}
	if err := validate.Binding(m.reg, name, hostIP, port); err != nil {
		fmt.Print(ui.FormatError("Port conflict", err.Error(), "pick a different host port or address"))
		return nil
	}
	if err := m.reg.SetHostIP(name, index, hostIP); err != nil {
		fmt.Print(ui.FormatError("Edit rejected", err.Error(), ""))
		return nil
	}
	if err := m.reg.SetHostPort(name, index, hostPort); err != nil {
		fmt.Print(ui.FormatError("Edit rejected", err.Error(), ""))
		return nil
	}
	ui.Success(fmt.Sprintf("%s port %d is now %s:%d", name, index+1, hostIP, port))
	return nil
}

// printSummary lists the currently enabled services.
func (m *Menu) printSummary() {
	enabled := resolve.Services(m.reg, resolve.ProfileAll)
	fmt.Println(ui.Bold(fmt.Sprintf("Enabled services (%d):", len(enabled))))
	if len(enabled) == 0 {
		fmt.Println(ui.Dim("  none"))
		return
	}
	for _, name := range enabled {
		svc, _ := m.reg.Services.Get(name)
		line := "  " + ui.StatusIcon(true) + " " + name
		if len(svc.Ports) > 0 {
			line += " " + ui.Dim("→ "+fmt.Sprintf("%s:%d", svc.Ports[0].HostIP, svc.Ports[0].HostPort))
		}
		fmt.Println(line)
	}
}

// printProfiles lists profile definitions.
func (m *Menu) printProfiles() {
	for _, p := range m.reg.Profiles.All() {
		fmt.Println(ui.Header(strings.ToUpper(p.Name)))
		if p.Description != "" {
			fmt.Println("  " + p.Description)
		}
		fmt.Printf("  Included services (%d): %s\n\n",
			len(p.IncludedServices), strings.Join(p.IncludedServices, ", "))
	}
}

// startStack collects profile and environment, then hands off.
func (m *Menu) startStack() error {
	profiles := resolve.Profiles(m.reg)
	opts := make([]huh.Option[string], 0, len(profiles)+1)
	for _, p := range profiles {
		opts = append(opts, huh.NewOption(p, p))
	}
	opts = append(opts, huh.NewOption("all (every enabled service)", resolve.ProfileAll))

	profile := "cpu"
	env := string(emit.EnvPrivate)
	dryRun := false

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title("Profile").Options(opts...).Value(&profile),
		huh.NewSelect[string]().Title("Environment").
			Options(
				huh.NewOption("private (all bindings local)", string(emit.EnvPrivate)),
				huh.NewOption("public (ingress only)", string(emit.EnvPublic)),
			).
			Value(&env),
		huh.NewConfirm().Title("Dry run?").Value(&dryRun),
	))
	if err := form.Run(); err != nil {
		return err
	}

	if err := m.start(profile, emit.Environment(env), dryRun); err != nil {
		fmt.Print(ui.FormatError("Start failed", err.Error(), ""))
	}
	return nil
}
