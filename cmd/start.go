package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mjoubert/stackup/internal/config"
	"github.com/mjoubert/stackup/internal/driver"
	"github.com/mjoubert/stackup/internal/emit"
	"github.com/mjoubert/stackup/internal/registry"
	"github.com/mjoubert/stackup/internal/resolve"
	"github.com/mjoubert/stackup/internal/stack"
	"github.com/mjoubert/stackup/internal/ui"
	"github.com/mjoubert/stackup/internal/validate"
	"github.com/spf13/cobra"
)

var (
	startProfile     string
	startEnvironment string
	registryFile     string
	dryRun           bool
	listServices     bool
	generateOnly     bool
	noBootstrap      bool
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Validate, generate artifacts, and start the stack",
	Long: `Run the full pipeline: load the registry, validate it, resolve the
services for the requested profile, generate the compose override and
Caddyfile, and bring the stack up.`,
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)

	startCmd.Flags().StringVarP(&startProfile, "profile", "p", "", "profile to start: cpu, gpu-nvidia, gpu-amd, none (default: cpu)")
	startCmd.Flags().StringVarP(&startEnvironment, "environment", "e", "", "deployment environment: private, public (default: private)")
	startCmd.Flags().StringVar(&registryFile, "registry", "", "service registry file (default: services.yml)")
	startCmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would start without starting anything")
	startCmd.Flags().BoolVar(&listServices, "list-services", false, "list the catalog and exit")
	startCmd.Flags().BoolVar(&generateOnly, "generate-only", false, "write the artifacts and stop before invoking docker")
	startCmd.Flags().BoolVar(&noBootstrap, "no-bootstrap", false, "skip external stack setup and startup")
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to load config", err.Error(), ""))
		return err
	}
	if startProfile != "" {
		cfg.Profile = startProfile
	}
	if startEnvironment != "" {
		cfg.Environment = startEnvironment
	}
	if registryFile != "" {
		cfg.Registry = registryFile
	}

	env := emit.Environment(cfg.Environment)
	if !env.Valid() {
		return fmt.Errorf("unknown environment %q (want private or public)", cfg.Environment)
	}

	reg, err := registry.Load(cfg.Registry)
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to load registry", err.Error(),
			"check the registry path in stackup.yml or pass --registry"))
		return err
	}

	if listServices {
		printCatalog(reg)
		return nil
	}

	return startPipeline(cfg, reg, cfg.Profile, env, dryRun, generateOnly, noBootstrap)
}

// startPipeline is the load→validate→resolve→generate→drive sequence shared
// by the start command and the interactive menu. Validation failures abort
// before any artifact is written.
func startPipeline(cfg *config.Config, reg *registry.Registry, profile string, env emit.Environment, dryRun, generateOnly, noBootstrap bool) error {
	if err := validate.Check(reg); err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Invalid configuration", err.Error(),
			"fix the registry; nothing was generated"))
		return err
	}
	ui.Success("Configuration validation passed")

	selection := profile
	if selection == driver.ProfileNone {
		// "none" only suppresses the compose --profile flag; every enabled
		// service still starts.
		selection = resolve.ProfileAll
	}
	services := resolve.Services(reg, selection)
	if len(services) == 0 {
		return fmt.Errorf("no services enabled for profile %q", profile)
	}

	printSummary(reg, services, profile)

	if dryRun {
		fmt.Println(ui.Hint("dry run — nothing was generated or started"))
		return nil
	}

	arts, err := emit.WriteArtifacts(reg, services, env, cfg.OutputDir)
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Artifact generation failed", err.Error(), ""))
		return err
	}
	ui.Success(fmt.Sprintf("Generated %s", arts.OverlayPath))
	ui.Success(fmt.Sprintf("Generated %s", arts.CaddyfilePath))

	if base, err := stack.LoadBase(cfg.ComposeFile); err != nil {
		ui.Warn(fmt.Sprintf("could not inspect %s: %v", cfg.ComposeFile, err))
	} else if missing := base.Missing(services); len(missing) > 0 {
		ui.Warn(fmt.Sprintf("not defined in %s: %s", cfg.ComposeFile, strings.Join(missing, ", ")))
	}

	if generateOnly {
		return nil
	}

	if _, err := findExecutable("docker"); err != nil {
		return fmt.Errorf("docker not found in PATH")
	}

	d := driver.New()
	project := reg.Global.Project()
	composeProfile := profile
	if composeProfile == resolve.ProfileAll {
		composeProfile = ""
	}

	needsExternal := false
	for _, name := range services {
		if svc, ok := reg.Services.Get(name); ok && svc.ExternalStack {
			needsExternal = true
			break
		}
	}

	if needsExternal && !noBootstrap {
		fmt.Println(ui.Bold("Preparing external stack..."))
		if err := d.CloneSparse(cfg.Bootstrap.RepoURL, cfg.Bootstrap.Dir, cfg.Bootstrap.SparsePath, cfg.Bootstrap.Branch); err != nil {
			return fmt.Errorf("bootstrap clone: %w", err)
		}
		envTarget := filepath.Join(cfg.Bootstrap.Dir, cfg.Bootstrap.SparsePath, ".env")
		if err := driver.CopyEnv(cfg.EnvFile, envTarget); err != nil {
			return fmt.Errorf("bootstrap env: %w", err)
		}
	}

	for _, name := range services {
		if name == "searxng" {
			if err := driver.SeedSecret(cfg.Searxng.SettingsBase, cfg.Searxng.Settings); err != nil {
				ui.Warn(fmt.Sprintf("searxng secret: %v", err))
			}
			break
		}
	}

	if err := d.StopStack(project, composeProfile, cfg.ComposeFile); err != nil {
		return err
	}

	if needsExternal && !noBootstrap {
		if err := d.StartExternal(project, cfg.Bootstrap.ComposeFile, env, cfg.Bootstrap.PublicOverride); err != nil {
			return err
		}
		if cfg.Bootstrap.StartupDelay > 0 {
			fmt.Println(ui.Hint(fmt.Sprintf("waiting %ds for the external stack...", cfg.Bootstrap.StartupDelay)))
			time.Sleep(time.Duration(cfg.Bootstrap.StartupDelay) * time.Second)
		}
	}

	if err := d.StartStack(project, composeProfile, cfg.ComposeFile, arts.OverlayPath); err != nil {
		return err
	}

	ui.Success("Stack startup complete")
	fmt.Println(ui.Hint(fmt.Sprintf("follow logs with: docker compose -p %s logs -f", project)))
	return nil
}

// printCatalog lists every service with its enabled state.
func printCatalog(reg *registry.Registry) {
	fmt.Println(ui.Bold("Available services:"))
	for _, svc := range reg.Services.All() {
		line := fmt.Sprintf("  %s %s", ui.StatusIcon(svc.Enabled), svc.Name)
		if svc.Description != "" {
			line += " " + ui.Dim("— "+svc.Description)
		}
		fmt.Println(line)
	}
}

// printSummary shows the resolved services grouped by category, plus local
// access URLs for the proxied front-ends.
func printSummary(reg *registry.Registry, services []string, profile string) {
	fmt.Println(ui.Bold(fmt.Sprintf("Starting stack with profile %q — %d services", profile, len(services))))

	groups := make(map[string][]string)
	for _, name := range services {
		svc, _ := reg.Services.Get(name)
		cat := svc.Category
		if cat == "" {
			cat = "other"
		}
		groups[cat] = append(groups[cat], name)
	}
	cats := make([]string, 0, len(groups))
	for cat := range groups {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	for _, cat := range cats {
		fmt.Println("  " + ui.Header(strings.ToUpper(cat[:1])+cat[1:]))
		for _, name := range groups[cat] {
			svc, _ := reg.Services.Get(name)
			line := "    " + ui.StatusIcon(true) + " " + name
			if len(svc.Ports) > 0 {
				line += ui.Dim(fmt.Sprintf(":%d", svc.Ports[0].HostPort))
			}
			if svc.Description != "" {
				line += " " + ui.Dim("— "+svc.Description)
			}
			fmt.Println(line)
		}
	}

	var urls []string
	for _, name := range services {
		svc, _ := reg.Services.Get(name)
		if !svc.ReverseProxy || len(svc.Ports) == 0 {
			continue
		}
		if svc.Ports[0].HostIP == "127.0.0.1" {
			urls = append(urls, fmt.Sprintf("  %s: http://localhost:%d", name, svc.Ports[0].HostPort))
		}
	}
	if len(urls) > 0 {
		fmt.Println(ui.Bold("Access URLs (after startup):"))
		for _, u := range urls {
			fmt.Println(u)
		}
	}
}
