package cmd

import (
	"fmt"
	"os"

	"github.com/mjoubert/stackup/internal/config"
	"github.com/mjoubert/stackup/internal/emit"
	"github.com/mjoubert/stackup/internal/menu"
	"github.com/mjoubert/stackup/internal/registry"
	"github.com/mjoubert/stackup/internal/ui"
	"github.com/spf13/cobra"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Edit the service registry interactively",
	Long: `Open an interactive session to enable or disable services, edit port
bindings, save the registry, and start the stack.`,
	RunE: runConfigure,
}

func init() {
	rootCmd.AddCommand(configureCmd)
	configureCmd.Flags().StringVar(&registryFile, "registry", "", "service registry file (default: services.yml)")
}

func runConfigure(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to load config", err.Error(), ""))
		return err
	}
	if registryFile != "" {
		cfg.Registry = registryFile
	}

	reg, err := registry.Load(cfg.Registry)
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to load registry", err.Error(),
			"check the registry path in stackup.yml or pass --registry"))
		return err
	}

	start := func(profile string, env emit.Environment, dryRun bool) error {
		// Persist edits first so the started stack matches what's on disk.
		if err := reg.Save(cfg.Registry); err != nil {
			return err
		}
		return startPipeline(cfg, reg, profile, env, dryRun, false, false)
	}

	return menu.New(reg, cfg.Registry, start).Run()
}
