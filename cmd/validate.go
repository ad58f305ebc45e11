package cmd

import (
	"fmt"
	"os"

	"github.com/mjoubert/stackup/internal/config"
	"github.com/mjoubert/stackup/internal/registry"
	"github.com/mjoubert/stackup/internal/ui"
	"github.com/mjoubert/stackup/internal/validate"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the service registry",
	Long: `Check that the registry has its required sections and that no two
enabled services claim the same host address and port.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&registryFile, "registry", "", "service registry file (default: services.yml)")
}

func runValidate(cmd *cobra.Command, args []string) error {
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

	fmt.Println(ui.Bold(fmt.Sprintf("Validating %s...", cfg.Registry)))

	passed := 0
	failed := 0

	sections := []struct {
		name    string
		present bool
	}{
		{"global", reg.Global != nil},
		{"services", reg.Services != nil},
		{"profiles", reg.Profiles != nil},
	}
	for _, s := range sections {
		if s.present {
			ui.ValidationOK(s.name, "section present")
			passed++
		} else {
			ui.ValidationErr(s.name, "section missing", "add a top-level "+s.name+": block")
			failed++
		}
	}

	if reg.Services != nil {
		conflicts := validate.Conflicts(reg)
		if len(conflicts) == 0 {
			enabled := 0
			for _, svc := range reg.Services.All() {
				if svc.Enabled {
					enabled++
				}
			}
			ui.ValidationOK("ports", fmt.Sprintf("no conflicts among %d enabled services", enabled))
			passed++
		}
		for _, c := range conflicts {
			ui.ValidationErr("ports", c.Error(), "change one of the bindings or disable a service")
			failed++
		}
	}

	fmt.Println()
	if failed == 0 {
		ui.Success(fmt.Sprintf("%d checks passed, 0 errors", passed))
		return nil
	}
	fmt.Printf("%d checks passed, %d errors\n", passed, failed)
	return fmt.Errorf("%d validation errors", failed)
}
