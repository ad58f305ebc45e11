package config

import "github.com/spf13/viper"

// Config is the tool configuration (stackup.yml), distinct from the service
// registry itself.
type Config struct {
	Registry    string    `mapstructure:"registry"`
	ComposeFile string    `mapstructure:"compose_file"`
	EnvFile     string    `mapstructure:"env_file"`
	OutputDir   string    `mapstructure:"output_dir"`
	Profile     string    `mapstructure:"profile"`
	Environment string    `mapstructure:"environment"`
	Bootstrap   Bootstrap `mapstructure:"bootstrap"`
	Searxng     Searxng   `mapstructure:"searxng"`
}

// Bootstrap configures the external database stack that services flagged
// external_stack depend on (Supabase in the stock catalog).
type Bootstrap struct {
	RepoURL        string `mapstructure:"repo_url"`
	Branch         string `mapstructure:"branch"`
	Dir            string `mapstructure:"dir"`
	SparsePath     string `mapstructure:"sparse_path"`
	ComposeFile    string `mapstructure:"compose_file"`
	PublicOverride string `mapstructure:"public_override"`
	StartupDelay   int    `mapstructure:"startup_delay"` // seconds to wait before the main stack
}

// Searxng configures secret-key seeding for the search service.
type Searxng struct {
	SettingsBase string `mapstructure:"settings_base"`
	Settings     string `mapstructure:"settings"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Registry:    "services.yml",
		ComposeFile: "docker-compose.yml",
		EnvFile:     ".env",
		OutputDir:   ".",
		Profile:     "cpu",
		Environment: "private",
	}
	cfg.Bootstrap.RepoURL = "https://github.com/supabase/supabase.git"
	cfg.Bootstrap.Branch = "master"
	cfg.Bootstrap.Dir = "supabase"
	cfg.Bootstrap.SparsePath = "docker"
	cfg.Bootstrap.ComposeFile = "supabase/docker/docker-compose.yml"
	cfg.Bootstrap.PublicOverride = "docker-compose.override.public.supabase.yml"
	cfg.Bootstrap.StartupDelay = 10
	cfg.Searxng.SettingsBase = "searxng/settings-base.yml"
	cfg.Searxng.Settings = "searxng/settings.yml"

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
