package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/paperdesk/internal/api"
	"github.com/ziadkadry99/paperdesk/internal/config"
	"github.com/ziadkadry99/paperdesk/internal/logging"
	"github.com/ziadkadry99/paperdesk/internal/views"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `paperdesk init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the process logger; --verbose forces debug level.
func newLogger(cfg *config.Config) (*logrus.Logger, error) {
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	return logging.New(level, cfg.Log.File)
}

// newClient creates an API client for CLI use, where there is no page host.
func newClient(cfg *config.Config, log logrus.FieldLogger) *api.Client {
	base := api.ResolveBaseURL(cfg.API.Base, "", cfg.API.Port)
	return api.New(base, api.WithLogger(log))
}

// viewOptions maps the views section of the config onto view options.
func viewOptions(cfg *config.Config, log logrus.FieldLogger) views.Options {
	opts := views.DefaultOptions()
	opts.DateLayout = cfg.Views.DateLayout
	opts.RecentLimit = cfg.Views.RecentLimit
	opts.AuthorsShown = cfg.Views.AuthorsShown
	opts.Logger = log
	return opts
}
