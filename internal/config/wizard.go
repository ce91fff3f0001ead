package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to paperdesk! Let's configure the dashboard.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Backend location.
	basePrompt := promptui.Prompt{
		Label:    "Backend URL (leave blank to use the page host)",
		Default:  "",
		Validate: validateBase,
	}
	base, err := basePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("backend url: %w", err)
	}
	cfg.API.Base = strings.TrimSpace(base)

	if cfg.API.Base == "" {
		apiPortPrompt := promptui.Prompt{
			Label:    "Backend port",
			Default:  strconv.Itoa(cfg.API.Port),
			Validate: validatePort,
		}
		portStr, err := apiPortPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("backend port: %w", err)
		}
		cfg.API.Port, _ = strconv.Atoi(portStr)
	}

	// 2. Frontend port.
	portPrompt := promptui.Prompt{
		Label:    "Dashboard port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("dashboard port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 3. Date format.
	labels := make([]string, len(DateLayouts))
	for i, l := range DateLayouts {
		labels[i] = l.Label
	}
	layoutPrompt := promptui.Select{
		Label: "Select date format",
		Items: labels,
	}
	layoutIdx, _, err := layoutPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("date format: %w", err)
	}
	cfg.Views.DateLayout = DateLayouts[layoutIdx].Layout

	// 4. Log level.
	levelPrompt := promptui.Select{
		Label: "Select log level",
		Items: []string{"info", "debug", "warn", "error"},
	}
	_, level, err := levelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	cfg.Log.Level = level

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(s string) error {
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || !validPort(p) {
		return fmt.Errorf("enter a port between 1 and 65535")
	}
	return nil
}

func validateBase(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	cfg := DefaultConfig()
	cfg.API.Base = s
	return cfg.Validate()
}
