package config

import "time"

// DateLayouts are the date formats offered by the wizard, keyed by label.
var DateLayouts = []struct {
	Label  string
	Layout string
}{
	{Label: "1/2/2006   (en-US)", Layout: "1/2/2006"},
	{Label: "2006-01-02 (ISO 8601)", Layout: "2006-01-02"},
	{Label: "02/01/2006 (en-GB)", Layout: "02/01/2006"},
	{Label: "Jan 2, 2006", Layout: "Jan 2, 2006"},
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           5173,
			AllowAll:       true,
			RequestTimeout: 60 * time.Second,
		},
		API: APIConfig{
			Port: 8000,
		},
		Views: ViewsConfig{
			DateLayout:   "1/2/2006",
			RecentLimit:  5,
			AuthorsShown: 2,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
