package config

import "time"

// FileName is the default configuration file, looked up in the working
// directory.
const FileName = ".paperdesk.yml"

// Config is the top-level paperdesk configuration, corresponding to .paperdesk.yml.
type Config struct {
	Server ServerConfig `yaml:"server" koanf:"server"`
	API    APIConfig    `yaml:"api" koanf:"api"`
	Views  ViewsConfig  `yaml:"views" koanf:"views"`
	Log    LogConfig    `yaml:"log" koanf:"log"`
}

// ServerConfig configures the frontend HTTP server.
type ServerConfig struct {
	Host           string        `yaml:"host" koanf:"host"`
	Port           int           `yaml:"port" koanf:"port"`
	AllowAll       bool          `yaml:"allow_all" koanf:"allow_all"`
	RequestTimeout time.Duration `yaml:"request_timeout" koanf:"request_timeout"`
}

// APIConfig locates the paper backend. An empty Base means "same host as
// the page, on Port".
type APIConfig struct {
	Base string `yaml:"base" koanf:"base"`
	Port int    `yaml:"port" koanf:"port"`
}

// ViewsConfig tunes page rendering.
type ViewsConfig struct {
	DateLayout   string `yaml:"date_layout" koanf:"date_layout"`
	RecentLimit  int    `yaml:"recent_limit" koanf:"recent_limit"`
	AuthorsShown int    `yaml:"authors_shown" koanf:"authors_shown"`
}

// LogConfig configures the logrus logger.
type LogConfig struct {
	Level string `yaml:"level" koanf:"level"`
	File  string `yaml:"file" koanf:"file"`
}
