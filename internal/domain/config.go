package domain

import (
	"bytes"
	_ "embed"
	"path/filepath"
	"text/template"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// Config file locations.
const (
	AppName             = "taskdeck"
	ConfigFileName      = "config.toml"    // Config file name in the global config directory
	LocalConfigFileName = ".taskdeck.toml" // Config file name in the working directory
	EnvAPIURL           = "TASKDECK_API_URL"
	DefaultAPIBaseURL   = "http://localhost:8000/api"
	DefaultAPITimeout   = 15 * time.Second
	DefaultLogLevel     = "info"
)

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string    `toml:"-"`
	API      APIConfig   `toml:"api"`
	Log      LogConfig   `toml:"log"`
	Tasks    TasksConfig `toml:"tasks"`
	TUI      TUIConfig   `toml:"tui"`
}

// APIConfig holds backend connection settings from [api] section.
type APIConfig struct {
	BaseURL   string        `toml:"base_url,omitempty"`   // Backend base URL including the /api prefix
	Timeout   time.Duration `toml:"timeout,omitempty"`    // Per-request timeout (0 = default)
	RateLimit float64       `toml:"rate_limit,omitempty"` // Requests per second (0 = unlimited)
	Burst     int           `toml:"burst,omitempty"`      // Burst size for the rate limiter
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
	Dir   string `toml:"dir,omitempty"`   // Directory for log files (empty = file logging disabled)
}

// TasksConfig holds task defaults from [tasks] section.
type TasksConfig struct {
	DefaultPriority int `toml:"default_priority,omitempty"` // Priority for new tasks (0 = 50)
}

// TUIConfig holds dashboard settings from [tui] section.
type TUIConfig struct {
	ShowDone bool `toml:"show_done,omitempty"` // Show done tasks in the dashboard
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultAPIBaseURL,
			Timeout: DefaultAPITimeout,
			Burst:   1,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Tasks: TasksConfig{
			DefaultPriority: DefaultPriorityScore,
		},
	}
}

// GlobalConfigDir returns the global config directory under configHome.
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppName)
}

// GlobalConfigPath returns the global config file path under configHome.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// LocalConfigPath returns the local config file path in dir.
func LocalConfigPath(dir string) string {
	return filepath.Join(dir, LocalConfigFileName)
}

// configTemplate is parsed once; the content is static.
var configTemplate = template.Must(template.New("config").Parse(configTemplateContent))

// RenderConfigTemplate renders the commented config template with the given values.
func RenderConfigTemplate(cfg *Config) string {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	var buf bytes.Buffer
	if err := configTemplate.Execute(&buf, cfg); err != nil {
		return configTemplateContent
	}
	return buf.String()
}

// ConfigInfo describes a config file on disk.
type ConfigInfo struct {
	Path    string // Absolute path to the file
	Content string // Raw file content (empty if missing)
	Exists  bool   // Whether the file exists
}
