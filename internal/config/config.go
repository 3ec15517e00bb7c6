package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the Trace-Aid client configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	UI     UIConfig     `toml:"ui"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig points the client at a Trace-Aid backend.
type ServerConfig struct {
	BaseURL string `toml:"base_url"`
	Token   string `toml:"token"`
}

// UIConfig holds display and editing preferences.
type UIConfig struct {
	Theme string `toml:"theme"`

	// Autosave toggles the draft autosave coordinator.
	Autosave bool `toml:"autosave"`
	// AutosaveDelayMS is the debounce quiet period in milliseconds.
	AutosaveDelayMS int `toml:"autosave_delay_ms"`
	// PollIntervalS is how often list screens refresh, in seconds.
	PollIntervalS int `toml:"poll_interval_s"`
}

// LogConfig controls the session log file.
type LogConfig struct {
	Level string `toml:"level"`
	// File overrides the default log location. Empty uses the data
	// directory.
	File string `toml:"file"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL: "http://localhost:8787",
			Token:   "${TRACE_AID_TOKEN}",
		},
		UI: UIConfig{
			Theme:           "harbor",
			Autosave:        true,
			AutosaveDelayMS: 2000,
			PollIntervalS:   60,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// AutosaveDelay returns the debounce period, falling back to 2s for
// missing or nonsensical values.
func (c *Config) AutosaveDelay() time.Duration {
	if c.UI.AutosaveDelayMS <= 0 {
		return 2 * time.Second
	}
	return time.Duration(c.UI.AutosaveDelayMS) * time.Millisecond
}

// PollInterval returns the list refresh cadence, falling back to 60s.
func (c *Config) PollInterval() time.Duration {
	if c.UI.PollIntervalS <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.UI.PollIntervalS) * time.Second
}

// DefaultDir returns the per-user configuration directory.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return filepath.Join(base, "trace-aid"), nil
}

// Manager handles configuration loading and saving.
type Manager struct {
	dir        string
	configPath string
	config     *Config
}

// NewManager creates a configuration manager rooted at dir.
func NewManager(dir string) *Manager {
	return &Manager{
		dir:        dir,
		configPath: filepath.Join(dir, "config.toml"),
		config:     DefaultConfig(),
	}
}

// Load reads the configuration from disk, writing defaults first when no
// config file exists yet.
func (m *Manager) Load() error {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(m.configPath); os.IsNotExist(err) {
		return m.Save()
	}

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	expandEnvVars(&config)

	m.config = &config
	return nil
}

// Save writes the current configuration to disk. The file may hold an API
// token, so it is not world-readable.
func (m *Manager) Save() error {
	data, err := toml.Marshal(m.config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	return m.config
}

// Set updates a configuration value by dotted key and saves.
func (m *Manager) Set(key, value string) error {
	switch key {
	case "server.base_url":
		m.config.Server.BaseURL = value
	case "server.token":
		m.config.Server.Token = value
	case "ui.theme":
		m.config.UI.Theme = value
	case "ui.autosave":
		m.config.UI.Autosave = value == "true"
	case "ui.autosave_delay_ms":
		ms, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid autosave delay %q: %w", value, err)
		}
		m.config.UI.AutosaveDelayMS = ms
	case "ui.poll_interval_s":
		s, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid poll interval %q: %w", value, err)
		}
		m.config.UI.PollIntervalS = s
	case "log.level":
		m.config.Log.Level = value
	case "log.file":
		m.config.Log.File = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	return m.Save()
}

// StateDir returns where persisted UI state (column prefs, dismissed tips)
// lives.
func (m *Manager) StateDir() string {
	return filepath.Join(m.dir, "state")
}

// LogFile returns the session log path, honoring the configured override.
func (m *Manager) LogFile() string {
	if m.config.Log.File != "" {
		return m.config.Log.File
	}
	return filepath.Join(m.dir, "trace-aid.log")
}

// expandEnvVars expands environment variables in string-valued settings.
func expandEnvVars(config *Config) {
	config.Server.BaseURL = expandString(config.Server.BaseURL)
	config.Server.Token = expandString(config.Server.Token)
	config.Log.File = expandString(config.Log.File)
}

// expandString expands environment variables in a string.
// Supports $VAR and ${VAR} syntax.
func expandString(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		// Return original if env var not found
		return match
	})
}
