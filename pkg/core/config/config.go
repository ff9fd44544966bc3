package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/monkey/foundation/core/error"
)

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Lexer   LexerConfig   `toml:"lexer" yaml:"lexer"`
	REPL    REPLConfig    `toml:"repl" yaml:"repl"`
	History HistoryConfig `toml:"history" yaml:"history"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name" yaml:"name"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
	LogFile   string `toml:"log_file" yaml:"log_file"` // optional, appended to
}

// LexerConfig holds input limits and caching for the language engine
type LexerConfig struct {
	MaxInputLength int `toml:"max_input_length" yaml:"max_input_length"`
	CacheSize      int `toml:"cache_size" yaml:"cache_size"`
}

// REPLConfig holds interactive loop settings
type REPLConfig struct {
	Prompt      string `toml:"prompt" yaml:"prompt"`
	ExitCommand string `toml:"exit_command" yaml:"exit_command"`
	Mode        string `toml:"mode" yaml:"mode"`
	Strict      bool   `toml:"strict" yaml:"strict"`
}

// HistoryConfig holds REPL history storage settings
type HistoryConfig struct {
	Enabled    bool     `toml:"enabled" yaml:"enabled"`
	Path       string   `toml:"path" yaml:"path"`
	MaxEntries int      `toml:"max_entries" yaml:"max_entries"`
	Timeout    Duration `toml:"timeout" yaml:"timeout"`
}

// REPL modes
const (
	ModeTokens = "tokens"
	ModeAST    = "ast"
)

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.expandEnvVars()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, mdwerror.Newf("config file not found: %s", path).
			WithCode(mdwerror.CodeMissingConfig).
			WithDetail("path", path)
	}
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to read config").
			WithCode(mdwerror.CodeConfigError).
			WithDetail("path", path)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(content, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, &cfg)
	default:
		return nil, mdwerror.Newf("unsupported config format: %s", filepath.Ext(path)).
			WithCode(mdwerror.CodeInvalidConfig).
			WithDetail("path", path)
	}
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config").
			WithCode(mdwerror.CodeInvalidConfig).
			WithDetail("path", path)
	}

	// Apply defaults
	cfg.applyDefaults()

	// Expand environment variables in paths
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration from the MONKEY_CONFIG environment
// variable or the first default location that exists. Without any config
// file the defaults are returned.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv("MONKEY_CONFIG"); path != "" {
		return Load(path)
	}

	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}

	return Default(), nil
}

// DefaultPaths returns the locations searched by LoadFromEnv
func DefaultPaths() []string {
	return []string{
		"./configs/monkey.toml",
		"./configs/monkey.yaml",
		"./monkey.toml",
		filepath.Join(os.Getenv("HOME"), ".config/monkey/config.toml"),
	}
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "monkey"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "console"
	}

	// Lexer
	if c.Lexer.MaxInputLength == 0 {
		c.Lexer.MaxInputLength = 4096
	}
	if c.Lexer.CacheSize == 0 {
		c.Lexer.CacheSize = 256
	}

	// REPL
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = ">> "
	}
	if c.REPL.ExitCommand == "" {
		c.REPL.ExitCommand = ".exit"
	}
	if c.REPL.Mode == "" {
		c.REPL.Mode = ModeTokens
	}

	// History
	if c.History.Path == "" {
		c.History.Path = "$HOME/.local/share/monkey/history.db"
	}
	if c.History.MaxEntries == 0 {
		c.History.MaxEntries = 1000
	}
	if c.History.Timeout.Duration == 0 {
		c.History.Timeout.Duration = 5 * time.Second
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.History.Path = os.ExpandEnv(c.History.Path)
	c.General.LogFile = os.ExpandEnv(c.General.LogFile)
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	invalid := func(field string, value interface{}) error {
		return mdwerror.Newf("invalid value for %s: %v", field, value).
			WithCode(mdwerror.CodeInvalidConfig).
			WithDetail("field", field)
	}

	switch c.REPL.Mode {
	case ModeTokens, ModeAST:
	default:
		return invalid("repl.mode", c.REPL.Mode)
	}
	if c.History.MaxEntries < 0 {
		return invalid("history.max_entries", c.History.MaxEntries)
	}
	if c.History.Timeout.Duration < 0 {
		return invalid("history.timeout", c.History.Timeout)
	}

	return nil
}
