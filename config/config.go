/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v10"

	"github.com/PivotLLM/Preceptor/global"
)

//go:embed config-example.json
var configExample []byte

// Config provides access to application configuration
type Config struct {
	configPath string      // resolved path to config file
	data       *configData // parsed configuration
	firstRun   bool        // true if config was just created
	dataDir    string      // resolved data directory (personas, presets, documents)
}

// configData holds the parsed configuration (internal)
type configData struct {
	Version            int       `json:"version"`
	BaseDir            string    `json:"base_dir"`
	DataDir            string    `json:"data_dir,omitempty"`
	MaxPersonas        int       `json:"max_personas,omitempty"`
	CleanupDays        int       `json:"cleanup_days,omitempty"`
	Chat               Chat      `json:"chat,omitempty"`
	Speech             Speech    `json:"speech,omitempty"`
	Documents          Documents `json:"documents,omitempty"`
	Storage            Storage   `json:"storage,omitempty"`
	MarkNonDestructive bool      `json:"mark_non_destructive,omitempty"`
	Logging            Logging   `json:"logging"`
}

// Chat configures the conversation collaborator
type Chat struct {
	Model         string  `json:"model,omitempty"`
	MaxTokens     int     `json:"max_tokens,omitempty"`
	Temperature   float64 `json:"temperature,omitempty"`
	BaseURL       string  `json:"base_url,omitempty"`
	HistoryWindow int     `json:"history_window,omitempty"` // recent turns forwarded per request
}

// Speech configures the synthesis collaborator
type Speech struct {
	Language string `json:"language,omitempty"`
	Voice    string `json:"voice,omitempty"`
	BaseURL  string `json:"base_url,omitempty"`
}

// Documents configures reference document import limits
type Documents struct {
	MaxFileMB     int `json:"max_file_mb,omitempty"`
	MaxPerPersona int `json:"max_per_persona,omitempty"`
}

// Storage configures the persistence layer. FileLocking is a pointer so an
// absent key keeps the default (enabled) while an explicit false disables it.
type Storage struct {
	FileLocking *bool `json:"file_locking,omitempty"`
}

// Logging represents logging configuration
type Logging struct {
	File  string `json:"file"`
	Level string `json:"level"`
}

// Credentials holds API keys read from the environment. Keys never live in
// the config file so that exported configs and backups stay shareable.
type Credentials struct {
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	GoogleTTSAPIKey string `env:"GOOGLE_TTS_API_KEY"`
}

// Option is a functional option for configuring Config
type Option func(*Config)

// New creates a new Config instance with optional configuration
func New(opts ...Option) *Config {
	c := &Config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithConfigPath sets an explicit config file path
func WithConfigPath(path string) Option {
	return func(c *Config) {
		c.configPath = path
	}
}

// Load loads and validates configuration from file
// If the base directory or config file doesn't exist, it creates them from embedded defaults
func (c *Config) Load() error {
	// Resolve config file path
	configPath, err := c.resolveConfigPath()
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}
	c.configPath = configPath

	// Determine if this is a first-run scenario
	baseDir := c.resolveDefaultBaseDir()
	baseDirExists := dirExists(baseDir)
	configExists := fileExists(configPath)

	// First-run: create base directory
	if !baseDirExists {
		if err := os.MkdirAll(baseDir, 0755); err != nil {
			return fmt.Errorf("failed to create base directory %s: %w", baseDir, err)
		}
	}

	// Create default config if it doesn't exist
	if !configExists {
		c.firstRun = true
		if err := setupDefaultConfig(configPath); err != nil {
			return fmt.Errorf("failed to create default config at %s: %w", configPath, err)
		}
		// Continue loading the newly created config instead of returning error
	}

	// Read and parse config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	// First pass: detect unknown fields using strict parsing
	var cfg configData
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		// Check if it's an unknown field error
		errStr := err.Error()
		if strings.Contains(errStr, "unknown field") {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: config file %s: %v\n", configPath, err)
			// Re-parse without strict mode to still load the config
			if err := json.Unmarshal(data, &cfg); err != nil {
				return fmt.Errorf("failed to parse config file %s: %w", configPath, err)
			}
		} else {
			return fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
	}

	c.data = &cfg

	// Resolve and validate base_dir
	if err := c.resolveBaseDir(); err != nil {
		return err
	}

	// Validate configuration
	if err := c.validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Normalize all paths (resolve relative to base_dir) and create directories
	if err := c.normalizePaths(); err != nil {
		return fmt.Errorf("failed to normalize paths: %w", err)
	}

	return nil
}

// setupDefaultConfig creates a default config file from the embedded config-example.json
func setupDefaultConfig(configPath string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}

	// Write config file
	if err := os.WriteFile(configPath, configExample, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", configPath, err)
	}

	return nil
}

// resolveConfigPath determines the config file path using precedence rules
func (c *Config) resolveConfigPath() (string, error) {
	// 1. Explicit path (from WithConfigPath option)
	if c.configPath != "" {
		return c.resolveToAbsolute(c.configPath)
	}

	// 2. Environment variable
	if envPath := os.Getenv(global.ConfigEnvVar); envPath != "" {
		return c.resolveToAbsolute(envPath)
	}

	// 3. Default: base_dir/config.json
	baseDir := c.resolveDefaultBaseDir()
	return filepath.Join(baseDir, global.DefaultConfigFileName), nil
}

// resolveDefaultBaseDir returns the resolved default base directory
func (c *Config) resolveDefaultBaseDir() string {
	return expandHome(global.DefaultBaseDir)
}

// resolveBaseDir resolves and validates the base_dir from config
func (c *Config) resolveBaseDir() error {
	if c.data.BaseDir == "" {
		c.data.BaseDir = expandHome(global.DefaultBaseDir)
		return nil
	}

	// Expand ~/ if present
	resolved := expandHome(c.data.BaseDir)

	// Check if it's absolute
	if !filepath.IsAbs(resolved) {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: base_dir '%s' is not absolute, using default '%s'\n",
			c.data.BaseDir, global.DefaultBaseDir)
		resolved = expandHome(global.DefaultBaseDir)
	}

	c.data.BaseDir = resolved
	return nil
}

// resolveToAbsolute converts a path to absolute, expanding ~/ if needed
func (c *Config) resolveToAbsolute(path string) (string, error) {
	expanded := expandHome(path)
	if filepath.IsAbs(expanded) {
		return expanded, nil
	}
	return filepath.Abs(expanded)
}

// resolvePath resolves a path relative to base_dir
// - If absolute, returns as-is
// - If starts with ~/, expands home directory
// - Otherwise, joins with base_dir
func (c *Config) resolvePath(path string) string {
	if path == "" {
		return ""
	}

	// Expand ~/ first
	expanded := expandHome(path)

	// If absolute, return as-is
	if filepath.IsAbs(expanded) {
		return expanded
	}

	// Relative: join with base_dir
	return filepath.Join(c.data.BaseDir, expanded)
}

// expandHome expands ~/ to the user's home directory, returning the path
// unchanged if the home directory cannot be determined
func expandHome(path string) string {
	expanded, err := global.ExpandHomePath(path)
	if err != nil {
		return path
	}
	return expanded
}

// validate validates the configuration
func (c *Config) validate() error {
	// Check version
	if c.data.Version != 1 {
		if c.data.Version < 1 {
			return fmt.Errorf("config version %d is too old (expected 1)", c.data.Version)
		}
		return fmt.Errorf("config version %d is newer than supported (expected 1)", c.data.Version)
	}

	if _, err := global.ValidateRetention(c.data.MaxPersonas); err != nil {
		return err
	}

	if _, err := global.ValidateCleanupDays(c.data.CleanupDays); err != nil {
		return err
	}

	if _, err := global.ValidateHistoryWindow(c.data.Chat.HistoryWindow); err != nil {
		return err
	}

	if c.data.Chat.MaxTokens < 0 {
		return fmt.Errorf("chat max_tokens cannot be negative")
	}

	if c.data.Chat.Temperature < 0 || c.data.Chat.Temperature > 2 {
		return fmt.Errorf("chat temperature must be between 0 and 2, got %v", c.data.Chat.Temperature)
	}

	if c.data.Documents.MaxFileMB < 0 {
		return fmt.Errorf("documents max_file_mb cannot be negative")
	}

	if c.data.Documents.MaxPerPersona < 0 {
		return fmt.Errorf("documents max_per_persona cannot be negative")
	}

	return nil
}

// normalizePaths resolves all paths to absolute paths and creates directories
func (c *Config) normalizePaths() error {
	// Resolve data directory (use default if not specified)
	dataDir := c.data.DataDir
	if dataDir == "" {
		dataDir = global.DefaultDataDir
	}
	c.dataDir = c.resolvePath(dataDir)

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(c.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory at %s: %w", c.dataDir, err)
	}

	// Normalize log file path
	if c.data.Logging.File == "" {
		c.data.Logging.File = global.DefaultLogFileName
	}
	c.data.Logging.File = c.resolvePath(c.data.Logging.File)

	return nil
}

// Getter methods

// Version returns the config version
func (c *Config) Version() int {
	return c.data.Version
}

// BaseDir returns the resolved base directory (always absolute)
func (c *Config) BaseDir() string {
	return c.data.BaseDir
}

// DataDir returns the resolved data directory (always absolute)
func (c *Config) DataDir() string {
	return c.dataDir
}

// ConfigPath returns the path to the loaded config file
func (c *Config) ConfigPath() string {
	return c.configPath
}

// IsFirstRun returns true if this is the first run (config was just created)
func (c *Config) IsFirstRun() bool {
	return c.firstRun
}

// LogFile returns the resolved log file path (always absolute)
func (c *Config) LogFile() string {
	return c.data.Logging.File
}

// LogLevel returns the configured log level
func (c *Config) LogLevel() string {
	return c.data.Logging.Level
}

// MaxPersonas returns the persona retention cap with defaults applied
func (c *Config) MaxPersonas() int {
	validated, err := global.ValidateRetention(c.data.MaxPersonas)
	if err != nil {
		return global.DefaultMaxPersonas
	}
	return validated
}

// CleanupDays returns the cleanup age cutoff with defaults applied
func (c *Config) CleanupDays() int {
	validated, err := global.ValidateCleanupDays(c.data.CleanupDays)
	if err != nil {
		return global.DefaultCleanupDays
	}
	return validated
}

// Chat returns the chat configuration with defaults applied
func (c *Config) Chat() Chat {
	ch := c.data.Chat
	// Apply defaults for zero values
	if ch.Model == "" {
		ch.Model = global.DefaultChatModel
	}
	if ch.MaxTokens <= 0 {
		ch.MaxTokens = global.DefaultChatMaxTokens
	}
	if ch.Temperature <= 0 {
		ch.Temperature = global.DefaultChatTemperature
	}
	if ch.BaseURL == "" {
		ch.BaseURL = global.DefaultChatEndpoint
	}
	if ch.HistoryWindow <= 0 {
		ch.HistoryWindow = global.DefaultHistoryWindow
	}
	return ch
}

// Speech returns the speech configuration with defaults applied
func (c *Config) Speech() Speech {
	sp := c.data.Speech
	if sp.Language == "" {
		sp.Language = global.DefaultSpeechLanguage
	}
	if sp.Voice == "" {
		sp.Voice = global.DefaultSpeechVoice
	}
	if sp.BaseURL == "" {
		sp.BaseURL = global.DefaultSpeechEndpoint
	}
	return sp
}

// Documents returns the document import configuration with defaults applied
func (c *Config) Documents() Documents {
	d := c.data.Documents
	if d.MaxFileMB <= 0 {
		d.MaxFileMB = global.DefaultMaxDocumentMB
	}
	if d.MaxPerPersona <= 0 {
		d.MaxPerPersona = global.DefaultMaxDocsPerName
	}
	return d
}

// FileLocking reports whether cross-process lock files guard store writes.
// Enabled unless the config explicitly turns it off.
func (c *Config) FileLocking() bool {
	if c.data.Storage.FileLocking == nil {
		return true
	}
	return *c.data.Storage.FileLocking
}

// MarkNonDestructive returns true if tools should be marked as non-destructive
func (c *Config) MarkNonDestructive() bool {
	return c.data.MarkNonDestructive
}

// Credentials reads API keys from the environment
func (c *Config) Credentials() (Credentials, error) {
	var creds Credentials
	if err := env.Parse(&creds); err != nil {
		return Credentials{}, fmt.Errorf("failed to read credentials from environment: %w", err)
	}
	return creds, nil
}

// Helper functions

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && info.IsDir()
}
