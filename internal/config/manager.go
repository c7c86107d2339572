package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	apperrors "github.com/ahfte/trading-engine/internal/errors"
	"github.com/ahfte/trading-engine/internal/logger"
	"github.com/ahfte/trading-engine/internal/monitoring"
)

// DefaultConfigPath is the config file location used when none is given
const DefaultConfigPath = "config/trading_config.json"

// Manager owns the merged, validated configuration for the whole process.
// It is built once at startup; consumers read from it afterwards. The
// manager itself is not safe for concurrent mutation, a single owner is
// assumed.
type Manager struct {
	configPath string
	env        EnvLookup
	log        logger.Logger

	Trading TradingConfig
	Backend BackendConfig
	API     APIConfig

	warnings []string
}

// Option customizes manager construction
type Option func(*Manager)

// WithEnvLookup injects an environment source, replacing os.Getenv
func WithEnvLookup(env EnvLookup) Option {
	return func(m *Manager) {
		m.env = env
	}
}

// WithLogger injects the logger the manager reports through
func WithLogger(l logger.Logger) Option {
	return func(m *Manager) {
		m.log = l
	}
}

// configFile mirrors the on-disk document: up to three top-level keys,
// each holding a partial field set for one section.
type configFile struct {
	Trading map[string]interface{} `json:"trading"`
	Backend map[string]interface{} `json:"backend"`
	API     map[string]interface{} `json:"api"`
}

// NewManager loads, merges and validates the full configuration. The merge
// order is compiled defaults, then the file at configPath (when it exists),
// then environment variables for env-sourced fields. A missing or malformed
// file is a recoverable problem; a hard validation failure aborts
// construction with an error naming every violated section and field.
func NewManager(configPath string, opts ...Option) (*Manager, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	m := &Manager{
		configPath: configPath,
		env:        os.Getenv,
		log:        logger.NewConsoleLogger("config"),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.env = envOrGetenv(m.env)

	m.Trading = DefaultTradingConfig()
	m.Backend = NewBackendConfig(m.env)
	m.API = NewAPIConfig(m.env)

	m.loadFromFile()

	if err := m.validateAll(); err != nil {
		monitoring.RecordConfigLoad("failure")
		return nil, err
	}

	monitoring.RecordConfigLoad("success")
	return m, nil
}

// loadFromFile applies the file overlay. All failures here are downgraded
// to warnings: a corrupt file must not crash the process, only fall back
// to defaults.
func (m *Manager) loadFromFile() {
	if _, err := os.Stat(m.configPath); os.IsNotExist(err) {
		m.log.Info("config file %s not found, using defaults and environment", m.configPath)
		return
	}

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		m.recordWarning("file", apperrors.WrapIOError(err, "file", "could not read config file").Error())
		return
	}

	var doc configFile
	if err := json.Unmarshal(data, &doc); err != nil {
		m.recordWarning("file", apperrors.WrapParseError(err, "file").Error())
		return
	}

	if doc.Trading != nil {
		cfg, warns := TradingFromMap(doc.Trading)
		m.Trading = cfg
		m.recordSectionWarnings(SectionTrading, warns)
	}
	if doc.Backend != nil {
		cfg, warns := BackendFromMap(doc.Backend, m.env)
		m.Backend = cfg
		m.recordSectionWarnings(SectionBackend, warns)
	}
	if doc.API != nil {
		cfg, warns := APIFromMap(doc.API, m.env)
		m.API = cfg
		m.recordSectionWarnings(SectionAPI, warns)
	}

	m.log.Info("configuration loaded from %s", m.configPath)
}

// validateAll runs every section's rule set over the final merged state
// and aggregates all hard failures
func (m *Manager) validateAll() error {
	var all apperrors.ValidationErrors

	for _, s := range m.sections() {
		hard, soft := s.Validate()
		for _, w := range soft {
			m.recordWarning(s.Name(), w)
		}
		for _, e := range hard {
			monitoring.RecordValidationFailure(e.Section, e.Field)
		}
		all = append(all, hard...)
	}

	if len(all) > 0 {
		m.log.Error("configuration validation failed: %v", all.Error())
		return all
	}

	m.log.Info("all configuration sections validated")
	return nil
}

func (m *Manager) sections() []Section {
	return []Section{&m.Trading, &m.Backend, &m.API}
}

func (m *Manager) recordSectionWarnings(section string, warnings []string) {
	for _, w := range warnings {
		m.recordWarning(section, w)
	}
}

func (m *Manager) recordWarning(section, msg string) {
	full := section + ": " + msg
	m.warnings = append(m.warnings, full)
	m.log.Warn("%s", full)
	monitoring.RecordConfigWarning(section)
}

// Save serializes the current in-memory configuration back to the config
// file, creating parent directories as needed. Unlike loading, write
// failures are surfaced to the caller.
func (m *Manager) Save() error {
	doc := map[string]interface{}{
		SectionTrading: m.Trading.ToMap(),
		SectionBackend: m.Backend.ToMap(),
		SectionAPI:     m.API.ToMap(),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return apperrors.WrapIOError(err, "file", "could not encode configuration")
	}

	if dir := filepath.Dir(m.configPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return apperrors.WrapIOError(err, "file", "could not create config directory")
		}
	}

	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return apperrors.WrapIOError(err, "file", "could not write config file")
	}

	m.log.Info("configuration saved to %s", m.configPath)
	return nil
}

// ConfigPath returns the config file path this manager reads and writes
func (m *Manager) ConfigPath() string {
	return m.configPath
}

// HasExchangeCredentials reports whether usable exchange credentials are
// present in the merged configuration
func (m *Manager) HasExchangeCredentials() bool {
	return m.API.HasExchangeCredentials()
}

// Warnings returns the recoverable problems recorded while loading
func (m *Manager) Warnings() []string {
	out := make([]string, len(m.warnings))
	copy(out, m.warnings)
	return out
}
