package config

import (
	"fmt"

	apperrors "github.com/ahfte/trading-engine/internal/errors"
)

// Environment variable names for credential-bearing sections
const (
	EnvBackendProjectID       = "BACKEND_PROJECT_ID"
	EnvBackendCredentialsPath = "BACKEND_CREDENTIALS_PATH"
	EnvBackendDatabaseURL     = "BACKEND_DATABASE_URL"

	EnvExchangeAPIKey    = "EXCHANGE_API_KEY"
	EnvExchangeAPISecret = "EXCHANGE_API_SECRET"
	EnvTelegramBotToken  = "TELEGRAM_BOT_TOKEN"
	EnvTelegramChatID    = "TELEGRAM_CHAT_ID"
)

// BackendConfig holds the persistence backend identity. All three fields
// are mandatory; an empty value is a hard validation failure.
type BackendConfig struct {
	ProjectID       string `json:"project_id"`
	CredentialsPath string `json:"credentials_path"`
	DatabaseURL     string `json:"database_url"`
}

// NewBackendConfig builds a BackendConfig from the environment
func NewBackendConfig(env EnvLookup) BackendConfig {
	var c BackendConfig
	c.applyEnv(envOrGetenv(env))
	return c
}

// BackendFromMap builds a BackendConfig from a partial field mapping.
// Environment values win over file values for env-sourced fields, so a
// checked-in file can never silently override a deployed secret.
func BackendFromMap(m map[string]interface{}, env EnvLookup) (BackendConfig, []string) {
	var c BackendConfig
	warnings := c.applyMap(m)
	c.applyEnv(envOrGetenv(env))
	return c, warnings
}

func (c *BackendConfig) applyMap(m map[string]interface{}) []string {
	var warnings []string
	for key, raw := range m {
		ok := true
		switch key {
		case "project_id":
			ok = setString(&c.ProjectID, raw)
		case "credentials_path":
			ok = setString(&c.CredentialsPath, raw)
		case "database_url":
			ok = setString(&c.DatabaseURL, raw)
		default:
			warnings = append(warnings, fmt.Sprintf("unknown field %q ignored", key))
			continue
		}
		if !ok {
			warnings = append(warnings, fmt.Sprintf("field %q has unexpected type %T, keeping default", key, raw))
		}
	}
	return warnings
}

func (c *BackendConfig) applyEnv(env EnvLookup) {
	if v := env(EnvBackendProjectID); v != "" {
		c.ProjectID = v
	}
	if v := env(EnvBackendCredentialsPath); v != "" {
		c.CredentialsPath = v
	}
	if v := env(EnvBackendDatabaseURL); v != "" {
		c.DatabaseURL = v
	}
}

// Name returns the section key used in the configuration file
func (c *BackendConfig) Name() string {
	return SectionBackend
}

// ToMap returns the section's fields as a serializable mapping
func (c *BackendConfig) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"project_id":       c.ProjectID,
		"credentials_path": c.CredentialsPath,
		"database_url":     c.DatabaseURL,
	}
}

// Validate checks that every mandatory backend field is set
func (c *BackendConfig) Validate() ([]*apperrors.ConfigError, []string) {
	var hard []*apperrors.ConfigError
	required := []struct {
		field string
		value string
	}{
		{"project_id", c.ProjectID},
		{"credentials_path", c.CredentialsPath},
		{"database_url", c.DatabaseURL},
	}
	for _, r := range required {
		if r.value == "" {
			hard = append(hard, apperrors.NewCredentialsError(SectionBackend, r.field))
		}
	}
	return hard, nil
}

// APIConfig holds exchange and notification credentials. Exchange
// credentials are soft-required: consumers must check
// HasExchangeCredentials before attempting authenticated operations.
type APIConfig struct {
	ExchangeAPIKey    string `json:"exchange_api_key"`
	ExchangeAPISecret string `json:"exchange_api_secret"`
	TelegramBotToken  string `json:"telegram_bot_token"`
	TelegramChatID    string `json:"telegram_chat_id"`
}

// NewAPIConfig builds an APIConfig from the environment
func NewAPIConfig(env EnvLookup) APIConfig {
	var c APIConfig
	c.applyEnv(envOrGetenv(env))
	return c
}

// APIFromMap builds an APIConfig from a partial field mapping.
// Environment values win over file values.
func APIFromMap(m map[string]interface{}, env EnvLookup) (APIConfig, []string) {
	var c APIConfig
	warnings := c.applyMap(m)
	c.applyEnv(envOrGetenv(env))
	return c, warnings
}

func (c *APIConfig) applyMap(m map[string]interface{}) []string {
	var warnings []string
	for key, raw := range m {
		ok := true
		switch key {
		case "exchange_api_key":
			ok = setString(&c.ExchangeAPIKey, raw)
		case "exchange_api_secret":
			ok = setString(&c.ExchangeAPISecret, raw)
		case "telegram_bot_token":
			ok = setString(&c.TelegramBotToken, raw)
		case "telegram_chat_id":
			ok = setString(&c.TelegramChatID, raw)
		default:
			warnings = append(warnings, fmt.Sprintf("unknown field %q ignored", key))
			continue
		}
		if !ok {
			warnings = append(warnings, fmt.Sprintf("field %q has unexpected type %T, keeping default", key, raw))
		}
	}
	return warnings
}

func (c *APIConfig) applyEnv(env EnvLookup) {
	if v := env(EnvExchangeAPIKey); v != "" {
		c.ExchangeAPIKey = v
	}
	if v := env(EnvExchangeAPISecret); v != "" {
		c.ExchangeAPISecret = v
	}
	if v := env(EnvTelegramBotToken); v != "" {
		c.TelegramBotToken = v
	}
	if v := env(EnvTelegramChatID); v != "" {
		c.TelegramChatID = v
	}
}

// Name returns the section key used in the configuration file
func (c *APIConfig) Name() string {
	return SectionAPI
}

// ToMap returns the section's fields as a serializable mapping
func (c *APIConfig) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"exchange_api_key":    c.ExchangeAPIKey,
		"exchange_api_secret": c.ExchangeAPISecret,
		"telegram_bot_token":  c.TelegramBotToken,
		"telegram_chat_id":    c.TelegramChatID,
	}
}

// HasExchangeCredentials reports whether both exchange API key and secret
// are present
func (c *APIConfig) HasExchangeCredentials() bool {
	return c.ExchangeAPIKey != "" && c.ExchangeAPISecret != ""
}

// Validate reports missing exchange credentials as a soft warning only
func (c *APIConfig) Validate() ([]*apperrors.ConfigError, []string) {
	if !c.HasExchangeCredentials() {
		return nil, []string{"exchange API credentials not configured"}
	}
	return nil, nil
}
