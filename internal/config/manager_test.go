package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ahfte/trading-engine/internal/errors"
	"github.com/ahfte/trading-engine/internal/logger"
)

// completeEnv returns a fake environment that satisfies every mandatory field
func completeEnv() EnvLookup {
	return fakeEnv(map[string]string{
		EnvBackendProjectID:       "trading-test",
		EnvBackendCredentialsPath: "/tmp/creds.json",
		EnvBackendDatabaseURL:     "https://trading-test.example.com",
	})
}

func newTestManager(t *testing.T, path string, env EnvLookup) (*Manager, error) {
	t.Helper()
	return NewManager(path, WithEnvLookup(env), WithLogger(logger.Nop()))
}

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "trading_config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestNewManager_NoFile_UsesDefaults tests that a missing file leaves pure compiled defaults
func TestNewManager_NoFile_UsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "trading_config.json")

	mgr, err := newTestManager(t, path, completeEnv())
	require.NoError(t, err)

	assert.Equal(t, DefaultTradingConfig(), mgr.Trading)
	assert.Equal(t, "trading-test", mgr.Backend.ProjectID)
	assert.False(t, mgr.HasExchangeCredentials())
}

// TestNewManager_FileOverlay tests that file fields override defaults and the rest survive
func TestNewManager_FileOverlay(t *testing.T) {
	path := writeConfigFile(t, t.TempDir(), `{
		"trading": {"trading_pair": "ETH/USDT", "initial_capital": 5000},
		"api": {"exchange_api_key": "k", "exchange_api_secret": "s"}
	}`)

	mgr, err := newTestManager(t, path, completeEnv())
	require.NoError(t, err)

	assert.Equal(t, "ETH/USDT", mgr.Trading.TradingPair)
	assert.Equal(t, 5000.0, mgr.Trading.InitialCapital)
	assert.Equal(t, DefaultStopLossPct, mgr.Trading.StopLossPct)
	assert.True(t, mgr.HasExchangeCredentials())
	assert.Empty(t, mgr.Warnings())
}

// TestNewManager_NegativeCapital_Fails tests the fatal path for an invalid capital value
func TestNewManager_NegativeCapital_Fails(t *testing.T) {
	path := writeConfigFile(t, t.TempDir(), `{"trading": {"initial_capital": -5}}`)

	mgr, err := newTestManager(t, path, completeEnv())
	require.Error(t, err)
	assert.Nil(t, mgr)

	var verrs apperrors.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.HasField(SectionTrading, "initial_capital"))
	assert.Equal(t, SectionTrading, verrs.First().Section)
	assert.Equal(t, "initial_capital", verrs.First().Field)
}

// TestNewManager_PositionSizeOutOfDomain_Fails tests the (0, 1] fraction domain
func TestNewManager_PositionSizeOutOfDomain_Fails(t *testing.T) {
	path := writeConfigFile(t, t.TempDir(), `{"trading": {"max_position_size": 1.5}}`)

	mgr, err := newTestManager(t, path, completeEnv())
	require.Error(t, err)
	assert.Nil(t, mgr)

	var verrs apperrors.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.HasField(SectionTrading, "max_position_size"))
}

// TestNewManager_MissingBackend_Fails tests that every missing mandatory field is surfaced
func TestNewManager_MissingBackend_Fails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trading_config.json")

	mgr, err := newTestManager(t, path, fakeEnv(nil))
	require.Error(t, err)
	assert.Nil(t, mgr)

	var verrs apperrors.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 3)
	assert.True(t, verrs.HasField(SectionBackend, "project_id"))
	assert.True(t, verrs.HasField(SectionBackend, "credentials_path"))
	assert.True(t, verrs.HasField(SectionBackend, "database_url"))
}

// TestNewManager_MalformedFile_FallsBack tests that a corrupt file degrades to a warning
func TestNewManager_MalformedFile_FallsBack(t *testing.T) {
	path := writeConfigFile(t, t.TempDir(), `{not json at all`)

	mgr, err := newTestManager(t, path, completeEnv())
	require.NoError(t, err)

	assert.Equal(t, DefaultTradingConfig(), mgr.Trading)
	require.NotEmpty(t, mgr.Warnings())
	assert.Contains(t, mgr.Warnings()[0], "file")
}

// TestNewManager_MissingCredentials_WarnsButSucceeds tests the soft credential requirement
func TestNewManager_MissingCredentials_WarnsButSucceeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trading_config.json")

	mgr, err := newTestManager(t, path, completeEnv())
	require.NoError(t, err)

	assert.False(t, mgr.HasExchangeCredentials())
	require.Len(t, mgr.Warnings(), 1)
	assert.Contains(t, mgr.Warnings()[0], "credentials")
}

// TestNewManager_EnvWinsOverFileSecrets tests precedence for env-sourced credential fields
func TestNewManager_EnvWinsOverFileSecrets(t *testing.T) {
	path := writeConfigFile(t, t.TempDir(), `{
		"api": {"exchange_api_key": "file-key", "exchange_api_secret": "file-secret"}
	}`)
	env := fakeEnv(map[string]string{
		EnvBackendProjectID:       "p",
		EnvBackendCredentialsPath: "c",
		EnvBackendDatabaseURL:     "d",
		EnvExchangeAPIKey:         "env-key",
	})

	mgr, err := newTestManager(t, path, env)
	require.NoError(t, err)

	assert.Equal(t, "env-key", mgr.API.ExchangeAPIKey)
	assert.Equal(t, "file-secret", mgr.API.ExchangeAPISecret)
}

// TestManager_SaveRoundTrip tests that save followed by a fresh load reproduces the state
func TestManager_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "trading_config.json")

	mgr, err := newTestManager(t, path, completeEnv())
	require.NoError(t, err)

	mgr.Trading.TradingPair = "SOL/USDT"
	mgr.Trading.InitialCapital = 777.0
	mgr.API.TelegramChatID = "42"
	require.NoError(t, mgr.Save())

	reloaded, err := newTestManager(t, path, completeEnv())
	require.NoError(t, err)

	assert.Equal(t, mgr.Trading, reloaded.Trading)
	assert.Equal(t, mgr.Backend, reloaded.Backend)
	assert.Equal(t, mgr.API, reloaded.API)
}

// TestNewManager_Idempotent tests that repeated construction yields the same result
func TestNewManager_Idempotent(t *testing.T) {
	path := writeConfigFile(t, t.TempDir(), `{"trading": {"timeframe": "5m"}}`)

	first, err := newTestManager(t, path, completeEnv())
	require.NoError(t, err)
	second, err := newTestManager(t, path, completeEnv())
	require.NoError(t, err)

	assert.Equal(t, first.Trading, second.Trading)
	assert.Equal(t, first.Backend, second.Backend)
	assert.Equal(t, first.API, second.API)
	assert.Equal(t, first.Warnings(), second.Warnings())
}

// TestManager_Save_SurfacesWriteErrors tests that save reports I/O failure to the caller
func TestManager_Save_SurfacesWriteErrors(t *testing.T) {
	dir := t.TempDir()

	// The config path itself is a directory, so the write must fail.
	mgr, err := newTestManager(t, filepath.Join(dir, "sub"), completeEnv())
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))

	err = mgr.Save()
	require.Error(t, err)

	var cerr *apperrors.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, apperrors.ErrorCategoryIO, cerr.Category)
}

// TestNewManager_DefaultPath tests that an empty path falls back to the documented default
func TestNewManager_DefaultPath(t *testing.T) {
	mgr, err := newTestManager(t, "", completeEnv())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfigPath, mgr.ConfigPath())
}
