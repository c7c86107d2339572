package monitoring

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getHealth(t *testing.T, h *HealthChecker) (int, HealthStatus) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	return rec.Code, status
}

// TestHealthChecker_BeforeLoad tests that an unloaded config reports degraded
func TestHealthChecker_BeforeLoad(t *testing.T) {
	code, status := getHealth(t, NewHealthChecker())

	assert.Equal(t, 200, code)
	assert.Equal(t, "degraded", status.Status)
	assert.False(t, status.ConfigLoaded)
}

// TestHealthChecker_AfterLoad tests the healthy state after a clean load
func TestHealthChecker_AfterLoad(t *testing.T) {
	h := NewHealthChecker()
	h.SetConfigLoaded("config/trading_config.json", nil)

	code, status := getHealth(t, h)
	assert.Equal(t, 200, code)
	assert.Equal(t, "healthy", status.Status)
	assert.True(t, status.ConfigLoaded)
	assert.Equal(t, "config/trading_config.json", status.ConfigPath)
}

// TestHealthChecker_WithWarnings tests that load warnings degrade the status
func TestHealthChecker_WithWarnings(t *testing.T) {
	h := NewHealthChecker()
	h.SetConfigLoaded("config/trading_config.json", []string{"api: exchange API credentials not configured"})

	_, status := getHealth(t, h)
	assert.Equal(t, "degraded", status.Status)
	assert.Len(t, status.Warnings, 1)
}

// TestHealthChecker_WithErrors tests that errors flip the status to unhealthy
func TestHealthChecker_WithErrors(t *testing.T) {
	h := NewHealthChecker()
	h.SetConfigLoaded("config/trading_config.json", nil)
	h.AddError("validation failed")

	code, status := getHealth(t, h)
	assert.Equal(t, 500, code)
	assert.Equal(t, "unhealthy", status.Status)
}
