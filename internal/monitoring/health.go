package monitoring

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

var startTime = time.Now()

type HealthChecker struct {
	mu           sync.RWMutex
	configLoaded bool
	configPath   string
	lastLoad     time.Time
	warnings     []string
	errors       []string
}

type HealthStatus struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	ConfigLoaded bool      `json:"config_loaded"`
	ConfigPath   string    `json:"config_path,omitempty"`
	LastLoad     time.Time `json:"last_load,omitempty"`
	Uptime       string    `json:"uptime"`
	Warnings     []string  `json:"warnings,omitempty"`
	Errors       []string  `json:"errors,omitempty"`
}

func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		warnings: make([]string, 0),
		errors:   make([]string, 0),
	}
}

// SetConfigLoaded records a successful configuration load
func (h *HealthChecker) SetConfigLoaded(path string, warnings []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.configLoaded = true
	h.configPath = path
	h.lastLoad = time.Now()
	h.warnings = append([]string(nil), warnings...)
}

// AddError records an error for health reporting
func (h *HealthChecker) AddError(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors = append(h.errors, msg)
}

func (h *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := "healthy"
	if !h.configLoaded || len(h.warnings) > 0 {
		status = "degraded"
	}
	if len(h.errors) > 0 {
		status = "unhealthy"
		w.WriteHeader(http.StatusInternalServerError)
	}

	health := HealthStatus{
		Status:       status,
		Timestamp:    time.Now(),
		ConfigLoaded: h.configLoaded,
		ConfigPath:   h.configPath,
		LastLoad:     h.lastLoad,
		Uptime:       time.Since(startTime).String(),
		Warnings:     h.warnings,
		Errors:       h.errors,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}
