package config

import (
	"fmt"

	apperrors "github.com/ahfte/trading-engine/internal/errors"
)

// Default trading parameter values
const (
	DefaultExchangeID           = "binance"
	DefaultTradingPair          = "BTC/USDT"
	DefaultTimeframe            = "1m"
	DefaultInitialCapital       = 10000.0
	DefaultMaxPositionSize      = 0.1  // 10% of capital
	DefaultMaxDailyLoss         = 0.02 // 2% daily stop loss
	DefaultStopLossPct          = 0.01 // 1%
	DefaultTakeProfitPct        = 0.02 // 2%
	DefaultMaxOpenPositions     = 3
	DefaultLookbackPeriod       = 100
	DefaultPredictionHorizon    = 5
	DefaultModelUpdateFrequency = 3600 // seconds
	DefaultOrderTimeout         = 30   // seconds
	DefaultMaxSlippage          = 0.001
)

// TradingConfig holds trading-specific configuration
type TradingConfig struct {
	// Exchange settings
	ExchangeID  string `json:"exchange_id"`
	TradingPair string `json:"trading_pair"`
	Timeframe   string `json:"timeframe"`

	// Trading parameters
	InitialCapital  float64 `json:"initial_capital"`
	MaxPositionSize float64 `json:"max_position_size"`
	MaxDailyLoss    float64 `json:"max_daily_loss"`

	// Risk management
	StopLossPct      float64 `json:"stop_loss_pct"`
	TakeProfitPct    float64 `json:"take_profit_pct"`
	MaxOpenPositions int     `json:"max_open_positions"`

	// Model parameters
	LookbackPeriod       int `json:"lookback_period"`
	PredictionHorizon    int `json:"prediction_horizon"`
	ModelUpdateFrequency int `json:"model_update_frequency"`

	// Execution
	OrderTimeout int     `json:"order_timeout"`
	MaxSlippage  float64 `json:"max_slippage"`
}

// DefaultTradingConfig returns a TradingConfig fully populated with the
// compiled defaults. Never performs I/O.
func DefaultTradingConfig() TradingConfig {
	return TradingConfig{
		ExchangeID:           DefaultExchangeID,
		TradingPair:          DefaultTradingPair,
		Timeframe:            DefaultTimeframe,
		InitialCapital:       DefaultInitialCapital,
		MaxPositionSize:      DefaultMaxPositionSize,
		MaxDailyLoss:         DefaultMaxDailyLoss,
		StopLossPct:          DefaultStopLossPct,
		TakeProfitPct:        DefaultTakeProfitPct,
		MaxOpenPositions:     DefaultMaxOpenPositions,
		LookbackPeriod:       DefaultLookbackPeriod,
		PredictionHorizon:    DefaultPredictionHorizon,
		ModelUpdateFrequency: DefaultModelUpdateFrequency,
		OrderTimeout:         DefaultOrderTimeout,
		MaxSlippage:          DefaultMaxSlippage,
	}
}

// TradingFromMap builds a TradingConfig from a partial field mapping.
// Fields present in the mapping override the defaults, missing fields keep
// them. Unknown keys and type mismatches are reported as warnings, never
// as errors.
func TradingFromMap(m map[string]interface{}) (TradingConfig, []string) {
	c := DefaultTradingConfig()
	var warnings []string

	for key, raw := range m {
		ok := true
		switch key {
		case "exchange_id":
			ok = setString(&c.ExchangeID, raw)
		case "trading_pair":
			ok = setString(&c.TradingPair, raw)
		case "timeframe":
			ok = setString(&c.Timeframe, raw)
		case "initial_capital":
			ok = setFloat(&c.InitialCapital, raw)
		case "max_position_size":
			ok = setFloat(&c.MaxPositionSize, raw)
		case "max_daily_loss":
			ok = setFloat(&c.MaxDailyLoss, raw)
		case "stop_loss_pct":
			ok = setFloat(&c.StopLossPct, raw)
		case "take_profit_pct":
			ok = setFloat(&c.TakeProfitPct, raw)
		case "max_open_positions":
			ok = setInt(&c.MaxOpenPositions, raw)
		case "lookback_period":
			ok = setInt(&c.LookbackPeriod, raw)
		case "prediction_horizon":
			ok = setInt(&c.PredictionHorizon, raw)
		case "model_update_frequency":
			ok = setInt(&c.ModelUpdateFrequency, raw)
		case "order_timeout":
			ok = setInt(&c.OrderTimeout, raw)
		case "max_slippage":
			ok = setFloat(&c.MaxSlippage, raw)
		default:
			warnings = append(warnings, fmt.Sprintf("unknown field %q ignored", key))
			continue
		}
		if !ok {
			warnings = append(warnings, fmt.Sprintf("field %q has unexpected type %T, keeping default", key, raw))
		}
	}

	return c, warnings
}

// Name returns the section key used in the configuration file
func (c *TradingConfig) Name() string {
	return SectionTrading
}

// ToMap returns the section's fields as a serializable mapping
func (c *TradingConfig) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"exchange_id":            c.ExchangeID,
		"trading_pair":           c.TradingPair,
		"timeframe":              c.Timeframe,
		"initial_capital":        c.InitialCapital,
		"max_position_size":      c.MaxPositionSize,
		"max_daily_loss":         c.MaxDailyLoss,
		"stop_loss_pct":          c.StopLossPct,
		"take_profit_pct":        c.TakeProfitPct,
		"max_open_positions":     c.MaxOpenPositions,
		"lookback_period":        c.LookbackPeriod,
		"prediction_horizon":     c.PredictionHorizon,
		"model_update_frequency": c.ModelUpdateFrequency,
		"order_timeout":          c.OrderTimeout,
		"max_slippage":           c.MaxSlippage,
	}
}

// Validate checks the trading parameters. Only capital, position size and
// stop loss have enforced domains; the remaining numeric fields are
// accepted as-is.
func (c *TradingConfig) Validate() ([]*apperrors.ConfigError, []string) {
	var hard []*apperrors.ConfigError

	if c.InitialCapital <= 0 {
		hard = append(hard, apperrors.NewValidationError(
			SectionTrading, "initial_capital", "initial capital must be positive").
			WithValue(c.InitialCapital))
	}
	if c.MaxPositionSize <= 0 || c.MaxPositionSize > 1 {
		hard = append(hard, apperrors.NewValidationError(
			SectionTrading, "max_position_size", "max position size must be between 0 and 1").
			WithValue(c.MaxPositionSize))
	}
	if c.StopLossPct <= 0 {
		hard = append(hard, apperrors.NewValidationError(
			SectionTrading, "stop_loss_pct", "stop loss must be positive").
			WithValue(c.StopLossPct))
	}

	return hard, nil
}
