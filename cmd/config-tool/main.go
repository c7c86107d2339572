package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/joho/godotenv"

	"github.com/ahfte/trading-engine/internal/config"
	"github.com/ahfte/trading-engine/internal/monitoring"
)

const (
	AppName    = "Config Tool"
	AppVersion = "1.0.0"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "Path to the JSON configuration file")
	envFile := flag.String("env", ".env", "Path to the environment file")
	initConfig := flag.Bool("init", false, "Write the effective configuration back to the config file")
	serveAddr := flag.String("serve", "", "Serve /health and /metrics on this address (e.g. :8081)")
	quiet := flag.Bool("quiet", false, "Suppress the configuration tables")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s v%s\n", AppName, AppVersion)
		return
	}

	printHeader()
	loadEnvironment(*envFile)

	mgr, err := config.NewManager(*configPath)
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}

	if !*quiet {
		printConfiguration(mgr)
	}

	for _, w := range mgr.Warnings() {
		fmt.Printf("⚠️  %s\n", w)
	}
	if !mgr.HasExchangeCredentials() {
		fmt.Println("⚠️  Exchange API credentials not set - authenticated operations unavailable")
	}

	if *initConfig {
		if err := mgr.Save(); err != nil {
			log.Fatalf("❌ Could not save configuration: %v", err)
		}
		fmt.Printf("✅ Configuration written to %s\n", mgr.ConfigPath())
	}

	if *serveAddr != "" {
		serve(*serveAddr, mgr)
	}
}

func printHeader() {
	fmt.Printf("🎯 %s v%s\n", strings.ToUpper(AppName), AppVersion)
	fmt.Printf("%s\n\n", strings.Repeat("=", 50))
}

func loadEnvironment(envFile string) {
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("⚠️  Could not load %s (%v)", envFile, err)
	}
}

// printConfiguration renders the effective configuration, one table per
// section, with secrets masked
func printConfiguration(mgr *config.Manager) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("TRADING PARAMETERS")
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"🏪 Exchange", mgr.Trading.ExchangeID},
		{"📊 Pair", mgr.Trading.TradingPair},
		{"⏰ Timeframe", mgr.Trading.Timeframe},
		{"💰 Initial Capital", fmt.Sprintf("$%.2f", mgr.Trading.InitialCapital)},
		{"📈 Max Position Size", fmt.Sprintf("%.2f%%", mgr.Trading.MaxPositionSize*100)},
		{"📉 Max Daily Loss", fmt.Sprintf("%.2f%%", mgr.Trading.MaxDailyLoss*100)},
		{"🛑 Stop Loss", fmt.Sprintf("%.2f%%", mgr.Trading.StopLossPct*100)},
		{"🎯 Take Profit", fmt.Sprintf("%.2f%%", mgr.Trading.TakeProfitPct*100)},
		{"🔄 Max Open Positions", mgr.Trading.MaxOpenPositions},
		{"🔍 Lookback Period", mgr.Trading.LookbackPeriod},
		{"🔮 Prediction Horizon", mgr.Trading.PredictionHorizon},
		{"♻️ Model Update", fmt.Sprintf("%ds", mgr.Trading.ModelUpdateFrequency)},
		{"⏳ Order Timeout", fmt.Sprintf("%ds", mgr.Trading.OrderTimeout)},
		{"💧 Max Slippage", fmt.Sprintf("%.2f%%", mgr.Trading.MaxSlippage*100)},
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 22, WidthMax: 22, Align: text.AlignLeft},
		{Number: 2, WidthMin: 20, WidthMax: 35, Align: text.AlignLeft},
	})
	t.Render()
	fmt.Println()

	t = table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("BACKEND")
	t.SetStyle(table.StyleRounded)
	t.AppendRows([]table.Row{
		{"🆔 Project ID", orUnset(mgr.Backend.ProjectID)},
		{"🔑 Credentials Path", orUnset(mgr.Backend.CredentialsPath)},
		{"🌐 Database URL", orUnset(mgr.Backend.DatabaseURL)},
	})
	t.Render()
	fmt.Println()

	t = table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("API CREDENTIALS")
	t.SetStyle(table.StyleRounded)
	t.AppendRows([]table.Row{
		{"🔑 Exchange API Key", maskSecret(mgr.API.ExchangeAPIKey)},
		{"🔒 Exchange API Secret", maskSecret(mgr.API.ExchangeAPISecret)},
		{"🤖 Telegram Bot Token", maskSecret(mgr.API.TelegramBotToken)},
		{"💬 Telegram Chat ID", orUnset(mgr.API.TelegramChatID)},
	})
	t.Render()
	fmt.Println()
}

func orUnset(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}

// maskSecret keeps the first and last two characters of a secret visible
func maskSecret(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 6 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:2] + strings.Repeat("*", len(secret)-4) + secret[len(secret)-2:]
}

// serve exposes health and metrics endpoints until interrupted
func serve(addr string, mgr *config.Manager) {
	health := monitoring.NewHealthChecker()
	health.SetConfigLoaded(mgr.ConfigPath(), mgr.Warnings())

	mux := http.NewServeMux()
	mux.Handle("/health", health)
	mux.Handle("/metrics", monitoring.NewMetricsHandler())

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	fmt.Printf("🌐 Serving health and metrics on %s\n", addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("❌ Server error: %v", err)
	}
}
