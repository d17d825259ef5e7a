package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds application configuration values.
type Config struct {
	HTTPPort    string
	DatabaseDSN string

	// PricingMode selects the profit formula: net, grossup, additive or zero.
	PricingMode string
	// PercentSource selects whose GST/discount applies to the sale leg:
	// "purchase" (the stored purchase record's) or "sale" (the sale's own).
	PercentSource string
	// LedgerStyle selects "history" (append-only) or "latest" (one row per
	// item, overwritten on each purchase).
	LedgerStyle string
	// DefaultGSTPercent applies to purchase uploads that carry no GST field.
	DefaultGSTPercent float64

	SMTPAddr     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string
}

// Load reads configuration from environment variables with reasonable defaults.
func Load() Config {
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}
	// Validate that port is numeric.
	if _, err := strconv.Atoi(port); err != nil {
		log.Printf("invalid HTTP_PORT value %q, defaulting to 8080", port)
		port = "8080"
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "file:janudairy.db"
	}

	mode := os.Getenv("PRICING_MODE")
	if mode == "" {
		mode = "net"
	}

	source := os.Getenv("PRICING_PERCENT_SOURCE")
	if source == "" {
		source = "purchase"
	}

	style := os.Getenv("LEDGER_STYLE")
	if style == "" {
		style = "history"
	}

	gst := 5.0
	if raw := os.Getenv("DEFAULT_GST_PERCENT"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			log.Printf("invalid DEFAULT_GST_PERCENT value %q, defaulting to 5.0", raw)
		} else {
			gst = parsed
		}
	}

	return Config{
		HTTPPort:          port,
		DatabaseDSN:       dsn,
		PricingMode:       mode,
		PercentSource:     source,
		LedgerStyle:       style,
		DefaultGSTPercent: gst,
		SMTPAddr:          os.Getenv("SMTP_ADDR"),
		SMTPFrom:          os.Getenv("SMTP_FROM"),
		SMTPUsername:      os.Getenv("SMTP_USERNAME"),
		SMTPPassword:      os.Getenv("SMTP_PASSWORD"),
	}
}
