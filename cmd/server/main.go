package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"janudairy/m/internal/api"
	"janudairy/m/internal/config"
	"janudairy/m/internal/database"
	"janudairy/m/internal/invoices"
	"janudairy/m/internal/ledger"
	"janudairy/m/internal/migrations"
	"janudairy/m/internal/payments"
	"janudairy/m/internal/pricing"
	"janudairy/m/internal/reminder"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	mode, err := pricing.ParseMode(cfg.PricingMode)
	if err != nil {
		log.Fatalf("invalid PRICING_MODE: %v", err)
	}
	source, err := pricing.ParsePercentSource(cfg.PercentSource)
	if err != nil {
		log.Fatalf("invalid PRICING_PERCENT_SOURCE: %v", err)
	}
	style, err := ledger.ParseStyle(cfg.LedgerStyle)
	if err != nil {
		log.Fatalf("invalid LEDGER_STYLE: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	db := database.Connect(cfg.DatabaseDSN)
	defer db.Close()

	migrations.Run(db)

	pay := payments.NewStore(db)
	sender := &reminder.SMTPSender{
		Addr:     cfg.SMTPAddr,
		From:     cfg.SMTPFrom,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
	}

	handler := api.New(
		ledger.NewStore(db, style),
		ledger.NewSaleLog(db),
		pay,
		invoices.NewStore(db),
		reminder.NewDispatcher(pay, sender, logger),
		pricing.Calculator{Mode: mode, Source: source},
		cfg.DefaultGSTPercent,
		logger,
	)

	log.Printf("Janu Dairy bookkeeping server starting on :%s", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
