package main

import (
	"log"

	"github.com/joho/godotenv"

	"payrecon/app"
	"payrecon/internal"
	"payrecon/internal/config"
	"payrecon/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLoggerWithWriter(internal.ParseLogLevel(appConfig.Log.Level), appConfig.Log.Format, log.Writer())

	settings, err := app.SettingsFromConfig(appConfig.Recon)
	if err != nil {
		log.Fatalf("Invalid reconciliation settings: %v", err)
	}
	if appConfig.Recon.SynonymsFile != "" {
		logger.Info("using column synonyms from %s", appConfig.Recon.SynonymsFile)
	}

	service := app.NewReconciliationService(settings, logger)

	server, err := ui.NewServer(appConfig.Server, service, logger, ui.Assets)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	logger.Info("reading sheets %s and %s, dropping zero differences: %t",
		settings.InvoiceSheet, settings.PayrollSheet, settings.DropZeroDifference)
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
