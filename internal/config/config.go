package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"payrecon/domain/recon"
	"payrecon/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Log    LogConfig
	Recon  ReconConfig
}

// DefaultExportFilename is the download name of the exported workbook
const DefaultExportFilename = "DENTAL_ANALISADO.xlsx"

// ServerConfig holds web server settings
type ServerConfig struct {
	Port              string
	GinMode           string
	MaxUploadBytes    int64
	MaxConcurrentRuns int64
	ResultTTL         time.Duration
	ExportFilename    string
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string
	Format string
}

// ReconConfig holds the reconciliation settings shared by every entry point
type ReconConfig struct {
	InvoiceSheet       string
	PayrollSheet       string
	InvoiceSkipRows    int
	PayrollSkipRows    int
	HeaderScanRows     int
	HeaderMatch        string
	DropZeroDifference bool
	NormalizeNames     bool
	KeyWidth           int
	SynonymsFile       string

	// Synonyms is loaded from SynonymsFile, or the built-in table
	Synonyms recon.SynonymMap
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: *loadServerConfig(),
		Log:    *loadLogConfig(),
		Recon:  *loadReconConfig(),
	}

	synonyms, err := LoadSynonyms(config.Recon.SynonymsFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load synonym table")
	}
	config.Recon.Synonyms = synonyms

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// DefaultReconConfig returns the reconciliation defaults with the built-in synonyms
func DefaultReconConfig() ReconConfig {
	return ReconConfig{
		InvoiceSheet:       "FATURA",
		PayrollSheet:       "FOLHA",
		InvoiceSkipRows:    1,
		PayrollSkipRows:    0,
		HeaderScanRows:     5,
		HeaderMatch:        "exact",
		DropZeroDifference: true,
		NormalizeNames:     true,
		Synonyms:           DefaultSynonyms(),
	}
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:              getEnvOrDefault("PORT", "8080"),
		GinMode:           getEnvOrDefault("GIN_MODE", "release"),
		MaxUploadBytes:    int64(getEnvIntOrDefault("MAX_UPLOAD_BYTES", 10<<20)),
		MaxConcurrentRuns: int64(getEnvIntOrDefault("MAX_CONCURRENT_RUNS", 4)),
		ResultTTL:         getEnvDurationOrDefault("RESULT_TTL", 30*time.Minute),
		ExportFilename:    getEnvOrDefault("EXPORT_FILENAME", DefaultExportFilename),
	}
}

func loadLogConfig() *LogConfig {
	return &LogConfig{
		Level:  strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
		Format: getEnvOrDefault("LOG_FORMAT", "console"),
	}
}

func loadReconConfig() *ReconConfig {
	d := DefaultReconConfig()
	return &ReconConfig{
		InvoiceSheet:       getEnvOrDefault("INVOICE_SHEET", d.InvoiceSheet),
		PayrollSheet:       getEnvOrDefault("PAYROLL_SHEET", d.PayrollSheet),
		InvoiceSkipRows:    getEnvIntOrDefault("INVOICE_SKIP_ROWS", d.InvoiceSkipRows),
		PayrollSkipRows:    getEnvIntOrDefault("PAYROLL_SKIP_ROWS", d.PayrollSkipRows),
		HeaderScanRows:     getEnvIntOrDefault("HEADER_SCAN_ROWS", d.HeaderScanRows),
		HeaderMatch:        getEnvOrDefault("HEADER_MATCH", d.HeaderMatch),
		DropZeroDifference: getEnvBoolOrDefault("DROP_ZERO_DIFFERENCE", d.DropZeroDifference),
		NormalizeNames:     getEnvBoolOrDefault("NORMALIZE_NAMES", d.NormalizeNames),
		KeyWidth:           getEnvIntOrDefault("KEY_WIDTH", 0),
		SynonymsFile:       getEnvOrDefault("SYNONYMS_FILE", ""),
	}
}

func validateConfig(config *Config) error {
	if config.Recon.InvoiceSheet == "" || config.Recon.PayrollSheet == "" {
		return errors.ConfigInvalid("sheet names are required")
	}
	if config.Recon.HeaderScanRows <= 0 {
		return errors.ConfigInvalid("HEADER_SCAN_ROWS must be positive")
	}
	switch strings.ToLower(config.Recon.HeaderMatch) {
	case "exact", "contains":
	default:
		return errors.ConfigInvalid("HEADER_MATCH must be exact or contains")
	}
	if config.Recon.KeyWidth < 0 {
		return errors.ConfigInvalid("KEY_WIDTH cannot be negative")
	}
	if config.Server.MaxUploadBytes <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_BYTES must be positive")
	}
	if config.Server.MaxConcurrentRuns <= 0 {
		return errors.ConfigInvalid("MAX_CONCURRENT_RUNS must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
