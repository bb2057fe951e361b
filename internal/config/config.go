package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL     = "https://api.monday.com/v2"
	DefaultAPIVersion = "2024-01"
	DefaultPageSize   = 100
	// MaxPageSize ist das Limit von items_page / next_items_page.
	MaxPageSize = 500

	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
)

type Config struct {
	APIToken       string
	APIURL         string
	APIVersion     string
	BoardID        string
	GroupID        string
	PageSize       int
	MaxPages       int
	OutputFile     string
	Format         string
	RequestTimeout time.Duration
	MetricsFile    string
	LogLevel       string
	Verbose        bool
	ListGroups     bool
}

func NewConfig() (*Config, error) {
	// .env laden (ignoriere Fehler wenn Datei nicht existiert)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "⚠️  Warnung beim Laden der .env: %v\n", err)
	}

	cfg := &Config{
		APIToken:       getEnv("MONDAY_API_TOKEN", ""),
		APIURL:         getEnv("MONDAY_API_URL", DefaultAPIURL),
		APIVersion:     getEnv("MONDAY_API_VERSION", DefaultAPIVersion),
		BoardID:        getEnv("BOARD_ID", ""),
		GroupID:        getEnv("GROUP_ID", ""),
		PageSize:       getIntEnv("PAGE_SIZE", DefaultPageSize),
		MaxPages:       getIntEnv("MAX_PAGES", 0),
		OutputFile:     getEnv("OUTPUT_FILE", ""),
		Format:         strings.ToLower(getEnv("EXPORT_FORMAT", FormatCSV)),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", 30*time.Second),
		MetricsFile:    getEnv("METRICS_FILE", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Verbose:        getBoolEnv("VERBOSE", false),
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.APIToken == "" {
		return fmt.Errorf("monday API Token fehlt (MONDAY_API_TOKEN)")
	}
	if c.BoardID == "" {
		return fmt.Errorf("board ID fehlt (BOARD_ID)")
	}
	if c.PageSize < 1 || c.PageSize > MaxPageSize {
		return fmt.Errorf("page size muss zwischen 1 und %d liegen, ist %d", MaxPageSize, c.PageSize)
	}
	if c.MaxPages < 0 {
		return fmt.Errorf("max pages darf nicht negativ sein, ist %d", c.MaxPages)
	}
	if c.Format != FormatCSV && c.Format != FormatMarkdown {
		return fmt.Errorf("unbekanntes Export-Format %q (csv oder markdown)", c.Format)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout muss positiv sein, ist %s", c.RequestTimeout)
	}
	return nil
}

// GetLogLevel liefert das effektive Log-Level; VERBOSE erzwingt debug.
func (c *Config) GetLogLevel() string {
	if c.Verbose {
		return "debug"
	}
	return c.LogLevel
}

// FileExtension passend zum Export-Format.
func (c *Config) FileExtension() string {
	if c.Format == FormatMarkdown {
		return "md"
	}
	return "csv"
}
