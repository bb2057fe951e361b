package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"hufschlaeger.net/monday-items-exporter/internal/config"
)

// ParseFlags lädt die Konfiguration aus der Umgebung (.env) und überschreibt sie mit CLI-Flags.
func ParseFlags() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	flag.StringVar(&cfg.APIToken, "token", cfg.APIToken, "monday API Token")
	flag.StringVar(&cfg.APIURL, "api-url", cfg.APIURL, "monday GraphQL Endpoint")
	flag.StringVar(&cfg.APIVersion, "api-version", cfg.APIVersion, "Wert des API-Version Headers")
	flag.StringVar(&cfg.BoardID, "board", cfg.BoardID, "Board ID")
	flag.StringVar(&cfg.GroupID, "group", cfg.GroupID, "Gruppen ID (leer = alle Gruppen des Boards)")
	flag.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, fmt.Sprintf("Items pro Seite (1-%d)", config.MaxPageSize))
	flag.IntVar(&cfg.MaxPages, "max-pages", cfg.MaxPages, "Maximale Seiten pro Gruppe (0 = unbegrenzt)")
	flag.StringVar(&cfg.OutputFile, "output", cfg.OutputFile, "Output Datei (Standard: board-<id>[-<group>]-<datum>.<ext>)")
	flag.StringVar(&cfg.Format, "format", cfg.Format, "Export-Format: csv oder markdown")
	flag.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "Timeout pro Request")
	flag.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "Prometheus Textfile für Metriken (optional)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log-Level: debug, info, warn, error")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Debug-Ausgaben aktivieren")
	flag.BoolVar(&cfg.ListGroups, "list-groups", false, "Gruppen des Boards auflisten statt zu exportieren")

	// ein frisch gesetztes flag.CommandLine kennt flag.Usage nicht
	flag.CommandLine.Usage = usage
	flag.Parse()

	cfg.Format = strings.ToLower(cfg.Format)

	if err := cfg.Validate(); err != nil {
		usage()
		return nil, err
	}

	return cfg, nil
}

func init() {
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr, `monday.com Items Exporter

VERWENDUNG:
  %s [OPTIONEN]

BEISPIELE:
  # CSV Export einer Gruppe
  %s -board 1234567890 -group topics -token "eyJ..."

  # Alle Gruppen als Markdown, höchstens 20 Seiten pro Gruppe
  %s -board 1234567890 -format markdown -max-pages 20

  # Gruppen eines Boards anzeigen
  %s -board 1234567890 -list-groups

CLI-OPTIONEN:
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0])
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
UMGEBUNGSVARIABLEN (auch aus .env):
  MONDAY_API_TOKEN    monday API Token
  MONDAY_API_URL      GraphQL Endpoint (Standard: %s)
  MONDAY_API_VERSION  API-Version Header (Standard: %s)
  BOARD_ID            Board ID
  GROUP_ID            Gruppen ID
  PAGE_SIZE           Items pro Seite (Standard: %d)
  MAX_PAGES           Seitenlimit pro Gruppe
  OUTPUT_FILE         Output Datei
  EXPORT_FORMAT       csv oder markdown
  REQUEST_TIMEOUT     Timeout pro Request (z.B. 30s)
  METRICS_FILE        Prometheus Textfile
  LOG_LEVEL           Log-Level
  VERBOSE             Debug-Ausgaben (true/false)
`, config.DefaultAPIURL, config.DefaultAPIVersion, config.DefaultPageSize)
}
