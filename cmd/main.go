package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hufschlaeger.net/monday-items-exporter/internal/cli"
	"hufschlaeger.net/monday-items-exporter/internal/logging"
	"hufschlaeger.net/monday-items-exporter/internal/service"
)

func main() {
	cfg, err := cli.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Fehler beim Parsen der Flags: %v\n", err)
		os.Exit(1)
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.LogLevel(cfg.GetLogLevel())
	logging.Setup(logCfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exporter := service.NewExporter(cfg)

	if err := exporter.Run(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "❌ Export fehlgeschlagen: %v\n", err)
		os.Exit(1)
	}
}
