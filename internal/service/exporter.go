package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"hufschlaeger.net/monday-items-exporter/internal/config"
	"hufschlaeger.net/monday-items-exporter/internal/domain/monday"
	"hufschlaeger.net/monday-items-exporter/internal/logging"
	"hufschlaeger.net/monday-items-exporter/internal/metrics"
	"hufschlaeger.net/monday-items-exporter/internal/pagination"
	mondayRepo "hufschlaeger.net/monday-items-exporter/internal/repository/monday"
	"hufschlaeger.net/monday-items-exporter/pkg/utils"
)

type Exporter struct {
	config     *config.Config
	mondayRepo *mondayRepo.Repository
	driver     *pagination.Driver
	metrics    *metrics.Metrics
	logger     zerolog.Logger
	out        io.Writer
	now        func() time.Time
}

func NewExporter(cfg *config.Config) *Exporter {
	runID := uuid.NewString()
	logger := runLogger("exporter", runID)
	m := metrics.New()
	repo := mondayRepo.NewRepository(cfg, runLogger("monday", runID), m)

	return &Exporter{
		config:     cfg,
		mondayRepo: repo,
		driver: pagination.NewDriver(repo,
			pagination.WithMaxPages(cfg.MaxPages),
			pagination.WithLogger(runLogger("pagination", runID)),
			pagination.WithMetrics(m),
		),
		metrics: m,
		logger:  logger,
		out:     os.Stdout,
		now:     time.Now,
	}
}

func runLogger(component, runID string) zerolog.Logger {
	return logging.NewLogger(component).With().Str("run_id", runID).Logger()
}

// Run führt je nach Konfiguration den Export oder das Auflisten der Gruppen aus.
func (e *Exporter) Run(ctx context.Context) error {
	if e.config.ListGroups {
		return e.ListGroups(ctx)
	}
	return e.Export(ctx)
}

// Export startet den Hauptexport-Prozess
func (e *Exporter) Export(ctx context.Context) (err error) {
	// 1. Konfiguration validieren
	if err := e.config.Validate(); err != nil {
		return fmt.Errorf("konfiguration ungültig: %w", err)
	}
	defer func() { e.finish(err) }()

	e.logger.Info().
		Str("board_id", e.config.BoardID).
		Str("group_id", e.config.GroupID).
		Int("page_size", e.config.PageSize).
		Msg("starting export")

	// 2. Items von monday.com laden
	items, err := e.loadItems(ctx)
	if err != nil {
		return fmt.Errorf("fehler beim Laden der Items: %w", err)
	}

	e.logger.Info().Int("items", len(items)).Msg("items loaded")

	if len(items) == 0 {
		e.logger.Info().Msg("no items to export")
		return nil
	}

	// 3. Datei schreiben
	return e.exportToFile(items)
}

// ListGroups gibt die Gruppen des Boards als "id<TAB>title" aus.
func (e *Exporter) ListGroups(ctx context.Context) error {
	if err := e.config.Validate(); err != nil {
		return fmt.Errorf("konfiguration ungültig: %w", err)
	}

	groups, err := e.mondayRepo.GetGroups(ctx, e.config.BoardID)
	if err != nil {
		return fmt.Errorf("fehler beim Laden der Gruppen: %w", err)
	}

	for _, group := range groups {
		if _, err := fmt.Fprintf(e.out, "%s\t%s\n", group.ID, group.Title); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) loadItems(ctx context.Context) ([]monday.Item, error) {
	// Verbindung testen
	if err := e.mondayRepo.ValidateConnection(ctx); err != nil {
		return nil, fmt.Errorf("monday-Verbindung fehlgeschlagen: %w", err)
	}

	groupIDs, err := e.resolveGroups(ctx)
	if err != nil {
		return nil, err
	}

	var all []monday.Item
	for _, groupID := range groupIDs {
		items, err := e.driver.Collect(ctx, e.config.BoardID, groupID, e.config.PageSize)
		if err != nil {
			return nil, fmt.Errorf("gruppe %q: %w", groupID, err)
		}
		if len(items) > 0 {
			e.logger.Debug().
				Str("group_id", groupID).
				Str("first_item", utils.TruncateText(items[0].Name, 60)).
				Msg("group items")
		}
		all = append(all, items...)
	}

	return all, nil
}

// resolveGroups liefert die konfigurierte Gruppe oder alle Gruppen des Boards.
func (e *Exporter) resolveGroups(ctx context.Context) ([]string, error) {
	if e.config.GroupID != "" {
		return []string{e.config.GroupID}, nil
	}

	groups, err := e.mondayRepo.GetGroups(ctx, e.config.BoardID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(groups))
	for _, group := range groups {
		ids = append(ids, group.ID)
	}

	e.logger.Info().Int("groups", len(ids)).Msg("exporting all groups of the board")
	return ids, nil
}

// exportToFile rendert erst komplett in den Speicher, damit bei Fehlern keine halbe Datei entsteht.
func (e *Exporter) exportToFile(items []monday.Item) error {
	var buf bytes.Buffer

	write := WriteCSV
	if e.config.Format == config.FormatMarkdown {
		write = WriteMarkdown
	}
	if err := write(&buf, items); err != nil {
		return fmt.Errorf("export fehlgeschlagen: %w", err)
	}

	filename := e.generateFilename()
	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("datei-Export fehlgeschlagen: %w", err)
	}

	e.logger.Info().Str("file", filename).Int("items", len(items)).Msg("export written")
	return nil
}

// generateFilename erstellt einen Dateinamen
func (e *Exporter) generateFilename() string {
	if e.config.OutputFile != "" {
		return e.config.OutputFile
	}

	// Standard-Format: board-<id>[-<group>]-YYYY-MM-DD.<ext>
	timestamp := e.now().Format("2006-01-02")
	name := "board-" + utils.SanitizeFilename(e.config.BoardID)
	if e.config.GroupID != "" {
		name += "-" + utils.SanitizeFilename(e.config.GroupID)
	}

	return fmt.Sprintf("%s-%s.%s", name, timestamp, e.config.FileExtension())
}

func (e *Exporter) finish(err error) {
	if err != nil {
		e.metrics.RecordError(string(monday.Classify(err)))
	} else {
		e.metrics.MarkSuccess(e.now())
	}

	if e.config.MetricsFile == "" {
		return
	}
	if werr := e.metrics.WriteTextfile(e.config.MetricsFile); werr != nil {
		e.logger.Warn().Err(werr).Str("file", e.config.MetricsFile).Msg("writing metrics failed")
	}
}
