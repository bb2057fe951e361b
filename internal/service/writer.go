package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"hufschlaeger.net/monday-items-exporter/internal/domain/monday"
	"hufschlaeger.net/monday-items-exporter/pkg/utils"
)

// WriteCSV schreibt Items als CSV mit Header. Leere Item-Listen schreiben nichts.
func WriteCSV(w io.Writer, items []monday.Item) error {
	header, rows := NewMapper().Table(items)
	if header == nil {
		return nil
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("fehler beim Schreiben des Headers: %w", err)
	}
	for i, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("fehler beim Schreiben des Items %s: %w", items[i].ID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteMarkdown schreibt Items als Markdown-Tabelle. Leere Item-Listen schreiben nichts.
func WriteMarkdown(w io.Writer, items []monday.Item) error {
	header, rows := NewMapper().Table(items)
	if header == nil {
		return nil
	}

	var content strings.Builder
	content.WriteString(markdownRow(header))
	content.WriteString("|" + strings.Repeat("------|", len(header)) + "\n")
	for _, row := range rows {
		content.WriteString(markdownRow(row))
	}

	_, err := io.WriteString(w, content.String())
	return err
}

func markdownRow(cells []string) string {
	escaped := make([]string, len(cells))
	for i, cell := range cells {
		escaped[i] = utils.EscapeMarkdown(utils.SingleLine(cell))
	}
	return "| " + strings.Join(escaped, " | ") + " |\n"
}
