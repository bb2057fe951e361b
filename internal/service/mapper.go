package service

import (
	"github.com/samber/lo"

	"hufschlaeger.net/monday-items-exporter/internal/domain/monday"
)

const (
	HeaderItemID   = "Item ID"
	HeaderItemName = "Item Name"
)

// Mapper bildet Items auf Tabellenzeilen ab. Das Schema (die Spalten)
// bestimmt das erste Item.
type Mapper struct{}

func NewMapper() *Mapper {
	return &Mapper{}
}

// Columns liefert die Spalten-IDs des ersten Items in dessen Reihenfolge.
func (m *Mapper) Columns(items []monday.Item) []string {
	if len(items) == 0 {
		return nil
	}
	return lo.Uniq(lo.Map(items[0].ColumnValues, func(cv monday.ColumnValue, _ int) string {
		return cv.ID
	}))
}

func (m *Mapper) Header(columns []string) []string {
	return append([]string{HeaderItemID, HeaderItemName}, columns...)
}

// Row liefert ID, Name und den Text jeder Spalte; fehlende Spalten bleiben leer.
func (m *Mapper) Row(item monday.Item, columns []string) []string {
	row := make([]string, 0, len(columns)+2)
	row = append(row, item.ID, item.Name)
	for _, column := range columns {
		text, _ := item.Text(column)
		row = append(row, text)
	}
	return row
}

// Table liefert Header und Zeilen für alle Items in Eingangsreihenfolge.
func (m *Mapper) Table(items []monday.Item) ([]string, [][]string) {
	if len(items) == 0 {
		return nil, nil
	}

	columns := m.Columns(items)
	rows := lo.Map(items, func(item monday.Item, _ int) []string {
		return m.Row(item, columns)
	})

	return m.Header(columns), rows
}
