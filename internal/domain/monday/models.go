package monday

// Item ist ein Eintrag (Zeile) eines monday.com Boards.
type Item struct {
	ID           string
	Name         string
	ColumnValues []ColumnValue
}

type ColumnValue struct {
	ID   string
	Text string
}

// Text liefert den Text der Spalte columnID und ob die Spalte am Item existiert.
func (i Item) Text(columnID string) (string, bool) {
	for _, cv := range i.ColumnValues {
		if cv.ID == columnID {
			return cv.Text, true
		}
	}
	return "", false
}

type Group struct {
	ID    string
	Title string
}

// Page is one response of a paginated items query. An empty Cursor means
// there are no further pages.
type Page struct {
	Items  []Item
	Cursor string
}

// HasNext reports whether the service handed out a cursor for another page.
func (p Page) HasNext() bool {
	return p.Cursor != ""
}
