package normalize

import "github.com/arcanaland/inktable/internal/card"

// Table is an ordered map of card name to entry. Order is first insertion.
type Table struct {
	names   []string
	entries map[string]card.Entry
}

// NewTable creates an empty table
func NewTable() *Table {
	return &Table{entries: make(map[string]card.Entry)}
}

// Put stores the entry under its name and reports whether an existing entry was replaced
func (t *Table) Put(e card.Entry) bool {
	_, exists := t.entries[e.Name]
	if !exists {
		t.names = append(t.names, e.Name)
	}
	t.entries[e.Name] = e
	return exists
}

// Get returns the entry for a name
func (t *Table) Get(name string) (card.Entry, bool) {
	e, ok := t.entries[name]
	return e, ok
}

// Len returns the number of entries
func (t *Table) Len() int {
	return len(t.names)
}

// Entries returns all entries in insertion order
func (t *Table) Entries() []card.Entry {
	out := make([]card.Entry, 0, len(t.names))
	for _, name := range t.names {
		out = append(out, t.entries[name])
	}
	return out
}
