package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arcanaland/inktable/internal/card"
)

func TestTable_Put(t *testing.T) {
	table := NewTable()

	assert.False(t, table.Put(card.Entry{Name: "b", ID: 1}))
	assert.False(t, table.Put(card.Entry{Name: "a", ID: 2}))
	assert.True(t, table.Put(card.Entry{Name: "b", ID: 3}))

	assert.Equal(t, 2, table.Len())

	got, ok := table.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 3, got.ID)

	_, ok = table.Get("missing")
	assert.False(t, ok)

	entries := table.Entries()
	assert.Equal(t, []string{"b", "a"}, []string{entries[0].Name, entries[1].Name})
}
