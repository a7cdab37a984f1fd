package table

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/inktable/internal/card"
	"github.com/arcanaland/inktable/internal/normalize"
)

func tableOf(entries ...card.Entry) *normalize.Table {
	t := normalize.NewTable()
	for _, e := range entries {
		t.Put(e)
	}
	return t
}

func TestWrite_SingleEntry(t *testing.T) {
	var buf bytes.Buffer
	err := Serializer{}.Write(&buf, tableOf(card.Entry{Name: "test-card", ID: 42}))
	require.NoError(t, err)

	assert.Equal(t,
		"const CARDS = {\n    \"test-card\": [42, \"\", \"\", \"\", \"\", 0, 0, 0, 0, false, 0, 0, 0],\n}\n",
		buf.String())
}

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Serializer{}.Write(&buf, normalize.NewTable()))
	assert.Equal(t, "const CARDS = {\n}\n", buf.String())
}

func TestLine_AllFields(t *testing.T) {
	e := card.Entry{
		Name:         "stitch - rock star",
		ID:           23,
		ImageURL:     "https://example.com/23.jpg",
		Color:        "Amethyst",
		AbilityText:  `Shift 4\nADORING FANS Whenever you play a character.`,
		AbilityTypes: "keyword, triggered",
		Strength:     3,
		Willpower:    5,
		Lore:         2,
		Cost:         6,
		Inkwell:      true,
	}

	assert.Equal(t,
		`    "stitch - rock star": [23, "https://example.com/23.jpg", "Amethyst", "Shift 4\nADORING FANS Whenever you play a character.", "keyword, triggered", 3, 5, 2, 6, true, 0, 0, 0],`,
		Serializer{}.Line(e))
}

func TestLine_Escape(t *testing.T) {
	e := card.Entry{Name: `the "one"`, AbilityText: "line one\nline two"}

	raw := Serializer{}.Line(e)
	assert.Contains(t, raw, `"the "one""`)
	assert.Contains(t, raw, "line one\nline two")

	escaped := Serializer{Escape: true}.Line(e)
	assert.Contains(t, escaped, `"the \"one\""`)
	assert.Contains(t, escaped, `"line one\nline two"`)
	assert.NotContains(t, escaped, "\n")
}

func TestWrite_KeepsInsertionOrder(t *testing.T) {
	var buf bytes.Buffer
	tbl := tableOf(
		card.Entry{Name: "zeta", ID: 1},
		card.Entry{Name: "alpha", ID: 2},
		card.Entry{Name: "zeta", ID: 3},
	)
	require.NoError(t, Serializer{}.Write(&buf, tbl))

	assert.Equal(t, "const CARDS = {\n"+
		"    \"zeta\": [3, \"\", \"\", \"\", \"\", 0, 0, 0, 0, false, 0, 0, 0],\n"+
		"    \"alpha\": [2, \"\", \"\", \"\", \"\", 0, 0, 0, 0, false, 0, 0, 0],\n"+
		"}\n", buf.String())
}

func TestWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.txt")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer than the new table\n\n\n"), 0644))

	require.NoError(t, Serializer{}.WriteFile(path, tableOf(card.Entry{Name: "a", ID: 1})))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "const CARDS = {\n    \"a\": [1, \"\", \"\", \"\", \"\", 0, 0, 0, 0, false, 0, 0, 0],\n}\n", string(data))
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "cards.txt")
	err := Serializer{}.WriteFile(path, normalize.NewTable())
	assert.Error(t, err)
}

func TestParseLine_RoundTrip(t *testing.T) {
	e := card.Entry{
		Name:         "hades - lord of the underworld",
		ID:           4,
		ImageURL:     "https://example.com/4.jpg",
		Color:        "Amber",
		AbilityText:  `WELL OF SOULS When you play this character, return a character card.\nAnother line`,
		AbilityTypes: "triggered, static",
		Strength:     3,
		Willpower:    2,
		Lore:         1,
		Cost:         4,
		Inkwell:      false,
	}

	row, err := ParseLine(Serializer{}.Line(e))
	require.NoError(t, err)

	assert.Equal(t, e.Name, row.Name)
	require.Len(t, row.Values, card.ColumnCount)
	assert.Equal(t, Value{Raw: "4"}, row.Values[0])
	assert.Equal(t, Value{Raw: "https://example.com/4.jpg", Quoted: true}, row.Values[1])
	assert.Equal(t, Value{Raw: e.AbilityText, Quoted: true}, row.Values[3])
	assert.Equal(t, Value{Raw: "triggered, static", Quoted: true}, row.Values[4])
	assert.Equal(t, Value{Raw: "false"}, row.Values[9])
	assert.Equal(t, Value{Raw: "0"}, row.Values[12])
}

func TestParseLine_Errors(t *testing.T) {
	testCases := []struct {
		name string
		line string
	}{
		{"no indent", `"a": [1],`},
		{"no bracket", `    "a": 1,`},
		{"no trailing comma", `    "a": [1]`},
		{"unterminated string", `    "a": [1, "abc],`},
		{"bad separator", `    "a": [1,2],`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseLine(tc.line)
			assert.Error(t, err)
		})
	}
}
