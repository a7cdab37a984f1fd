// Package table renders normalized cards as the CARDS lookup table.
//
// The format is a fixed text schema:
//
//	const CARDS = {
//	    "<name>": [<id>, "<imageUrl>", "<color>", "<abilityText>", "<abilityTypes>", <strength>, <willpower>, <lore>, <cost>, <inkwell>, <drying>, <inked>, <tapped>],
//	}
//
// Strings are quoted and, unless Escape is set, written verbatim.
package table

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/arcanaland/inktable/internal/card"
	"github.com/arcanaland/inktable/internal/normalize"
)

const (
	Header      = "const CARDS = {"
	Footer      = "}"
	EntryIndent = "    "
)

// Serializer writes tables
type Serializer struct {
	// Escape turns embedded quotes into \" and newline bytes into \n
	Escape bool
}

// Write renders the header, one line per entry in table order, and the footer
func (s Serializer) Write(w io.Writer, t *normalize.Table) error {
	var buf bytes.Buffer
	buf.WriteString(Header + "\n")
	for _, e := range t.Entries() {
		buf.WriteString(s.Line(e))
		buf.WriteString("\n")
	}
	buf.WriteString(Footer + "\n")

	_, err := w.Write(buf.Bytes())
	return err
}

// Line renders a single entry without the trailing newline
func (s Serializer) Line(e card.Entry) string {
	values := e.Values()
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = s.value(v)
	}
	return fmt.Sprintf("%s%s: [%s],", EntryIndent, s.quote(e.Name), strings.Join(parts, ", "))
}

// WriteFile renders the table in memory and overwrites path with it in one write
func (s Serializer) WriteFile(path string, t *normalize.Table) error {
	var buf bytes.Buffer
	if err := s.Write(&buf, t); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}

func (s Serializer) value(v any) string {
	switch t := v.(type) {
	case string:
		return s.quote(t)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func (s Serializer) quote(str string) string {
	if s.Escape {
		str = strings.ReplaceAll(str, `"`, `\"`)
		str = strings.ReplaceAll(str, "\n", `\n`)
	}
	return `"` + str + `"`
}
