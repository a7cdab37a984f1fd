// Package normalize flattens raw LorcanaJSON records into table entries.
//
// Every field the table needs is declared once in the field lists below together with the
// Defaults member it falls back to. Lookups never require presence: a missing, null or
// mistyped value resolves to its default and is not an error.
package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/arcanaland/inktable/internal/card"
)

// AbilityTextSeparator joins ability texts. It is a backslash followed by n, not a newline byte.
const AbilityTextSeparator = `\n`

// AbilityTypeSeparator joins ability type labels
const AbilityTypeSeparator = ", "

// Defaults holds the values used when a record omits a field
type Defaults struct {
	ID        int
	Strength  int
	Willpower int
	Lore      int
	Cost      int
	Drying    int
	Inked     int
	Tapped    int
}

// DefaultValues returns the zero defaults the table format expects
func DefaultValues() Defaults {
	return Defaults{}
}

type intField struct {
	key string
	def func(Defaults) int
	set func(*card.Entry, int)
}

type stringField struct {
	path []string
	set  func(*card.Entry, string)
}

var intFields = []intField{
	{"id", func(d Defaults) int { return d.ID }, func(e *card.Entry, v int) { e.ID = v }},
	{"strength", func(d Defaults) int { return d.Strength }, func(e *card.Entry, v int) { e.Strength = v }},
	{"willpower", func(d Defaults) int { return d.Willpower }, func(e *card.Entry, v int) { e.Willpower = v }},
	{"lore", func(d Defaults) int { return d.Lore }, func(e *card.Entry, v int) { e.Lore = v }},
	{"cost", func(d Defaults) int { return d.Cost }, func(e *card.Entry, v int) { e.Cost = v }},
}

var stringFields = []stringField{
	{[]string{"images", "full"}, func(e *card.Entry, v string) { e.ImageURL = v }},
	{[]string{"color"}, func(e *card.Entry, v string) { e.Color = v }},
}

// Normalizer converts records using a fixed set of defaults
type Normalizer struct {
	defaults Defaults
}

// NewNormalizer creates a normalizer
func NewNormalizer(defaults Defaults) *Normalizer {
	return &Normalizer{defaults: defaults}
}

// Normalize converts one record. It returns false when the record has no usable simpleName.
func (n *Normalizer) Normalize(rec card.Record) (card.Entry, bool) {
	name, _ := lookup(rec, "simpleName").(string)
	if name == "" {
		return card.Entry{}, false
	}

	entry := card.Entry{
		Name:   name,
		Drying: n.defaults.Drying,
		Inked:  n.defaults.Inked,
		Tapped: n.defaults.Tapped,
	}

	for _, f := range intFields {
		v, ok := toInt(lookup(rec, f.key))
		if !ok {
			v = f.def(n.defaults)
		}
		f.set(&entry, v)
	}

	for _, f := range stringFields {
		s, _ := lookup(rec, f.path...).(string)
		f.set(&entry, s)
	}

	entry.Inkwell = truthy(lookup(rec, "inkwell"))
	entry.AbilityText, entry.AbilityTypes = FoldAbilities(Abilities(rec))

	return entry, true
}

// Result is the outcome of normalizing a whole dataset
type Result struct {
	Table      *Table
	Processed  int // records seen
	Skipped    int // records without a simpleName
	Duplicates int // records that replaced an earlier entry
}

// Build normalizes every record into an ordered table. Later records with the same name
// replace earlier ones but keep the earlier position.
func (n *Normalizer) Build(records []card.Record) *Result {
	res := &Result{Table: NewTable()}
	for _, rec := range records {
		res.Processed++
		entry, ok := n.Normalize(rec)
		if !ok {
			res.Skipped++
			continue
		}
		if res.Table.Put(entry) {
			res.Duplicates++
		}
	}
	return res
}

// Abilities extracts the abilities list. Non-object items are ignored.
func Abilities(rec card.Record) []card.Ability {
	items, ok := lookup(rec, "abilities").([]any)
	if !ok {
		return nil
	}

	abilities := make([]card.Ability, 0, len(items))
	for _, item := range items {
		obj, ok := asObject(item)
		if !ok {
			continue
		}
		text, _ := obj["fullText"].(string)
		typ, _ := obj["type"].(string)
		abilities = append(abilities, card.Ability{FullText: text, Type: typ})
	}
	return abilities
}

// FoldAbilities collapses abilities into the text and type columns. Empty values are left out.
func FoldAbilities(abilities []card.Ability) (text, types string) {
	var texts, labels []string
	for _, a := range abilities {
		if a.FullText != "" {
			texts = append(texts, a.FullText)
		}
		if a.Type != "" {
			labels = append(labels, a.Type)
		}
	}
	return strings.Join(texts, AbilityTextSeparator), strings.Join(labels, AbilityTypeSeparator)
}

// lookup walks nested objects and returns nil for anything missing along the path
func lookup(rec card.Record, path ...string) any {
	var cur any = map[string]any(rec)
	for _, key := range path {
		obj, ok := asObject(cur)
		if !ok {
			return nil
		}
		cur = obj[key]
	}
	return cur
}

func asObject(v any) (map[string]any, bool) {
	switch o := v.(type) {
	case map[string]any:
		return o, o != nil
	case card.Record:
		return map[string]any(o), o != nil
	}
	return nil, false
}

// toInt accepts integral JSON numbers and decimal strings
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int64ToInt(i)
		}
		if f, err := n.Float64(); err == nil {
			return floatToInt(f)
		}
	case float64:
		return floatToInt(n)
	case int:
		return n, true
	case int64:
		return int64ToInt(n)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func int64ToInt(i int64) (int, bool) {
	if i < math.MinInt || i > math.MaxInt {
		return 0, false
	}
	return int(i), true
}

// floatToInt accepts only integral floats that fit in an int
func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt || f >= math.MaxInt {
		return 0, false
	}
	return int(f), true
}

// truthy follows JSON truthiness: false, null, zero, "" and empty containers are false
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case float64:
		return t != 0
	case int:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}
