package table

import (
	"fmt"
	"strings"
)

// Value is one raw token of an entry line
type Value struct {
	Raw    string // unquoted content for strings, the literal otherwise
	Quoted bool
}

// Row is a parsed entry line
type Row struct {
	Name   string
	Values []Value
}

// ParseLine reads an entry line back into its name and value tokens.
// A quoted value ends at the first quote followed by a comma or the closing bracket, so text
// that itself contains `", ` cannot be recovered exactly.
func ParseLine(line string) (Row, error) {
	rest, ok := strings.CutPrefix(line, EntryIndent+`"`)
	if !ok {
		return Row{}, fmt.Errorf("entry must start with %d spaces and a quoted name", len(EntryIndent))
	}

	name, rest, ok := strings.Cut(rest, `": [`)
	if !ok {
		return Row{}, fmt.Errorf("missing `: [` after name")
	}

	body, ok := strings.CutSuffix(rest, "],")
	if !ok {
		return Row{}, fmt.Errorf("entry must end with `],`")
	}

	values, err := splitValues(body)
	if err != nil {
		return Row{}, err
	}
	return Row{Name: name, Values: values}, nil
}

func splitValues(body string) ([]Value, error) {
	var values []Value
	for len(body) > 0 {
		var v Value
		if body[0] == '"' {
			end := closingQuote(body)
			if end < 0 {
				return nil, fmt.Errorf("unterminated string value %d", len(values)+1)
			}
			v = Value{Raw: body[1:end], Quoted: true}
			body = body[end+1:]
		} else {
			end := strings.Index(body, ",")
			if end < 0 {
				end = len(body)
			}
			v = Value{Raw: strings.TrimSpace(body[:end])}
			body = body[end:]
		}
		values = append(values, v)

		if body == "" {
			break
		}
		next, ok := strings.CutPrefix(body, ", ")
		if !ok {
			return nil, fmt.Errorf("values must be separated by \", \" after value %d", len(values))
		}
		body = next
	}
	return values, nil
}

// closingQuote finds the quote that ends the string starting at s[0]
func closingQuote(s string) int {
	for i := 1; i < len(s); i++ {
		if s[i] != '"' || s[i-1] == '\\' {
			continue
		}
		if i == len(s)-1 || strings.HasPrefix(s[i+1:], ", ") {
			return i
		}
	}
	return -1
}
