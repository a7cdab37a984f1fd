package validator

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/arcanaland/inktable/internal/card"
	"github.com/arcanaland/inktable/internal/table"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
	Entries  int
}

type Validator struct {
	TablePath string
	Results   ValidationResults
}

// column kinds in table order
const (
	colInt = iota
	colString
	colBool
)

var columns = [card.ColumnCount]struct {
	name string
	kind int
}{
	{"id", colInt},
	{"imageUrl", colString},
	{"color", colString},
	{"abilityText", colString},
	{"abilityTypes", colString},
	{"strength", colInt},
	{"willpower", colInt},
	{"lore", colInt},
	{"cost", colInt},
	{"inkwell", colBool},
	{"drying", colInt},
	{"inked", colInt},
	{"tapped", colInt},
}

func NewValidator(tablePath string) *Validator {
	return &Validator{
		TablePath: tablePath,
		Results:   ValidationResults{},
	}
}

func (v *Validator) Validate() (ValidationResults, error) {
	lines, err := v.readLines()
	if err != nil {
		return v.Results, err
	}

	if len(lines) == 0 {
		v.Results.Errors = append(v.Results.Errors, "file is empty")
		return v.Results, nil
	}

	v.validateFrame(lines)
	v.validateEntries(lines)

	if v.Results.Entries == 0 {
		v.Results.Warnings = append(v.Results.Warnings, "table has no entries")
	}

	return v.Results, nil
}

func (v *Validator) readLines() ([]string, error) {
	file, err := os.Open(v.TablePath)
	if err != nil {
		return nil, fmt.Errorf("error opening table: %w", err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading table: %w", err)
	}
	return lines, nil
}

// validateFrame checks the opening and closing lines
func (v *Validator) validateFrame(lines []string) {
	if lines[0] != table.Header {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("line 1: expected %q, found %q", table.Header, lines[0]))
	}

	last := lines[len(lines)-1]
	if len(lines) < 2 || last != table.Footer {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("line %d: expected closing %q", len(lines), table.Footer))
	}
}

// validateEntries checks every line between the frame
func (v *Validator) validateEntries(lines []string) {
	if len(lines) < 3 {
		return
	}

	seen := make(map[string]int)
	for i, line := range lines[1 : len(lines)-1] {
		lineNo := i + 2

		row, err := table.ParseLine(line)
		if err != nil {
			v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("line %d: %v", lineNo, err))
			continue
		}
		v.Results.Entries++

		if row.Name == "" {
			v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("line %d: empty card name", lineNo))
		} else if first, ok := seen[row.Name]; ok {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("line %d: duplicate card %q (first on line %d)", lineNo, row.Name, first))
		} else {
			seen[row.Name] = lineNo
		}

		if len(row.Values) != card.ColumnCount {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("line %d: %q has %d values, expected %d", lineNo, row.Name, len(row.Values), card.ColumnCount))
			continue
		}

		for j, val := range row.Values {
			if msg := checkValue(val, columns[j].kind); msg != "" {
				v.Results.Errors = append(v.Results.Errors,
					fmt.Sprintf("line %d: %q %s %s", lineNo, row.Name, columns[j].name, msg))
			}
		}

		if strings.Contains(row.Values[1].Raw, " ") {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("line %d: %q imageUrl contains spaces", lineNo, row.Name))
		}
	}
}

func checkValue(val table.Value, kind int) string {
	switch kind {
	case colString:
		if !val.Quoted {
			return "must be a quoted string"
		}
	case colInt:
		if val.Quoted {
			return "must be an unquoted integer"
		}
		if _, err := strconv.Atoi(val.Raw); err != nil {
			return fmt.Sprintf("is not an integer: %s", val.Raw)
		}
	case colBool:
		if val.Quoted || (val.Raw != "true" && val.Raw != "false") {
			return fmt.Sprintf("must be true or false, found %s", val.Raw)
		}
	}
	return ""
}
