// Package tabular parses the small comma-separated tables the catalog is
// shipped as. Cells are split on a bare delimiter; quoting is not supported.
package tabular

import (
	"strings"

	"github.com/couchcryptid/cryopcm-lab/internal/domain"
)

// Delimiter separates cells within a line.
const Delimiter = ","

// Kind selects how a column is coerced.
type Kind int

const (
	Text Kind = iota
	Numeric
)

// Schema maps header names to column kinds. Columns not listed are Text.
type Schema map[string]Kind

// Row is one parsed data line keyed by header name.
type Row struct {
	text    map[string]string
	numeric map[string]domain.Measure
}

// Text returns a text cell, or "" when the column is absent or empty.
func (r Row) Text(column string) string {
	return r.text[column]
}

// Measure returns a numeric cell. Absent columns and unparseable cells are
// missing measures.
func (r Row) Measure(column string) domain.Measure {
	return r.numeric[column]
}

// Parse reads header-driven text. The first line names the columns; each
// following line becomes a Row in source order. Input without data lines
// yields an empty slice.
func Parse(text string, schema Schema) []Row {
	lines := splitLines(text)
	if len(lines) < 2 {
		return []Row{}
	}

	header := splitCells(lines[0])
	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cells := splitCells(line)
		row := Row{
			text:    make(map[string]string, len(header)),
			numeric: make(map[string]domain.Measure),
		}
		for j, name := range header {
			var cell string
			if j < len(cells) {
				cell = cells[j]
			}
			if schema[name] == Numeric {
				row.numeric[name] = domain.ParseMeasure(cell)
				continue
			}
			row.text[name] = cell
		}
		rows = append(rows, row)
	}
	return rows
}

// ParsePositional skips the header line and returns each remaining line as
// trimmed cells. Lines whose first cell is empty are dropped.
func ParsePositional(text string) [][]string {
	lines := splitLines(text)
	if len(lines) < 2 {
		return [][]string{}
	}

	rows := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cells := splitCells(line)
		if cells[0] == "" {
			continue
		}
		rows = append(rows, cells)
	}
	return rows
}

// Cell returns cells[i], or "" past the end of a short row.
func Cell(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}

func splitLines(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	return lines
}

func splitCells(line string) []string {
	cells := strings.Split(line, Delimiter)
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}
