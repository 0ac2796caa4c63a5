package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Gap separates adjacent columns.
const Gap = "  "

// Format pads each row so columns line up on display width. Rows shorter than
// the widest row are padded with empty cells. Trailing padding is trimmed.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	widths := make([]int, colCount)
	for _, row := range rows {
		for c, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c := 0; c < colCount; c++ {
			cell := ""
			if c < len(row) {
				cell = row[c]
			}
			if c > 0 {
				b.WriteString(Gap)
			}
			if c < len(alignments) && alignments[c] == AlignRight {
				b.WriteString(runewidth.FillLeft(cell, widths[c]))
			} else {
				b.WriteString(runewidth.FillRight(cell, widths[c]))
			}
		}
		out[i] = strings.TrimRight(b.String(), " ")
	}
	return out
}

// Pairs formats label/value rows with the labels right-aligned and suffixed
// with a colon.
func Pairs(pairs [][2]string) []string {
	rows := make([][]string, len(pairs))
	for i, p := range pairs {
		rows[i] = []string{p[0] + ":", p[1]}
	}
	return Format(rows, []Alignment{AlignRight, AlignLeft})
}
