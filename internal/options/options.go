package options

import (
	"errors"
	"fmt"

	"github.com/atomicstack/officer-wizard/internal/department"
	"github.com/tidwall/gjson"
)

// NotSure is the sentinel option placed at the top of every rebuilt dropdown.
const NotSure = "Not Sure"

// Dropdown names that depend on the selected department.
const (
	Rank = "rank"
	Unit = "unit"
)

// ErrMalformedResponse is returned when the endpoint body is not an array of
// [key, label] tuples.
var ErrMalformedResponse = errors.New("malformed option response")

// Record is one tuple returned by a data endpoint. Only Label (index 1) is
// used for display and value.
type Record struct {
	Key   string
	Label string
}

// Option is a single selectable entry.
type Option struct {
	Value string
	Label string
}

// Set is a freshly built dropdown for one department.
type Set struct {
	Name       string
	Department department.ID
	Options    []Option
}

// Build assembles a dropdown: the sentinel first, then one option per record
// in response order.
func Build(name string, dept department.ID, records []Record) Set {
	opts := make([]Option, 0, len(records)+1)
	opts = append(opts, Option{Value: NotSure, Label: NotSure})
	for _, r := range records {
		opts = append(opts, Option{Value: r.Label, Label: r.Label})
	}
	return Set{Name: name, Department: dept, Options: opts}
}

// Labels returns the option labels in order.
func (s Set) Labels() []string {
	labels := make([]string, len(s.Options))
	for i, o := range s.Options {
		labels[i] = o.Label
	}
	return labels
}

// ParseRecords decodes an endpoint body of the form [[key, label], ...].
func ParseRecords(body []byte) ([]Record, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid json", ErrMalformedResponse)
	}
	root := gjson.ParseBytes(body)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: expected array, got %s", ErrMalformedResponse, root.Type)
	}
	rows := root.Array()
	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		if !row.IsArray() {
			return nil, fmt.Errorf("%w: row %d is not an array", ErrMalformedResponse, i)
		}
		cols := row.Array()
		if len(cols) < 2 {
			return nil, fmt.Errorf("%w: row %d has %d elements", ErrMalformedResponse, i, len(cols))
		}
		label := cols[1]
		if label.Type == gjson.Null || label.Type == gjson.JSON {
			return nil, fmt.Errorf("%w: row %d label is not a scalar", ErrMalformedResponse, i)
		}
		records = append(records, Record{Key: cols[0].String(), Label: label.String()})
	}
	return records, nil
}
