package department

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrDuplicateID is returned when a directory lists the same department twice.
var ErrDuplicateID = errors.New("duplicate department id")

// ID is the canonical department identifier. Every string value coming from
// the UI or a config file is parsed into an ID before comparison.
type ID int64

// ParseID normalises a department identifier.
func ParseID(value string) (ID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, errors.New("empty department id")
	}
	parsed, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse department id %q: %w", value, err)
	}
	return ID(parsed), nil
}

// String renders the id the way the data endpoints expect it.
func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// UnmarshalYAML accepts both numeric and quoted ids.
func (id *ID) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseID(node.Value)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Record is the read-only metadata for one department.
type Record struct {
	ID       ID     `yaml:"id"`
	Name     string `yaml:"name"`
	UIILabel string `yaml:"unique_internal_identifier_label"`
}

// DisplayName returns the name to show in the department selector.
func (r Record) DisplayName() string {
	if name := strings.TrimSpace(r.Name); name != "" {
		return name
	}
	return fmt.Sprintf("Department %s", r.ID)
}

// HasUII reports whether the department asks for a unique internal identifier.
func (r Record) HasUII() bool {
	return strings.TrimSpace(r.UIILabel) != ""
}

// Directory is the set of known departments in file order.
type Directory struct {
	records []Record
}

// NewDirectory builds a directory from records, rejecting duplicate ids.
func NewDirectory(records []Record) (*Directory, error) {
	seen := make(map[ID]struct{}, len(records))
	for _, r := range records {
		if _, ok := seen[r.ID]; ok {
			return nil, fmt.Errorf("department %s: %w", r.ID, ErrDuplicateID)
		}
		seen[r.ID] = struct{}{}
	}
	return &Directory{records: append([]Record(nil), records...)}, nil
}

// Parse decodes a YAML or JSON department list.
func Parse(data []byte) (*Directory, error) {
	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode departments: %w", err)
	}
	return NewDirectory(records)
}

// LoadFile reads the department list from path.
func LoadFile(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read departments: %w", err)
	}
	return Parse(data)
}

// Records returns a copy of all records.
func (d *Directory) Records() []Record {
	if d == nil {
		return nil
	}
	return append([]Record(nil), d.records...)
}

// Len returns the number of departments.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Lookup finds the record for id.
func (d *Directory) Lookup(id ID) (Record, bool) {
	if d == nil {
		return Record{}, false
	}
	for _, r := range d.records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

// First returns the first department in file order.
func (d *Directory) First() (Record, bool) {
	if d == nil || len(d.records) == 0 {
		return Record{}, false
	}
	return d.records[0], true
}
