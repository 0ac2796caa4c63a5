package ui

import (
	"fmt"
	"net/url"

	"github.com/atomicstack/officer-wizard/internal/department"
)

// Selection is the submitted search.
type Selection struct {
	Department department.ID
	Rank       string
	Unit       string
	UII        string
}

// Query encodes the selection as search parameters.
func (s Selection) Query() url.Values {
	values := url.Values{}
	values.Set("dept", s.Department.String())
	values.Set("rank", s.Rank)
	values.Set("unit", s.Unit)
	if s.UII != "" {
		values.Set("unique_internal_identifier", s.UII)
	}
	return values
}

// URL merges the selection into base. An empty base yields a bare query string.
func (s Selection) URL(base string) (string, error) {
	if base == "" {
		return "?" + s.Query().Encode(), nil
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse search url: %w", err)
	}
	q := u.Query()
	for key, vals := range s.Query() {
		q[key] = vals
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
