package state

// Item is one selectable dropdown entry.
type Item struct {
	Value string
	Label string
}

// Selector encapsulates dropdown state such as cursor position, filter, and
// viewport. The item under the cursor is the selector's current value.
type Selector struct {
	Name           string
	Title          string
	Items          []Item
	Full           []Item
	Filter         string
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewSelector constructs a Selector with the cursor on the first item.
func NewSelector(name, title string, items []Item) *Selector {
	s := &Selector{
		Name:       name,
		Title:      title,
		LastCursor: -1,
	}
	s.UpdateItems(items)
	return s
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}

// UpdateItems replaces the full item list and reapplies the filter.
func (s *Selector) UpdateItems(items []Item) {
	s.Full = CloneItems(items)
	s.applyFilter()
	if s.ViewportOffset > len(s.Items)-1 || s.ViewportOffset < 0 {
		s.ViewportOffset = 0
	}
}

// IndexOf returns the index of value among the visible items.
func (s *Selector) IndexOf(value string) int {
	for i, item := range s.Items {
		if item.Value == value {
			return i
		}
	}
	return -1
}

// Select moves the cursor onto value, clearing any filter first.
func (s *Selector) Select(value string) bool {
	if s.Filter != "" {
		s.SetFilter("")
	}
	idx := s.IndexOf(value)
	if idx < 0 {
		return false
	}
	s.Cursor = idx
	return true
}

// Current returns the item under the cursor.
func (s *Selector) Current() (Item, bool) {
	if s == nil || s.Cursor < 0 || s.Cursor >= len(s.Items) {
		return Item{}, false
	}
	return s.Items[s.Cursor], true
}

// Value returns the current value or fallback when nothing is selectable.
func (s *Selector) Value(fallback string) string {
	if item, ok := s.Current(); ok {
		return item.Value
	}
	return fallback
}
