package state

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetFilter updates the filter query. The cursor jumps to the best match while
// a query is active and returns to its previous row once the query is cleared.
func (s *Selector) SetFilter(query string) {
	trimmed := strings.TrimSpace(query)
	prevTrimmed := strings.TrimSpace(s.Filter)
	var previous Item
	hadPrevious := false
	if trimmed == "" && prevTrimmed != "" && s.LastCursor >= 0 && s.LastCursor < len(s.Full) {
		previous = s.Full[s.LastCursor]
		hadPrevious = true
	}
	if trimmed != "" && prevTrimmed == "" {
		s.LastCursor = s.fullIndex(s.Cursor)
	}
	s.Filter = query
	s.applyFilter()
	switch {
	case trimmed != "":
		if idx := BestMatchIndex(s.Items, trimmed); idx >= 0 {
			s.Cursor = idx
		}
	case prevTrimmed != "":
		s.Cursor = 0
		if hadPrevious {
			if idx := s.IndexOf(previous.Value); idx >= 0 {
				s.Cursor = idx
			}
		}
		s.LastCursor = -1
	}
}

// InsertFilterText appends text to the filter.
func (s *Selector) InsertFilterText(text string) bool {
	if text == "" {
		return false
	}
	s.SetFilter(s.Filter + text)
	return true
}

// DeleteFilterRuneBackward removes the last rune of the filter.
func (s *Selector) DeleteFilterRuneBackward() bool {
	runes := []rune(s.Filter)
	if len(runes) == 0 {
		return false
	}
	s.SetFilter(string(runes[:len(runes)-1]))
	return true
}

// ClearFilter drops the filter while keeping the item under the cursor.
func (s *Selector) ClearFilter() bool {
	if s.Filter == "" {
		return false
	}
	current, ok := s.Current()
	s.SetFilter("")
	if ok {
		if idx := s.IndexOf(current.Value); idx >= 0 {
			s.Cursor = idx
		}
	}
	return true
}

func (s *Selector) fullIndex(visible int) int {
	if visible < 0 || visible >= len(s.Items) {
		return -1
	}
	value := s.Items[visible].Value
	for i, item := range s.Full {
		if item.Value == value {
			return i
		}
	}
	return -1
}

func (s *Selector) applyFilter() {
	s.Items = FilterItems(s.Full, s.Filter)
	if len(s.Items) == 0 {
		s.Cursor = 0
		s.ViewportOffset = 0
		return
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	if s.Cursor >= len(s.Items) {
		s.Cursor = len(s.Items) - 1
	}
}

// FilterItems returns items whose label fuzzy-matches query, falling back to
// substring matches on label or value.
func FilterItems(items []Item, query string) []Item {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return CloneItems(items)
	}
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	if ranks := fuzzy.RankFindNormalizedFold(trimmed, labels); len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]Item, 0, len(matches))
		for idx, item := range items {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, item)
			}
		}
		return filtered
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Label), lower) || strings.Contains(strings.ToLower(item.Value), lower) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// BestMatchIndex prefers exact, then prefix, then fuzzy matches on the label.
func BestMatchIndex(items []Item, query string) int {
	if len(items) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	for i, item := range items {
		if strings.EqualFold(item.Label, trimmed) || strings.EqualFold(item.Value, trimmed) {
			return i
		}
	}
	for i, item := range items {
		if strings.HasPrefix(strings.ToLower(item.Label), lower) {
			return i
		}
	}
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance || (rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return best.OriginalIndex
}
