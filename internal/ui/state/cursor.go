package state

// MoveCursorUp moves the cursor up one row, wrapping to the last item.
func (s *Selector) MoveCursorUp() bool {
	n := len(s.Items)
	if n == 0 {
		s.Cursor = 0
		return false
	}
	old := s.Cursor
	if s.Cursor > 0 {
		s.Cursor--
	} else {
		s.Cursor = n - 1
	}
	return old != s.Cursor
}

// MoveCursorDown moves the cursor down one row, wrapping to the first item.
func (s *Selector) MoveCursorDown() bool {
	n := len(s.Items)
	if n == 0 {
		s.Cursor = 0
		return false
	}
	old := s.Cursor
	if s.Cursor < n-1 {
		s.Cursor++
	} else {
		s.Cursor = 0
	}
	return old != s.Cursor
}

// MoveCursorHome moves the cursor to the first item.
func (s *Selector) MoveCursorHome() bool {
	if len(s.Items) == 0 {
		s.Cursor = 0
		return false
	}
	old := s.Cursor
	s.Cursor = 0
	return old != s.Cursor
}

// MoveCursorEnd moves the cursor to the last item.
func (s *Selector) MoveCursorEnd() bool {
	n := len(s.Items)
	if n == 0 {
		s.Cursor = 0
		return false
	}
	old := s.Cursor
	s.Cursor = n - 1
	return old != s.Cursor
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (s *Selector) EnsureCursorVisible(maxVisible int) {
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
	if maxVisible <= 0 {
		s.ViewportOffset = 0
		return
	}
	maxOffset := len(s.Items) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.ViewportOffset > maxOffset {
		s.ViewportOffset = maxOffset
	}
	if s.ViewportOffset < 0 {
		s.ViewportOffset = 0
	}
	if s.Cursor < s.ViewportOffset {
		s.ViewportOffset = s.Cursor
	}
	if upper := s.ViewportOffset + maxVisible - 1; s.Cursor > upper {
		s.ViewportOffset = s.Cursor - maxVisible + 1
	}
}

// Window returns the slice of visible items and the index of its first item.
func (s *Selector) Window(maxVisible int) ([]Item, int) {
	s.EnsureCursorVisible(maxVisible)
	if maxVisible <= 0 || len(s.Items) <= maxVisible {
		return s.Items, 0
	}
	start := s.ViewportOffset
	return s.Items[start : start+maxVisible], start
}
