package completion

// DefaultDisplayLimit is the number of suggestions shown and cycled through
const DefaultDisplayLimit = 5

// Suggestions is the displayed suggestion state.
// Selected is -1 when nothing is selected.
type Suggestions struct {
	visible  bool
	header   string
	choices  []string
	selected int
	limit    int
}

// NewSuggestions creates a hidden, empty suggestion state
func NewSuggestions(limit int) *Suggestions {
	if limit <= 0 {
		limit = DefaultDisplayLimit
	}
	return &Suggestions{header: HeaderCommand, selected: -1, limit: limit}
}

// Set replaces the displayed choices. A list with the same length and the
// same first element as the displayed one leaves the state untouched.
// It reports whether the state changed.
func (s *Suggestions) Set(choices []string, header string) bool {
	if choices != nil && len(s.choices) > 0 &&
		len(choices) == len(s.choices) && choices[0] == s.choices[0] {
		return false
	}

	s.selected = -1
	s.choices = choices
	s.header = header
	return true
}

// Next selects the following choice, wrapping within the displayed ones
func (s *Suggestions) Next() (string, bool) {
	if !s.HasChoices() {
		return "", false
	}
	s.selected = (s.selected + 1) % min(len(s.choices), s.limit)
	return s.choices[s.selected], true
}

// HasChoices reports whether there is anything to select
func (s *Suggestions) HasChoices() bool {
	return len(s.choices) > 0
}

// Selected returns the selection index
func (s *Suggestions) Selected() int {
	return s.selected
}

// SelectedValue returns the selected choice, if any
func (s *Suggestions) SelectedValue() (string, bool) {
	if s.selected < 0 || s.selected >= len(s.choices) {
		return "", false
	}
	return s.choices[s.selected], true
}

// Choices returns every current choice
func (s *Suggestions) Choices() []string {
	return s.choices
}

// Displayed returns the choices within the display limit
func (s *Suggestions) Displayed() []string {
	if len(s.choices) <= s.limit {
		return s.choices
	}
	return s.choices[:s.limit]
}

// Header returns the label of what is being completed
func (s *Suggestions) Header() string {
	return s.header
}

// Limit returns the display limit
func (s *Suggestions) Limit() int {
	return s.limit
}

// Visible reports whether suggestions are shown
func (s *Suggestions) Visible() bool {
	return s.visible
}

// Toggle flips visibility and returns the new state
func (s *Suggestions) Toggle() bool {
	s.visible = !s.visible
	return s.visible
}

// Show makes suggestions visible
func (s *Suggestions) Show() { s.visible = true }

// Hide hides suggestions
func (s *Suggestions) Hide() { s.visible = false }
