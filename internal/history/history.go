// Package history keeps the submitted command lines of a console session.
package history

// Buffer is an append-only log of submitted lines with a recall cursor.
// After every Add the cursor sits past the newest entry.
type Buffer struct {
	entries []string
	cursor  int
	limit   int
}

// New creates a buffer keeping at most limit entries, 0 means unbounded
func New(limit int) *Buffer {
	if limit < 0 {
		limit = 0
	}
	return &Buffer{limit: limit}
}

// Add records a line. Duplicates are kept.
func (b *Buffer) Add(line string) {
	b.entries = append(b.entries, line)
	if b.limit > 0 && len(b.entries) > b.limit {
		b.entries = append([]string(nil), b.entries[len(b.entries)-b.limit:]...)
	}
	b.cursor = len(b.entries)
}

// Previous moves the cursor one entry back and returns that entry.
// It stops at the oldest entry; ok is false when the buffer is empty.
func (b *Buffer) Previous() (string, bool) {
	if len(b.entries) == 0 {
		return "", false
	}
	if b.cursor > 0 {
		b.cursor--
	}
	return b.entries[b.cursor], true
}

// Next moves the cursor one entry forward. Moving past the newest entry
// returns an empty line with ok false.
func (b *Buffer) Next() (string, bool) {
	if b.cursor < len(b.entries) {
		b.cursor++
	}
	if b.cursor >= len(b.entries) {
		return "", false
	}
	return b.entries[b.cursor], true
}

// Entries returns a copy of the recorded lines, oldest first
func (b *Buffer) Entries() []string {
	return append([]string{}, b.entries...)
}

// Len returns the number of recorded lines
func (b *Buffer) Len() int {
	return len(b.entries)
}

// Clear forgets every line
func (b *Buffer) Clear() {
	b.entries = nil
	b.cursor = 0
}
