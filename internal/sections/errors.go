package sections

import "fmt"

// EntryNotFoundError is returned when an operation names an id the editor does not hold.
type EntryNotFoundError struct {
	Section Section
	ID      string
}

func (e *EntryNotFoundError) Error() string {
	return fmt.Sprintf("%s entry %q not found", e.Section, e.ID)
}

// ErrorBag holds field-level validation messages keyed by entry id, then field.
type ErrorBag struct {
	errs map[string]map[string]string
}

// NewErrorBag returns an empty bag.
func NewErrorBag() *ErrorBag {
	return &ErrorBag{errs: make(map[string]map[string]string)}
}

// Set records msg for (id, field). An empty msg clears it.
func (b *ErrorBag) Set(id, field, msg string) {
	if msg == "" {
		b.Clear(id, field)
		return
	}
	fields, ok := b.errs[id]
	if !ok {
		fields = make(map[string]string)
		b.errs[id] = fields
	}
	fields[field] = msg
}

// Get returns the message for (id, field), or "".
func (b *ErrorBag) Get(id, field string) string {
	return b.errs[id][field]
}

// Clear removes the message for (id, field).
func (b *ErrorBag) Clear(id, field string) {
	fields, ok := b.errs[id]
	if !ok {
		return
	}
	delete(fields, field)
	if len(fields) == 0 {
		delete(b.errs, id)
	}
}

// ClearEntry drops every message for id.
func (b *ErrorBag) ClearEntry(id string) {
	delete(b.errs, id)
}

// Entry returns a copy of the messages for id.
func (b *ErrorBag) Entry(id string) map[string]string {
	out := make(map[string]string, len(b.errs[id]))
	for k, v := range b.errs[id] {
		out[k] = v
	}
	return out
}

// Len counts messages across all entries.
func (b *ErrorBag) Len() int {
	n := 0
	for _, fields := range b.errs {
		n += len(fields)
	}
	return n
}

// Empty reports whether the bag holds no messages.
func (b *ErrorBag) Empty() bool {
	return len(b.errs) == 0
}
