package sections

import (
	"github.com/google/uuid"
)

// Option configures an editor.
type Option func(*options)

type options struct {
	newID func() string
}

// WithIDGenerator replaces the UUIDv4 generator, for deterministic tests.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) { o.newID = fn }
}

func buildOptions(opts []Option) options {
	o := options{newID: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Editor edits one list section. Every committed change hands a fresh slice
// to onChange; slices previously handed out are never mutated.
type Editor[T Entry[T]] struct {
	section  Section
	items    []T
	errors   *ErrorBag
	onChange func([]T)
	newID    func() string
}

// NewEditor mounts an editor over items. Sections that seed on mount get one
// blank entry when items is empty, reported through onChange like any edit.
func NewEditor[T Entry[T]](section Section, items []T, onChange func([]T), opts ...Option) *Editor[T] {
	o := buildOptions(opts)
	if onChange == nil {
		onChange = func([]T) {}
	}
	e := &Editor[T]{
		section:  section,
		items:    append([]T(nil), items...),
		errors:   NewErrorBag(),
		onChange: onChange,
		newID:    o.newID,
	}
	if len(e.items) == 0 && section.SeedsOnMount() {
		e.Add()
	}
	return e
}

// Section returns the section this editor owns.
func (e *Editor[T]) Section() Section { return e.section }

// Items returns a copy of the entries in display order.
func (e *Editor[T]) Items() []T {
	return append([]T{}, e.items...)
}

// IDs returns the entry ids in display order.
func (e *Editor[T]) IDs() []string {
	ids := make([]string, len(e.items))
	for i, it := range e.items {
		ids[i] = it.EntryID()
	}
	return ids
}

// AddBlank is Add for callers that only need the new id.
func (e *Editor[T]) AddBlank() string {
	return e.Add().EntryID()
}

// Len returns the number of entries.
func (e *Editor[T]) Len() int { return len(e.items) }

// Errors returns the editor's field errors.
func (e *Editor[T]) Errors() *ErrorBag { return e.errors }

// Get returns the entry with id.
func (e *Editor[T]) Get(id string) (T, bool) {
	if i := e.index(id); i >= 0 {
		return e.items[i], true
	}
	var zero T
	return zero, false
}

// FieldValue returns field of the entry with id.
func (e *Editor[T]) FieldValue(id, field string) (string, bool) {
	it, ok := e.Get(id)
	if !ok {
		return "", false
	}
	return it.Field(field), true
}

// Add appends a blank entry with a fresh id and returns it.
func (e *Editor[T]) Add() T {
	var zero T
	entry := zero.WithEntryID(e.newID())
	next := make([]T, len(e.items), len(e.items)+1)
	copy(next, e.items)
	e.commit(append(next, entry))
	return entry
}

// Remove drops the entry with id and clears only that entry's errors.
func (e *Editor[T]) Remove(id string) error {
	i := e.index(id)
	if i < 0 {
		return &EntryNotFoundError{Section: e.section, ID: id}
	}
	next := make([]T, 0, len(e.items)-1)
	next = append(next, e.items[:i]...)
	next = append(next, e.items[i+1:]...)
	e.errors.ClearEntry(id)
	e.commit(next)
	return nil
}

// Update sets field on the entry with id. The field's error clears as soon as
// its value changes; setting the same value is a no-op.
func (e *Editor[T]) Update(id, field, value string) error {
	i := e.index(id)
	if i < 0 {
		return &EntryNotFoundError{Section: e.section, ID: id}
	}
	if e.items[i].Field(field) == value {
		// Still reject unknown fields.
		if _, err := e.items[i].WithField(field, value); err != nil {
			return err
		}
		return nil
	}
	updated, err := e.items[i].WithField(field, value)
	if err != nil {
		return err
	}
	next := make([]T, len(e.items))
	copy(next, e.items)
	next[i] = updated
	e.errors.Clear(id, field)
	e.commit(next)
	return nil
}

// Move shifts the entry with id by delta positions, clamped to the list
// bounds. Ids are untouched.
func (e *Editor[T]) Move(id string, delta int) error {
	i := e.index(id)
	if i < 0 {
		return &EntryNotFoundError{Section: e.section, ID: id}
	}
	j := i + delta
	if j < 0 {
		j = 0
	}
	if j >= len(e.items) {
		j = len(e.items) - 1
	}
	if i == j {
		return nil
	}
	next := make([]T, 0, len(e.items))
	moved := e.items[i]
	for k, it := range e.items {
		if k != i {
			next = append(next, it)
		}
	}
	next = append(next[:j], append([]T{moved}, next[j:]...)...)
	e.commit(next)
	return nil
}

// Blur runs field validation for field on the entry with id and records the
// outcome in the error bag.
func (e *Editor[T]) Blur(id, field string) error {
	i := e.index(id)
	if i < 0 {
		return &EntryNotFoundError{Section: e.section, ID: id}
	}
	entry := e.items[i]
	for f, msg := range validateField(e.section, field, entry.Field) {
		e.errors.Set(id, f, msg)
	}
	return nil
}

// BlurAll validates every field with a rule on every entry.
func (e *Editor[T]) BlurAll() {
	rs := rulesFor[e.section]
	for _, it := range e.items {
		for f := range rs.fields {
			_ = e.Blur(it.EntryID(), f)
		}
	}
}

func (e *Editor[T]) index(id string) int {
	for i, it := range e.items {
		if it.EntryID() == id {
			return i
		}
	}
	return -1
}

func (e *Editor[T]) commit(next []T) {
	e.items = next
	e.onChange(append([]T{}, next...))
}
