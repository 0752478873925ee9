// Package sections implements the per-section editors of the CV wizard.
//
// Each editor owns one slice of the document (or, for the profile, the
// singleton record), mints entry ids, applies field updates copy-on-write
// and runs field validation when a field loses focus.
package sections

import "fmt"

// Section names one of the eight sub-collections of a CV.
type Section string

const (
	Personal       Section = "personal"
	Education      Section = "education"
	Experience     Section = "experience"
	Skills         Section = "skills"
	Projects       Section = "projects"
	Certifications Section = "certifications"
	Languages      Section = "languages"
	References     Section = "references"
)

// All lists the sections in wizard order.
var All = []Section{Personal, Education, Experience, Skills, Projects, Certifications, Languages, References}

// SeedsOnMount reports whether an editor mounted with an empty list adds one
// blank entry. Projects and references show an "add your first entry"
// affordance instead.
func (s Section) SeedsOnMount() bool {
	switch s {
	case Education, Experience, Skills, Certifications, Languages:
		return true
	}
	return false
}

// EmptyHint is the affordance shown for a section with no entries.
func (s Section) EmptyHint() string {
	switch s {
	case Projects:
		return "No projects yet. Add your first project."
	case References:
		return "No references yet. Add your first reference."
	}
	return fmt.Sprintf("No %s entries yet.", s)
}

// Entry is the contract every list entry type satisfies.
type Entry[T any] interface {
	EntryID() string
	WithEntryID(id string) T
	Field(name string) string
	WithField(field, value string) (T, error)
}

// List is the type-independent surface of Editor, for callers that dispatch
// on Section at runtime.
type List interface {
	Section() Section
	IDs() []string
	Len() int
	AddBlank() string
	Remove(id string) error
	Update(id, field, value string) error
	Move(id string, delta int) error
	Blur(id, field string) error
	BlurAll()
	Errors() *ErrorBag
	FieldValue(id, field string) (string, bool)
}
