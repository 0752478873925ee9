package enhance

import "github.com/jonathan/cv-builder/internal/types"

type identified[T any] interface {
	EntryID() string
	WithEntryID(id string) T
}

// remint gives a fresh id to every entry whose id is empty or already seen.
func remint[T identified[T]](items []T, seen map[string]bool, newID func() string) int {
	n := 0
	for i, it := range items {
		id := it.EntryID()
		if id == "" || seen[id] {
			for id = newID(); seen[id]; id = newID() {
			}
			items[i] = it.WithEntryID(id)
			n++
		}
		seen[id] = true
	}
	return n
}

// ensureIDs restores the unique-id invariant across every section of doc.
func ensureIDs(doc *types.CVData, newID func() string) int {
	seen := make(map[string]bool)
	return remint(doc.Education, seen, newID) +
		remint(doc.Experience, seen, newID) +
		remint(doc.Skills, seen, newID) +
		remint(doc.Projects, seen, newID) +
		remint(doc.Certifications, seen, newID) +
		remint(doc.Languages, seen, newID) +
		remint(doc.References, seen, newID)
}
