package model

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortProjects returns a new slice ordered by name, then by AddedAt.
//
// Names are compared case-insensitively with the root locale collation, so
// mixed scripts order consistently. Projects with equal names keep the
// earlier-added one first. The input is not modified.
func SortProjects(projects []Project) []Project {
	sorted := make([]Project, len(projects))
	copy(sorted, projects)
	if len(sorted) < 2 {
		return sorted
	}

	// A Collator keeps internal buffers and is not safe for concurrent use.
	col := collate.New(language.Und, collate.IgnoreCase)

	slices.SortStableFunc(sorted, func(a, b Project) int {
		if n := col.CompareString(strings.ToLower(a.Name), strings.ToLower(b.Name)); n != 0 {
			return n
		}
		return cmp.Compare(a.AddedAt, b.AddedAt)
	})
	return sorted
}
