package model

// Category names used by the review workflow. Deleted is a pseudo-category:
// it lives on the session rather than the summary, but the review UI cycles
// through it like the others.
const (
	CategoryDuplicates = "duplicates"
	CategoryInvalid    = "invalid"
	CategoryIncomplete = "incomplete"
	CategorySimilar    = "similar"
	CategoryDeleted    = "deleted"
)

// SummaryCategories lists the anomaly categories in display order.
var SummaryCategories = []string{
	CategoryDuplicates,
	CategoryInvalid,
	CategoryIncomplete,
	CategorySimilar,
}

// Summary is the categorized output of a cleaning run. The categories are
// independent tags, not a partition: one contact may appear in several.
type Summary struct {
	Duplicates []*Contact
	Invalid    []*Contact
	Incomplete []*Contact
	Similar    []*Contact
}

// Category returns the slice for a named category, or nil for unknown names.
func (s *Summary) Category(name string) []*Contact {
	switch name {
	case CategoryDuplicates:
		return s.Duplicates
	case CategoryInvalid:
		return s.Invalid
	case CategoryIncomplete:
		return s.Incomplete
	case CategorySimilar:
		return s.Similar
	default:
		return nil
	}
}

// SetCategory replaces the slice for a named category.
func (s *Summary) SetCategory(name string, contacts []*Contact) {
	switch name {
	case CategoryDuplicates:
		s.Duplicates = contacts
	case CategoryInvalid:
		s.Invalid = contacts
	case CategoryIncomplete:
		s.Incomplete = contacts
	case CategorySimilar:
		s.Similar = contacts
	}
}

// Total counts category memberships. A contact tagged twice counts twice.
func (s *Summary) Total() int {
	return len(s.Duplicates) + len(s.Invalid) + len(s.Incomplete) + len(s.Similar)
}

// IsEmpty reports whether every category is empty.
func (s *Summary) IsEmpty() bool {
	return s.Total() == 0
}
