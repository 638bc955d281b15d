package review

import (
	"sort"
	"strings"

	"github.com/Veraticus/the-rolodex-must-flow/internal/model"
)

// Search returns the active contacts whose first name, last name or mobile
// phone contains the query, case-insensitively. An empty query returns the
// whole active list.
func (s *Session) Search(query string) []*model.Contact {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.Active
	}

	var out []*model.Contact
	for _, c := range s.Active {
		if strings.Contains(strings.ToLower(c.Get(model.FieldFirstName)), query) ||
			strings.Contains(strings.ToLower(c.Get(model.FieldLastName)), query) ||
			strings.Contains(strings.ToLower(c.Get(model.FieldMobile)), query) {
			out = append(out, c)
		}
	}
	return out
}

// WithPhone returns the active contacts that have at least one non-blank
// phone field.
func (s *Session) WithPhone() []*model.Contact {
	var out []*model.Contact
	for _, c := range s.Active {
		for _, field := range model.PhoneFields {
			if strings.TrimSpace(c.Get(field)) != "" {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// SortedAlphabetical returns a copy of the active list sorted by last then
// first name, case-insensitively. The session's own ordering is never
// mutated; it drives duplicate tie-breaks on re-classification.
func (s *Session) SortedAlphabetical() []*model.Contact {
	out := append([]*model.Contact(nil), s.Active...)
	sort.SliceStable(out, func(i, j int) bool {
		li := strings.ToLower(out[i].Get(model.FieldLastName))
		lj := strings.ToLower(out[j].Get(model.FieldLastName))
		if li != lj {
			return li < lj
		}
		return strings.ToLower(out[i].Get(model.FieldFirstName)) < strings.ToLower(out[j].Get(model.FieldFirstName))
	})
	return out
}
