// Package review holds the mutable state of a contact cleanup session and
// the transitions a user applies while inspecting the cleaning summary:
// delete, restore, resolve, flag, merge and edit. Every transition goes
// through a single entry point and keeps the active list, the anomaly
// categories, the flag set and the deleted list consistent with each other.
package review

import (
	"fmt"
	"strings"

	"github.com/Veraticus/the-rolodex-must-flow/internal/classify"
	"github.com/Veraticus/the-rolodex-must-flow/internal/common"
	"github.com/Veraticus/the-rolodex-must-flow/internal/model"
	"github.com/google/uuid"
)

// Session is the review state machine. It is not safe for concurrent use;
// the application is single-threaded and every transition runs to completion
// before the next event is processed.
type Session struct {
	Active  []*model.Contact
	Summary model.Summary
	Deleted []*model.Contact

	flagged map[string]bool

	category string
	index    int
}

// NewSession seeds a session from a cleaning run.
func NewSession(result classify.Result) *Session {
	return &Session{
		Active:   result.Cleaned,
		Summary:  result.Summary,
		flagged:  make(map[string]bool),
		category: model.CategoryDuplicates,
	}
}

// Categories returns the category names the session cycles through,
// including the deleted pseudo-category.
func (s *Session) Categories() []string {
	return append(append([]string(nil), model.SummaryCategories...), model.CategoryDeleted)
}

// CategoryContacts returns the records in a named category. The deleted
// pseudo-category is backed by the deleted list.
func (s *Session) CategoryContacts(name string) []*model.Contact {
	if name == model.CategoryDeleted {
		return s.Deleted
	}
	return s.Summary.Category(name)
}

// SelectCategory moves the cursor to the start of a category.
func (s *Session) SelectCategory(name string) error {
	if !isKnownCategory(name) {
		return fmt.Errorf("%w: %s", common.ErrUnknownCategory, name)
	}
	s.category = name
	s.index = 0
	return nil
}

func isKnownCategory(name string) bool {
	for _, c := range model.SummaryCategories {
		if c == name {
			return true
		}
	}
	return name == model.CategoryDeleted
}

// Category returns the currently selected category name.
func (s *Session) Category() string {
	return s.category
}

// Index returns the cursor position within the current category.
func (s *Session) Index() int {
	return s.index
}

// Current returns the record under the cursor, or nil when the current
// category is empty.
func (s *Session) Current() *model.Contact {
	contacts := s.CategoryContacts(s.category)
	if len(contacts) == 0 {
		return nil
	}
	if s.index >= len(contacts) {
		s.index = len(contacts) - 1
	}
	return contacts[s.index]
}

// Next advances the cursor, clamping at the end of the category.
func (s *Session) Next() {
	if contacts := s.CategoryContacts(s.category); s.index < len(contacts)-1 {
		s.index++
	}
}

// Previous moves the cursor back, clamping at the start of the category.
func (s *Session) Previous() {
	if s.index > 0 {
		s.index--
	}
}

// clampCursor pulls the cursor back inside the current category after a
// record was removed.
func (s *Session) clampCursor() {
	n := len(s.CategoryContacts(s.category))
	if s.index > n-1 {
		s.index = n - 1
	}
	if s.index < 0 {
		s.index = 0
	}
}

// Delete removes a contact from the active list, from every summary
// category and from the flag set, and appends it to the deleted list.
// Deleting an already-deleted contact is a no-op.
func (s *Session) Delete(c *model.Contact) {
	if c == nil || s.isDeleted(c.ID) {
		return
	}

	s.Active = removeByID(s.Active, c.ID)
	s.removeFromSummary(c.ID)
	delete(s.flagged, c.ID)
	s.Deleted = append(s.Deleted, c)
	s.clampCursor()
}

// Restore moves a contact from the deleted list back to the active list.
// Restoring a contact that is not deleted is a no-op, so an already-active
// record can never be added twice.
func (s *Session) Restore(c *model.Contact) {
	if c == nil || !s.isDeleted(c.ID) {
		return
	}

	s.Deleted = removeByID(s.Deleted, c.ID)
	s.Active = append(s.Active, c)
	s.clampCursor()
}

// Resolve acknowledges a contact's anomalies without deleting it: the record
// is cleared from every summary category and from the flag set but stays in
// the active list.
func (s *Session) Resolve(c *model.Contact) {
	if c == nil {
		return
	}

	s.removeFromSummary(c.ID)
	delete(s.flagged, c.ID)
	s.clampCursor()
}

// SetFlagged adds or removes the user flag on a contact. Flagging is an
// orthogonal tag: it never changes category membership.
func (s *Session) SetFlagged(c *model.Contact, flagged bool) {
	if c == nil {
		return
	}
	if flagged {
		s.flagged[c.ID] = true
	} else {
		delete(s.flagged, c.ID)
	}
}

// IsFlagged reports whether a contact carries the user flag.
func (s *Session) IsFlagged(c *model.Contact) bool {
	return c != nil && s.flagged[c.ID]
}

// FlaggedCount returns the number of flagged contacts.
func (s *Session) FlaggedCount() int {
	return len(s.flagged)
}

// MergeSimilar merges the group of similar contacts sharing the current
// record's name key into one synthetic contact. The group must have at least
// two members or the session is left unchanged. The merged contact gets a
// fresh ID, replaces the group in the active list, and the group leaves the
// similar category.
func (s *Session) MergeSimilar() (*model.Contact, error) {
	current := s.Current()
	if current == nil {
		return nil, common.ErrNotEnoughSimilar
	}

	nameKey := current.NameKey()
	var group []*model.Contact
	for _, c := range s.Summary.Similar {
		if c.NameKey() == nameKey {
			group = append(group, c)
		}
	}
	if len(group) < 2 {
		return nil, common.ErrNotEnoughSimilar
	}

	merged := mergeContacts(group)

	for _, member := range group {
		s.removeFromSummary(member.ID)
		s.Active = removeByID(s.Active, member.ID)
		delete(s.flagged, member.ID)
	}
	s.Active = append(s.Active, merged)
	s.clampCursor()

	return merged, nil
}

// ApplyEdit replaces a contact everywhere it is referenced (active list,
// summary categories and deleted list) keeping the original ID. The caller
// is responsible for normalizing the edited fields first.
func (s *Session) ApplyEdit(id string, edited *model.Contact) error {
	if edited == nil {
		return common.ErrNotFound
	}

	replacement := edited.Clone()
	replacement.ID = id

	found := replaceByID(s.Active, id, replacement)
	for _, name := range model.SummaryCategories {
		found = replaceByID(s.Summary.Category(name), id, replacement) || found
	}
	found = replaceByID(s.Deleted, id, replacement) || found

	if !found {
		return fmt.Errorf("%w: %s", common.ErrNotFound, id)
	}
	return nil
}

// RemainingTotal counts records still awaiting review across all categories.
func (s *Session) RemainingTotal() int {
	return s.Summary.Total()
}

// Done reports whether every anomaly category is empty.
func (s *Session) Done() bool {
	return s.Summary.IsEmpty()
}

func (s *Session) isDeleted(id string) bool {
	for _, c := range s.Deleted {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (s *Session) removeFromSummary(id string) {
	for _, name := range model.SummaryCategories {
		s.Summary.SetCategory(name, removeByID(s.Summary.Category(name), id))
	}
}

func removeByID(contacts []*model.Contact, id string) []*model.Contact {
	out := contacts[:0]
	for _, c := range contacts {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

func replaceByID(contacts []*model.Contact, id string, replacement *model.Contact) bool {
	found := false
	for i, c := range contacts {
		if c.ID == id {
			contacts[i] = replacement
			found = true
		}
	}
	return found
}

// mergeContacts folds a group of contacts into one synthetic record. For
// each field the first non-empty, non-"N/A" value wins; phone and email
// fields with conflicting values are concatenated with ", " instead.
func mergeContacts(group []*model.Contact) *model.Contact {
	merged := group[0].Clone()
	merged.ID = uuid.NewString()
	merged.Reasons = nil
	merged.SimilarityReason = ""

	for _, other := range group[1:] {
		for field, value := range other.Fields {
			if !usableValue(value) {
				continue
			}
			existing := merged.Fields[field]
			switch {
			case !usableValue(existing):
				merged.Set(field, value)
			case isMultiValueField(field) && !containsValue(existing, value):
				merged.Set(field, existing+", "+value)
			}
		}
	}

	return merged
}

func usableValue(v string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed != "" && !strings.EqualFold(trimmed, model.Missing)
}

// isMultiValueField reports whether conflicting values should accumulate
// rather than be overwritten. Applies to phone and email columns.
func isMultiValueField(field string) bool {
	if field == model.FieldEmail {
		return true
	}
	lower := strings.ToLower(field)
	return strings.Contains(lower, "phone") || strings.Contains(lower, "e-mail")
}

func containsValue(existing, value string) bool {
	for _, part := range strings.Split(existing, ",") {
		if strings.TrimSpace(part) == strings.TrimSpace(value) {
			return true
		}
	}
	return false
}
