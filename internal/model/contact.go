// Package model defines the core data types for contact cleaning.
package model

import (
	"strings"

	"github.com/google/uuid"
)

// Missing is the sentinel value used for absent name/email/phone fields.
const Missing = "N/A"

// Well-known import column names. The field vocabulary is open; these are
// the columns the cleaning engine actually interprets.
const (
	FieldFirstName = "First Name"
	FieldLastName  = "Last Name"
	FieldEmail     = "E-mail Address"
	FieldCompany   = "Company"
	FieldMobile    = "Mobile Phone"
)

// PhoneFields lists every recognized phone column, in schema order.
// FieldMobile is the primary phone used for duplicate keys.
var PhoneFields = []string{
	FieldMobile,
	"Home Phone",
	"Home Phone 2",
	"Business Phone",
	"Business Phone 2",
	"Company Main Phone",
	"Car Phone",
	"Other Phone",
	"Callback",
	"Primary Phone",
	"Radio Phone",
}

// Contact is a single contact record: an open set of string fields plus the
// anomaly annotations the cleaning engine attaches. Records are identified by
// a generated ID rather than field equality, so two contacts that happen to
// share every visible field remain distinct.
type Contact struct {
	ID               string
	Fields           map[string]string
	Reasons          []string
	SimilarityReason string
}

// NewContact creates a contact from raw imported fields, assigning a fresh ID.
// The field map is copied; callers may reuse theirs.
func NewContact(fields map[string]string) *Contact {
	c := &Contact{
		ID:     uuid.NewString(),
		Fields: make(map[string]string, len(fields)),
	}
	for k, v := range fields {
		c.Fields[k] = v
	}
	return c
}

// Clone returns a deep copy of the contact, keeping the same ID.
func (c *Contact) Clone() *Contact {
	clone := &Contact{
		ID:               c.ID,
		Fields:           make(map[string]string, len(c.Fields)),
		SimilarityReason: c.SimilarityReason,
	}
	for k, v := range c.Fields {
		clone.Fields[k] = v
	}
	if len(c.Reasons) > 0 {
		clone.Reasons = append([]string(nil), c.Reasons...)
	}
	return clone
}

// Get returns the value of a field, or "" if absent.
func (c *Contact) Get(field string) string {
	return c.Fields[field]
}

// Set overwrites a field value.
func (c *Contact) Set(field, value string) {
	if c.Fields == nil {
		c.Fields = make(map[string]string)
	}
	c.Fields[field] = value
}

// FirstName returns the first name, or Missing when blank.
func (c *Contact) FirstName() string {
	return fieldOrMissing(c.Fields[FieldFirstName])
}

// LastName returns the last name, or Missing when blank.
func (c *Contact) LastName() string {
	return fieldOrMissing(c.Fields[FieldLastName])
}

// Email returns the e-mail address, or Missing when blank.
func (c *Contact) Email() string {
	return fieldOrMissing(c.Fields[FieldEmail])
}

// PrimaryPhone returns the mobile phone used for duplicate detection.
// Unlike the name/email accessors it defaults to "", so an absent primary
// phone does not make two otherwise-distinct records collide on "N/A".
func (c *Contact) PrimaryPhone() string {
	return strings.TrimSpace(c.Fields[FieldMobile])
}

// NameKey is the loose similarity key: normalized first and last name only.
func (c *Contact) NameKey() string {
	return c.FirstName() + "|" + c.LastName()
}

// DedupKey is the exact duplicate key over name, email and primary phone.
func (c *Contact) DedupKey() string {
	return c.NameKey() + "|" + c.Email() + "|" + c.PrimaryPhone()
}

// AddReason appends a human-readable anomaly reason, skipping duplicates.
func (c *Contact) AddReason(reason string) {
	for _, r := range c.Reasons {
		if r == reason {
			return
		}
	}
	c.Reasons = append(c.Reasons, reason)
}

// HasCompleteName reports whether both name parts are present.
func (c *Contact) HasCompleteName() bool {
	return c.FirstName() != Missing && c.LastName() != Missing
}

// DisplayName returns a human-friendly label for lists and log lines.
func (c *Contact) DisplayName() string {
	first, last := c.FirstName(), c.LastName()
	switch {
	case first != Missing && last != Missing:
		return first + " " + last
	case first != Missing:
		return first
	case last != Missing:
		return last
	case c.Email() != Missing:
		return c.Email()
	default:
		return "(unnamed contact)"
	}
}

func fieldOrMissing(v string) string {
	if strings.TrimSpace(v) == "" {
		return Missing
	}
	return v
}
