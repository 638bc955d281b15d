// Package classify implements the contact cleaning engine: a single
// order-preserving pass that canonicalizes every record and partitions
// anomalies into duplicate, invalid, incomplete and similar categories.
package classify

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Veraticus/the-rolodex-must-flow/internal/model"
	"github.com/Veraticus/the-rolodex-must-flow/internal/normalize"
)

// Anomaly reasons attached to cleaned contacts.
const (
	ReasonInvalidEmail = "Invalid email format"
	ReasonMissingName  = "Missing first or last name"
	ReasonDuplicate    = "Duplicate contact"
)

// Similarity reasons describing how two same-name contacts differ.
const (
	SimilarDifferentPhone      = "Different phone"
	SimilarDifferentEmail      = "Different email"
	SimilarDifferentPhoneEmail = "Different phone and email"
)

// Result is the output of a cleaning run: the surviving contacts plus the
// categorized anomaly summary. Duplicate and incomplete records are excluded
// from Cleaned. Invalid and similar records are the same references that
// appear in Cleaned, except an invalid record that is also incomplete, which
// is excluded along with it.
type Result struct {
	Cleaned []*model.Contact
	Summary model.Summary
}

// Engine classifies raw contacts using a field normalizer.
type Engine struct {
	norm *normalize.Normalizer
}

// New creates a classification engine.
func New(norm *normalize.Normalizer) *Engine {
	return &Engine{norm: norm}
}

// Classify runs the cleaning pass over raw contacts. Input order determines
// which record wins duplicate and similarity tie-breaks, so the result is
// deterministic for a stable input. The inputs themselves are not mutated.
func (e *Engine) Classify(ctx context.Context, raw []*model.Contact) Result {
	var result Result

	// First-seen records by exact duplicate key and by loose name key.
	seen := make(map[string]*model.Contact, len(raw))
	similarSeen := make(map[string]*model.Contact, len(raw))
	// Tracks which contacts are already in the similar category, so the
	// baseline record is not added twice when a third match arrives.
	inSimilar := make(map[string]bool)

	for _, rawContact := range raw {
		if ctx.Err() != nil {
			break
		}

		contact := e.cleanFields(rawContact)

		// A malformed email tags the record invalid but does not stop
		// duplicate or similarity processing.
		if email := contact.Email(); email != model.Missing && !strings.Contains(email, "@") {
			contact.AddReason(ReasonInvalidEmail)
			result.Summary.Invalid = append(result.Summary.Invalid, contact)
		}

		// Records without a usable name are terminal: they are reported as
		// incomplete and take no part in duplicate or similarity detection.
		if !contact.HasCompleteName() {
			contact.AddReason(ReasonMissingName)
			result.Summary.Incomplete = append(result.Summary.Incomplete, contact)
			continue
		}

		key := contact.DedupKey()
		if _, dup := seen[key]; dup {
			contact.AddReason(ReasonDuplicate)
			result.Summary.Duplicates = append(result.Summary.Duplicates, contact)
			continue
		}
		seen[key] = contact

		nameKey := contact.NameKey()
		if prev, ok := similarSeen[nameKey]; ok {
			if reason := similarityReason(prev, contact); reason != "" {
				contact.SimilarityReason = reason
				result.Summary.Similar = append(result.Summary.Similar, contact)
				if !inSimilar[prev.ID] {
					inSimilar[prev.ID] = true
					if prev.SimilarityReason == "" {
						prev.SimilarityReason = reason
					}
					result.Summary.Similar = append(result.Summary.Similar, prev)
				}
			}
		} else {
			similarSeen[nameKey] = contact
		}

		result.Cleaned = append(result.Cleaned, contact)
	}

	slog.Info("Classified contacts",
		"total", len(raw),
		"cleaned", len(result.Cleaned),
		"duplicates", len(result.Summary.Duplicates),
		"invalid", len(result.Summary.Invalid),
		"incomplete", len(result.Summary.Incomplete),
		"similar", len(result.Summary.Similar))

	return result
}

// cleanFields applies name imputation and field normalization, returning a
// new contact.
func (e *Engine) cleanFields(raw *model.Contact) *model.Contact {
	contact := e.norm.ImputeMissingName(raw)

	if v, ok := contact.Fields[model.FieldFirstName]; ok {
		contact.Set(model.FieldFirstName, e.norm.Name(v))
	}
	if v, ok := contact.Fields[model.FieldLastName]; ok {
		contact.Set(model.FieldLastName, e.norm.Name(v))
	}
	if v, ok := contact.Fields[model.FieldEmail]; ok {
		contact.Set(model.FieldEmail, e.norm.Email(v))
	}
	for _, field := range model.PhoneFields {
		if v, ok := contact.Fields[field]; ok && strings.TrimSpace(v) != "" {
			contact.Set(field, e.norm.Phone(v))
		}
	}

	return contact
}

// similarityReason describes how two contacts sharing a name key differ,
// or "" when phone and email both match.
func similarityReason(prev, cur *model.Contact) string {
	phoneDiffers := prev.PrimaryPhone() != cur.PrimaryPhone()
	emailDiffers := prev.Email() != cur.Email()

	switch {
	case phoneDiffers && emailDiffers:
		return SimilarDifferentPhoneEmail
	case phoneDiffers:
		return SimilarDifferentPhone
	case emailDiffers:
		return SimilarDifferentEmail
	default:
		return ""
	}
}
