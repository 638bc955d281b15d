// Package normalize canonicalizes individual contact field values: name
// casing, email lowercasing, phone formatting and company-based inference
// for missing names. Normalization is total: unparseable input passes
// through unchanged and never produces an error.
package normalize

import (
	"strings"

	"github.com/Veraticus/the-rolodex-must-flow/internal/model"
)

// PhoneStyle selects the phone normalization strategy.
type PhoneStyle string

const (
	// StyleLibphone parses numbers with the libphonenumber port and formats
	// valid US/CA numbers as "+1 (NNN) NNN-NNNN". This is the default.
	StyleLibphone PhoneStyle = "libphone"
	// StyleBasic strips non-digits and formats exactly-10-digit numbers as
	// "(NNN) NNN-NNNN", passing everything else through.
	StyleBasic PhoneStyle = "basic"
)

// Config holds normalizer options.
type Config struct {
	Style  PhoneStyle
	Region string
}

// DefaultConfig returns the default normalizer configuration.
func DefaultConfig() Config {
	return Config{
		Style:  StyleLibphone,
		Region: "US",
	}
}

// Normalizer canonicalizes contact field values.
type Normalizer struct {
	config Config
}

// New creates a normalizer with the given configuration, filling in defaults
// for zero values.
func New(config Config) *Normalizer {
	if config.Style == "" {
		config.Style = StyleLibphone
	}
	if config.Region == "" {
		config.Region = "US"
	}
	return &Normalizer{config: config}
}

// Email lower-cases and trims an email address. The "N/A" sentinel passes
// through unchanged.
func (n *Normalizer) Email(raw string) string {
	if strings.EqualFold(raw, model.Missing) {
		return raw
	}
	return strings.ToLower(strings.TrimSpace(raw))
}

// Name capitalizes the first character and lower-cases the rest. The "N/A"
// sentinel passes through unchanged. Multi-word and hyphenated names are not
// treated specially.
func (n *Normalizer) Name(raw string) string {
	if strings.EqualFold(raw, model.Missing) {
		return raw
	}
	if raw == "" {
		return raw
	}
	return strings.ToUpper(raw[:1]) + strings.ToLower(raw[1:])
}

// ImputeMissingName fills a missing first or last name from the Company field
// when one is present. Returns a clone; the input contact is not modified.
func (n *Normalizer) ImputeMissingName(c *model.Contact) *model.Contact {
	out := c.Clone()

	company := strings.TrimSpace(out.Get(model.FieldCompany))
	if company == "" || strings.EqualFold(company, model.Missing) {
		return out
	}

	if out.FirstName() == model.Missing {
		out.Set(model.FieldFirstName, company)
	}
	if out.LastName() == model.Missing {
		out.Set(model.FieldLastName, company)
	}

	return out
}
