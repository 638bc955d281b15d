package contactio

import (
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/the-rolodex-must-flow/internal/common"
	"github.com/Veraticus/the-rolodex-must-flow/internal/model"
	"github.com/emersion/go-vcard"
)

// emailColumns and phone overflow columns used when a card carries multiple
// values for the same property.
var emailColumns = []string{
	model.FieldEmail,
	"E-mail 2 Address",
	"E-mail 3 Address",
}

// ReadVCard parses a sequence of vCard blocks into contacts. The structured
// N property is preferred for names; FN is split on its last space as a
// fallback. Extra TEL and EMAIL lines spill into the secondary columns.
func ReadVCard(r io.Reader) ([]*model.Contact, error) {
	dec := vcard.NewDecoder(r)

	var contacts []*model.Contact
	for {
		card, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrMalformedFile, err)
		}
		contacts = append(contacts, cardToContact(card))
	}

	if len(contacts) == 0 {
		return nil, common.ErrEmptyFile
	}
	return contacts, nil
}

func cardToContact(card vcard.Card) *model.Contact {
	fields := make(map[string]string)

	first, last := cardNames(card)
	if first != "" {
		fields[model.FieldFirstName] = first
	}
	if last != "" {
		fields[model.FieldLastName] = last
	}

	for i, email := range card.Values(vcard.FieldEmail) {
		if i >= len(emailColumns) {
			break
		}
		fields[emailColumns[i]] = email
	}

	for i, tel := range card.Values(vcard.FieldTelephone) {
		if i >= len(model.PhoneFields) {
			break
		}
		fields[model.PhoneFields[i]] = tel
	}

	if org := card.PreferredValue(vcard.FieldOrganization); org != "" {
		// ORG is semicolon-structured; the first component is the company.
		fields[model.FieldCompany] = strings.Split(org, ";")[0]
	}

	return model.NewContact(fields)
}

// cardNames extracts first and last name from N, falling back to splitting
// FN on its last space.
func cardNames(card vcard.Card) (first, last string) {
	if name := card.Name(); name != nil {
		return strings.TrimSpace(name.GivenName), strings.TrimSpace(name.FamilyName)
	}

	fn := strings.TrimSpace(card.PreferredValue(vcard.FieldFormattedName))
	if fn == "" {
		return "", ""
	}
	if idx := strings.LastIndex(fn, " "); idx > 0 {
		return fn[:idx], fn[idx+1:]
	}
	return fn, ""
}

// WriteVCard serializes contacts as vCard 3.0 blocks with FN, N, TEL, EMAIL
// and ORG properties. Multi-valued phone and email columns become multiple
// TEL/EMAIL lines.
func WriteVCard(w io.Writer, contacts []*model.Contact) error {
	enc := vcard.NewEncoder(w)

	for _, c := range contacts {
		card := contactToCard(c)
		if err := enc.Encode(card); err != nil {
			return fmt.Errorf("failed to encode vCard for %s: %w", c.DisplayName(), err)
		}
	}
	return nil
}

func contactToCard(c *model.Contact) vcard.Card {
	card := make(vcard.Card)
	card.SetValue(vcard.FieldVersion, "3.0")

	first, last := c.FirstName(), c.LastName()
	if first == model.Missing {
		first = ""
	}
	if last == model.Missing {
		last = ""
	}
	card.AddName(&vcard.Name{GivenName: first, FamilyName: last})
	card.SetValue(vcard.FieldFormattedName, strings.TrimSpace(first+" "+last))

	for _, col := range emailColumns {
		for _, value := range splitMultiValue(c.Get(col)) {
			card.AddValue(vcard.FieldEmail, value)
		}
	}
	for _, col := range model.PhoneFields {
		for _, value := range splitMultiValue(c.Get(col)) {
			card.AddValue(vcard.FieldTelephone, value)
		}
	}
	if company := strings.TrimSpace(c.Get(model.FieldCompany)); company != "" {
		card.SetValue(vcard.FieldOrganization, company)
	}

	return card
}

// splitMultiValue breaks a ", "-joined merged field back into its parts,
// dropping blanks and the "N/A" sentinel.
func splitMultiValue(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" || strings.EqualFold(part, model.Missing) {
			continue
		}
		out = append(out, part)
	}
	return out
}
