package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContact_AssignsIDAndCopiesFields(t *testing.T) {
	fields := map[string]string{
		FieldFirstName: "Jane",
		FieldLastName:  "Doe",
	}

	c := NewContact(fields)
	require.NotEmpty(t, c.ID)

	// Mutating the caller's map must not affect the contact.
	fields[FieldFirstName] = "Changed"
	assert.Equal(t, "Jane", c.Get(FieldFirstName))

	other := NewContact(fields)
	assert.NotEqual(t, c.ID, other.ID)
}

func TestContact_Clone(t *testing.T) {
	c := NewContact(map[string]string{FieldFirstName: "Jane"})
	c.AddReason("Duplicate contact")
	c.SimilarityReason = "Different phone"

	clone := c.Clone()
	assert.Equal(t, c.ID, clone.ID)
	assert.Equal(t, c.Fields, clone.Fields)
	assert.Equal(t, c.Reasons, clone.Reasons)
	assert.Equal(t, c.SimilarityReason, clone.SimilarityReason)

	clone.Set(FieldFirstName, "Janet")
	clone.AddReason("Invalid email format")
	assert.Equal(t, "Jane", c.Get(FieldFirstName))
	assert.Len(t, c.Reasons, 1)
}

func TestContact_Keys(t *testing.T) {
	tests := []struct {
		name      string
		fields    map[string]string
		wantName  string
		wantDedup string
	}{
		{
			name: "full record",
			fields: map[string]string{
				FieldFirstName: "Jane",
				FieldLastName:  "Doe",
				FieldEmail:     "jane@x.com",
				FieldMobile:    "(123) 456-7890",
			},
			wantName:  "Jane|Doe",
			wantDedup: "Jane|Doe|jane@x.com|(123) 456-7890",
		},
		{
			name: "missing phone stays empty in key",
			fields: map[string]string{
				FieldFirstName: "Jane",
				FieldLastName:  "Doe",
				FieldEmail:     "jane@x.com",
			},
			wantName:  "Jane|Doe",
			wantDedup: "Jane|Doe|jane@x.com|",
		},
		{
			name:      "empty record defaults to sentinels",
			fields:    map[string]string{},
			wantName:  "N/A|N/A",
			wantDedup: "N/A|N/A|N/A|",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewContact(tt.fields)
			assert.Equal(t, tt.wantName, c.NameKey())
			assert.Equal(t, tt.wantDedup, c.DedupKey())
		})
	}
}

func TestContact_AddReason_SkipsDuplicates(t *testing.T) {
	c := NewContact(nil)
	c.AddReason("Duplicate contact")
	c.AddReason("Duplicate contact")
	c.AddReason("Invalid email format")

	assert.Equal(t, []string{"Duplicate contact", "Invalid email format"}, c.Reasons)
}

func TestContact_DisplayName(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		want   string
	}{
		{"both names", map[string]string{FieldFirstName: "Jane", FieldLastName: "Doe"}, "Jane Doe"},
		{"first only", map[string]string{FieldFirstName: "Jane"}, "Jane"},
		{"last only", map[string]string{FieldLastName: "Doe"}, "Doe"},
		{"email fallback", map[string]string{FieldEmail: "jane@x.com"}, "jane@x.com"},
		{"nothing", map[string]string{}, "(unnamed contact)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewContact(tt.fields).DisplayName())
		})
	}
}

func TestSummary_Categories(t *testing.T) {
	s := Summary{}
	assert.True(t, s.IsEmpty())

	c := NewContact(nil)
	s.SetCategory(CategorySimilar, []*Contact{c})
	assert.Equal(t, 1, s.Total())
	assert.False(t, s.IsEmpty())
	assert.Equal(t, []*Contact{c}, s.Category(CategorySimilar))
	assert.Nil(t, s.Category("nonsense"))
}
