package classify

import (
	"context"
	"testing"

	"github.com/Veraticus/the-rolodex-must-flow/internal/model"
	"github.com/Veraticus/the-rolodex-must-flow/internal/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// basicEngine uses the simple phone style so expected formats are easy to
// state in test tables.
func basicEngine() *Engine {
	return New(normalize.New(normalize.Config{Style: normalize.StyleBasic}))
}

func contact(fields map[string]string) *model.Contact {
	return model.NewContact(fields)
}

func TestClassify_EmptyInput(t *testing.T) {
	result := basicEngine().Classify(context.Background(), nil)

	assert.Empty(t, result.Cleaned)
	assert.True(t, result.Summary.IsEmpty())
}

func TestClassify_NormalizesFields(t *testing.T) {
	result := basicEngine().Classify(context.Background(), []*model.Contact{
		contact(map[string]string{
			model.FieldFirstName: "jane",
			model.FieldLastName:  "DOE",
			model.FieldEmail:     "  JANE@X.COM ",
			model.FieldMobile:    "1234567890",
			"Home Phone":         "9876543210",
		}),
	})

	require.Len(t, result.Cleaned, 1)
	c := result.Cleaned[0]
	assert.Equal(t, "Jane", c.Get(model.FieldFirstName))
	assert.Equal(t, "Doe", c.Get(model.FieldLastName))
	assert.Equal(t, "jane@x.com", c.Get(model.FieldEmail))
	assert.Equal(t, "(123) 456-7890", c.Get(model.FieldMobile))
	assert.Equal(t, "(987) 654-3210", c.Get("Home Phone"))
	assert.Empty(t, c.Reasons)
}

func TestClassify_Incomplete(t *testing.T) {
	tests := []struct {
		name           string
		fields         map[string]string
		wantIncomplete bool
	}{
		{
			name:           "missing first name",
			fields:         map[string]string{model.FieldLastName: "Doe"},
			wantIncomplete: true,
		},
		{
			name:           "missing last name",
			fields:         map[string]string{model.FieldFirstName: "Jane"},
			wantIncomplete: true,
		},
		{
			name:           "missing everything",
			fields:         map[string]string{},
			wantIncomplete: true,
		},
		{
			name: "company imputation saves the record",
			fields: map[string]string{
				model.FieldLastName: "Doe",
				model.FieldCompany:  "Acme Corp",
			},
			wantIncomplete: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := basicEngine().Classify(context.Background(), []*model.Contact{contact(tt.fields)})

			if tt.wantIncomplete {
				require.Len(t, result.Summary.Incomplete, 1)
				assert.Contains(t, result.Summary.Incomplete[0].Reasons, ReasonMissingName)
				assert.Empty(t, result.Cleaned, "incomplete records are excluded from cleaned")
			} else {
				assert.Empty(t, result.Summary.Incomplete)
				assert.Len(t, result.Cleaned, 1)
			}
		})
	}
}

func TestClassify_InvalidEmail(t *testing.T) {
	result := basicEngine().Classify(context.Background(), []*model.Contact{
		contact(map[string]string{
			model.FieldFirstName: "Jane",
			model.FieldLastName:  "Doe",
			model.FieldEmail:     "not-an-email",
		}),
	})

	require.Len(t, result.Summary.Invalid, 1)
	assert.Contains(t, result.Summary.Invalid[0].Reasons, ReasonInvalidEmail)

	// Invalid email does not remove the record from the cleaned output.
	require.Len(t, result.Cleaned, 1)
	assert.Same(t, result.Summary.Invalid[0], result.Cleaned[0])
}

func TestClassify_InvalidAndIncomplete(t *testing.T) {
	// A record can carry both tags; the missing name keeps it out of the
	// cleaned output even though invalid records normally stay in.
	result := basicEngine().Classify(context.Background(), []*model.Contact{
		contact(map[string]string{
			model.FieldFirstName: "Jane",
			model.FieldEmail:     "not-an-email",
		}),
	})

	require.Len(t, result.Summary.Invalid, 1)
	require.Len(t, result.Summary.Incomplete, 1)
	assert.Same(t, result.Summary.Invalid[0], result.Summary.Incomplete[0])
	assert.Empty(t, result.Cleaned)
}

func TestClassify_InvalidEmailSentinelAllowed(t *testing.T) {
	result := basicEngine().Classify(context.Background(), []*model.Contact{
		contact(map[string]string{
			model.FieldFirstName: "Jane",
			model.FieldLastName:  "Doe",
			model.FieldEmail:     "N/A",
		}),
	})

	assert.Empty(t, result.Summary.Invalid)
	assert.Len(t, result.Cleaned, 1)
}

func TestClassify_ExactDuplicates(t *testing.T) {
	// The documented example: same contact twice, differing only in email
	// case. The second is the duplicate; the first survives cleaned.
	result := basicEngine().Classify(context.Background(), []*model.Contact{
		contact(map[string]string{
			model.FieldFirstName: "Jane",
			model.FieldLastName:  "Doe",
			model.FieldEmail:     "JANE@X.COM",
			model.FieldMobile:    "1234567890",
		}),
		contact(map[string]string{
			model.FieldFirstName: "Jane",
			model.FieldLastName:  "Doe",
			model.FieldEmail:     "jane@x.com",
			model.FieldMobile:    "1234567890",
		}),
	})

	require.Len(t, result.Cleaned, 1)
	assert.Equal(t, "jane@x.com", result.Cleaned[0].Get(model.FieldEmail))
	assert.Equal(t, "(123) 456-7890", result.Cleaned[0].Get(model.FieldMobile))
	assert.Empty(t, result.Cleaned[0].Reasons)

	require.Len(t, result.Summary.Duplicates, 1)
	assert.Contains(t, result.Summary.Duplicates[0].Reasons, ReasonDuplicate)
	assert.Empty(t, result.Summary.Similar)
}

func TestClassify_Similar(t *testing.T) {
	tests := []struct {
		name       string
		first      map[string]string
		second     map[string]string
		wantReason string
	}{
		{
			name: "different phone",
			first: map[string]string{
				model.FieldFirstName: "Jon",
				model.FieldLastName:  "Snow",
				model.FieldEmail:     "jon@x.com",
				model.FieldMobile:    "1234567890",
			},
			second: map[string]string{
				model.FieldFirstName: "Jon",
				model.FieldLastName:  "Snow",
				model.FieldEmail:     "jon@x.com",
				model.FieldMobile:    "9876543210",
			},
			wantReason: SimilarDifferentPhone,
		},
		{
			name: "different email",
			first: map[string]string{
				model.FieldFirstName: "Jon",
				model.FieldLastName:  "Snow",
				model.FieldEmail:     "jon@x.com",
				model.FieldMobile:    "1234567890",
			},
			second: map[string]string{
				model.FieldFirstName: "Jon",
				model.FieldLastName:  "Snow",
				model.FieldEmail:     "jon@y.com",
				model.FieldMobile:    "1234567890",
			},
			wantReason: SimilarDifferentEmail,
		},
		{
			name: "different phone and email",
			first: map[string]string{
				model.FieldFirstName: "Jon",
				model.FieldLastName:  "Snow",
				model.FieldEmail:     "jon@x.com",
				model.FieldMobile:    "1234567890",
			},
			second: map[string]string{
				model.FieldFirstName: "Jon",
				model.FieldLastName:  "Snow",
				model.FieldEmail:     "jon@y.com",
				model.FieldMobile:    "9876543210",
			},
			wantReason: SimilarDifferentPhoneEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := basicEngine().Classify(context.Background(), []*model.Contact{
				contact(tt.first),
				contact(tt.second),
			})

			// Both sides of the pair are reported similar, and both stay
			// in the cleaned output.
			require.Len(t, result.Summary.Similar, 2)
			assert.Len(t, result.Cleaned, 2)
			for _, c := range result.Summary.Similar {
				assert.Equal(t, tt.wantReason, c.SimilarityReason)
			}
		})
	}
}

func TestClassify_SimilarBaselineNotDoubleAdded(t *testing.T) {
	// Three records sharing a name, each with a different phone: the
	// baseline must appear in similar exactly once.
	mk := func(phone string) *model.Contact {
		return contact(map[string]string{
			model.FieldFirstName: "Jon",
			model.FieldLastName:  "Snow",
			model.FieldMobile:    phone,
		})
	}

	result := basicEngine().Classify(context.Background(), []*model.Contact{
		mk("1234567890"), mk("2345678901"), mk("3456789012"),
	})

	assert.Len(t, result.Summary.Similar, 3)
	seen := make(map[string]int)
	for _, c := range result.Summary.Similar {
		seen[c.ID]++
	}
	for id, count := range seen {
		assert.Equal(t, 1, count, "contact %s appears more than once in similar", id)
	}
}

func TestClassify_OrderDeterminism(t *testing.T) {
	records := func() []*model.Contact {
		return []*model.Contact{
			contact(map[string]string{
				model.FieldFirstName: "Jane",
				model.FieldLastName:  "Doe",
				model.FieldEmail:     "jane@x.com",
			}),
			contact(map[string]string{
				model.FieldFirstName: "Jane",
				model.FieldLastName:  "Doe",
				model.FieldEmail:     "jane@x.com",
			}),
		}
	}

	for i := 0; i < 5; i++ {
		result := basicEngine().Classify(context.Background(), records())
		require.Len(t, result.Cleaned, 1)
		require.Len(t, result.Summary.Duplicates, 1)
	}
}

func TestClassify_InputNotMutated(t *testing.T) {
	raw := contact(map[string]string{
		model.FieldFirstName: "jane",
		model.FieldLastName:  "doe",
	})

	_ = basicEngine().Classify(context.Background(), []*model.Contact{raw})

	assert.Equal(t, "jane", raw.Get(model.FieldFirstName))
	assert.Empty(t, raw.Reasons)
}

func TestClassify_InvalidAndSimilarCoexist(t *testing.T) {
	// Tags are independent: one record can be both invalid and similar.
	result := basicEngine().Classify(context.Background(), []*model.Contact{
		contact(map[string]string{
			model.FieldFirstName: "Jane",
			model.FieldLastName:  "Doe",
			model.FieldEmail:     "jane@x.com",
		}),
		contact(map[string]string{
			model.FieldFirstName: "Jane",
			model.FieldLastName:  "Doe",
			model.FieldEmail:     "bad-email",
		}),
	})

	require.Len(t, result.Summary.Invalid, 1)
	require.Len(t, result.Summary.Similar, 2)

	invalid := result.Summary.Invalid[0]
	found := false
	for _, c := range result.Summary.Similar {
		if c.ID == invalid.ID {
			found = true
		}
	}
	assert.True(t, found, "the invalid record should also be tagged similar")
}
