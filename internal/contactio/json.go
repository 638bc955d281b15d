package contactio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Veraticus/the-rolodex-must-flow/internal/model"
)

// WriteJSON serializes contacts as an indented JSON array of field maps.
// Anomaly annotations are session state, not contact data, so only the
// fields are exported.
func WriteJSON(w io.Writer, contacts []*model.Contact) error {
	maps := make([]map[string]string, 0, len(contacts))
	for _, c := range contacts {
		maps = append(maps, c.Fields)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(maps); err != nil {
		return fmt.Errorf("failed to encode contacts as JSON: %w", err)
	}
	return nil
}
