package contactio

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Veraticus/the-rolodex-must-flow/internal/common"
	"github.com/Veraticus/the-rolodex-must-flow/internal/model"
)

// ReadCSV parses a CSV contact export: a header row naming the columns,
// then one record per row. Blank rows are skipped; a UTF-8 BOM on the first
// header cell is tolerated.
func ReadCSV(r io.Reader) ([]*model.Contact, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, common.ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedFile, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var contacts []*model.Contact
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrMalformedFile, err)
		}

		fields := make(map[string]string, len(header))
		blank := true
		for i, col := range header {
			if i >= len(row) {
				break
			}
			value := row[i]
			if strings.TrimSpace(value) != "" {
				blank = false
			}
			fields[col] = value
		}
		if blank {
			continue
		}
		contacts = append(contacts, model.NewContact(fields))
	}

	if len(contacts) == 0 {
		return nil, common.ErrEmptyFile
	}
	return contacts, nil
}

// WriteCSVOptions configures CSV export.
type WriteCSVOptions struct {
	// FullSchema writes the fixed Outlook-style column set instead of the
	// union of observed keys.
	FullSchema bool
}

// WriteCSV serializes contacts to CSV. Without FullSchema the header is the
// union of observed keys in first-seen order, so a round-trip preserves
// every imported column.
func WriteCSV(w io.Writer, contacts []*model.Contact, opts WriteCSVOptions) error {
	header := ExportSchema
	if !opts.FullSchema {
		header = observedColumns(contacts)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	row := make([]string, len(header))
	for _, c := range contacts {
		for i, col := range header {
			row[i] = c.Fields[col]
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// observedColumns builds a header from the union of every contact's keys.
// Recognized columns lead in schema order; the rest follow alphabetically
// so output is deterministic despite map iteration.
func observedColumns(contacts []*model.Contact) []string {
	present := make(map[string]bool)
	for _, c := range contacts {
		for col := range c.Fields {
			present[col] = true
		}
	}

	var header []string
	known := append([]string{
		model.FieldFirstName,
		model.FieldLastName,
		model.FieldEmail,
		model.FieldCompany,
	}, model.PhoneFields...)
	for _, col := range known {
		if present[col] {
			header = append(header, col)
			delete(present, col)
		}
	}

	rest := make([]string, 0, len(present))
	for col := range present {
		rest = append(rest, col)
	}
	sort.Strings(rest)

	return append(header, rest...)
}
