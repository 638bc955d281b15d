package contactio

import (
	"fmt"
	"os"

	"github.com/Veraticus/the-rolodex-must-flow/internal/common"
	"github.com/Veraticus/the-rolodex-must-flow/internal/model"
)

// ReadFile parses a contact file, choosing the parser by extension. Only
// CSV and vCard are import formats; anything else fails before any cleaning
// state is touched.
func ReadFile(path string) ([]*model.Contact, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	switch format {
	case FormatCSV:
		return ReadCSV(f)
	case FormatVCard:
		return ReadVCard(f)
	default:
		return nil, fmt.Errorf("%w: cannot import %s files", common.ErrUnsupportedFormat, format)
	}
}

// ExportOptions configures WriteFile.
type ExportOptions struct {
	Format     Format
	FullSchema bool
}

// WriteFile serializes contacts to path in the requested format.
func WriteFile(path string, contacts []*model.Contact, opts ExportOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	switch opts.Format {
	case FormatCSV:
		err = WriteCSV(f, contacts, WriteCSVOptions{FullSchema: opts.FullSchema})
	case FormatJSON:
		err = WriteJSON(f, contacts)
	case FormatExcel:
		err = WriteExcel(f, contacts)
	case FormatVCard:
		err = WriteVCard(f, contacts)
	default:
		err = fmt.Errorf("%w: %s", common.ErrUnsupportedFormat, opts.Format)
	}
	if err != nil {
		return err
	}

	return f.Close()
}
