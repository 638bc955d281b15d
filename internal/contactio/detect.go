package contactio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Veraticus/the-rolodex-must-flow/internal/common"
)

// Format identifies a contact file format.
type Format string

// Supported formats.
const (
	FormatCSV   Format = "csv"
	FormatVCard Format = "vcf"
	FormatJSON  Format = "json"
	FormatExcel Format = "xlsx"
)

// DetectFormat maps a file name to its format by extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".vcf", ".vcard":
		return FormatVCard, nil
	case ".json":
		return FormatJSON, nil
	case ".xlsx":
		return FormatExcel, nil
	default:
		return "", fmt.Errorf("%w: %s", common.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ParseFormat validates a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return FormatCSV, nil
	case "vcf", "vcard":
		return FormatVCard, nil
	case "json":
		return FormatJSON, nil
	case "xlsx", "excel":
		return FormatExcel, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, name)
	}
}

// Extension returns the file extension for a format, without the dot.
func (f Format) Extension() string {
	return string(f)
}
