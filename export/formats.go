// Package export writes period × term matrices as delimited text for
// spreadsheet and rendering collaborators.
package export

import "fmt"

// Format identifies a delimited output format.
type Format string

const (
	// FormatCSV is comma-separated values.
	FormatCSV Format = "csv"

	// FormatTSV is tab-separated values.
	FormatTSV Format = "tsv"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Delimiter is the field separator rune.
	Delimiter rune

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatCSV: {
		Name:        FormatCSV,
		MIMEType:    "text/csv",
		Extension:   ".csv",
		Delimiter:   ',',
		Description: "Comma-separated values",
	},
	FormatTSV: {
		Name:        FormatTSV,
		MIMEType:    "text/tab-separated-values",
		Extension:   ".tsv",
		Delimiter:   '\t',
		Description: "Tab-separated values",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// ParseFormat resolves a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatCSV, "":
		return FormatCSV, nil
	case FormatTSV:
		return FormatTSV, nil
	default:
		return "", fmt.Errorf("unknown export format: %q (supported: csv, tsv)", name)
	}
}
