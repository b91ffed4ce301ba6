package bom

import "fmt"

// FormatKind identifies one of the supported BOM layouts.
type FormatKind string

const (
	// FormatStandard is the GCSS-Army Component Listing / Hand Receipt
	// layout carrying an LV (level) column where "B" marks components.
	FormatStandard FormatKind = "standard_component_listing"

	// FormatEPP is the Equipment Property Record layout, which has no
	// LV column and selects rows by a populated quantity cell.
	FormatEPP FormatKind = "epp"
)

// Formats returns the closed set of supported BOM layouts in a stable
// order. Callers use this for discovery; no extraction is performed.
func Formats() []FormatKind {
	return []FormatKind{FormatStandard, FormatEPP}
}

// Item is one extracted (or review-edited) line entry.
type Item struct {
	Description  string `json:"description"`
	NSN          string `json:"nsn,omitempty"`
	UnitOfIssue  string `json:"unit_of_issue"`
	Quantity     int    `json:"quantity"`
	SourceLineNo string `json:"source_line_number,omitempty"`
}

// ExtractionResult is the output of a single extraction call. It is
// created fresh per call and never mutated after being returned.
type ExtractionResult struct {
	FormatDetected FormatKind `json:"format_detected"`
	Metadata       Metadata   `json:"metadata"`
	Items          []Item     `json:"items"`
	Warnings       []string   `json:"warnings"`
}

// ExtractRequest carries the inputs for an extraction call.
type ExtractRequest struct {
	// Document holds the raw bytes of the source BOM PDF.
	Document []byte

	// StartPage is the 0-based page to begin scanning from.
	StartPage int

	// FormatHint bypasses auto-detection when non-empty. It must name
	// one of the values returned by Formats.
	FormatHint FormatKind
}

// ErrFormatNotRecognized is returned when no page within the detection
// window matches a known header signature.
var ErrFormatNotRecognized = fmt.Errorf("document format not recognized: no known header signature found")

// HeaderFieldMissingError reports a mandatory column the selected
// format requires but the header row does not provide.
type HeaderFieldMissingError struct {
	Field  string
	Format FormatKind
}

func (e *HeaderFieldMissingError) Error() string {
	return fmt.Sprintf("header field %q missing for format %s", e.Field, e.Format)
}
