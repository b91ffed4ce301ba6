package bom

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// detectionWindow bounds how many pages past the start page are
// scanned for a recognizable header signature.
const detectionWindow = 8

// Extractor turns BOM PDF bytes into structured items. It holds only
// configuration, so a single instance is safe for concurrent use.
type Extractor struct {
	maxFileSize int64
}

// NewExtractor creates an extractor enforcing the given document size
// limit in bytes.
func NewExtractor(maxFileSize int64) *Extractor {
	return &Extractor{maxFileSize: maxFileSize}
}

// Extract runs format detection, column mapping and row extraction
// over the supplied document. Row-level problems surface as warnings
// on the result; zero extracted items is a success outcome with an
// explanatory warning so callers can prompt for a different start
// page.
func (e *Extractor) Extract(req ExtractRequest) (*ExtractionResult, error) {
	if len(req.Document) == 0 {
		return nil, fmt.Errorf("document cannot be empty")
	}
	if e.maxFileSize > 0 && int64(len(req.Document)) > e.maxFileSize {
		return nil, fmt.Errorf("document too large: %d bytes (max: %d bytes)", len(req.Document), e.maxFileSize)
	}
	if req.StartPage < 0 {
		return nil, fmt.Errorf("start page must not be negative, got %d", req.StartPage)
	}

	reader, err := pdf.NewReader(bytes.NewReader(req.Document), int64(len(req.Document)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	numPages := reader.NumPage()
	if req.StartPage >= numPages {
		return nil, fmt.Errorf("start page %d exceeds document length (%d pages)", req.StartPage, numPages)
	}

	var warnings []string
	all := make([]pageLines, 0, numPages)
	for n := 0; n < numPages; n++ {
		lines, pageErr := gridFromReader(reader, n)
		if pageErr != nil {
			if n >= req.StartPage {
				warnings = append(warnings, fmt.Sprintf("page %d: %v", n+1, pageErr))
			}
			continue
		}
		all = append(all, pageLines{number: n, lines: lines})
	}

	result, err := e.extractFromPages(all, req.StartPage, req.FormatHint)
	if err != nil {
		return nil, err
	}
	result.Warnings = append(warnings, result.Warnings...)
	return result, nil
}

// extractFromPages runs format resolution, metadata recovery and row
// extraction over already-gridded pages. Detection and metadata always
// use the document's leading pages; startPage bounds row extraction
// only, so a start page past the table still classifies and reports
// "no items found" instead of a detection failure.
func (e *Extractor) extractFromPages(all []pageLines, startPage int, hint FormatKind) (*ExtractionResult, error) {
	spec, err := e.resolveFormat(hint, all)
	if err != nil {
		return nil, err
	}

	var md Metadata
	if len(all) > 0 {
		md = extractMetadata(all[0].lines)
	}

	pages := make([]pageLines, 0, len(all))
	for _, p := range all {
		if p.number >= startPage {
			pages = append(pages, p)
		}
	}

	items, rowWarnings, err := extractRows(pages, spec)
	if err != nil {
		return nil, err
	}

	return &ExtractionResult{
		FormatDetected: spec.kind,
		Metadata:       md,
		Items:          items,
		Warnings:       rowWarnings,
	}, nil
}

// resolveFormat honors an explicit hint or scans the detection window
// for a known header signature.
func (e *Extractor) resolveFormat(hint FormatKind, pages []pageLines) (*formatSpec, error) {
	if hint != "" {
		spec, ok := formatSpecs[hint]
		if !ok {
			return nil, fmt.Errorf("unknown format hint %q", hint)
		}
		return spec, nil
	}

	window := pages
	if len(window) > detectionWindow {
		window = window[:detectionWindow]
	}
	for _, page := range window {
		if kind, ok := detectFormat(page.lines); ok {
			return formatSpecs[kind], nil
		}
	}
	return nil, ErrFormatNotRecognized
}

// gridFromReader grids one 0-based page. The underlying library can
// panic on malformed content streams, so the panic is converted into
// a per-page error and extraction continues with the other pages.
func gridFromReader(reader *pdf.Reader, pageIdx int) (lines []Line, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during page content extraction: %v", r)
		}
	}()

	page := reader.Page(pageIdx + 1)
	if page.V.IsNull() {
		return nil, fmt.Errorf("invalid page")
	}
	return gridPage(page.Content().Text), nil
}
