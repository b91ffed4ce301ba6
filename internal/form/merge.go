package form

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// TemplatePageCountWarning is recorded when a supplied template has
// more than one page; only the first page is used as the repeating
// base.
const TemplatePageCountWarning = "template has more than one page; using only the first page as the repeating base"

// TemplateMergeError indicates the template could not be parsed or
// composed into the output document.
type TemplateMergeError struct {
	Err error
}

func (e *TemplateMergeError) Error() string {
	return fmt.Sprintf("template merge failed: %v", e.Err)
}

func (e *TemplateMergeError) Unwrap() error { return e.Err }

// Merge composes each overlay onto a fresh instance of the template's
// first page and returns the final document bytes. The output page
// count always equals len(overlays); a mismatch after composition is
// reported as an error.
func Merge(overlays []Overlay, template []byte) ([]byte, []string, error) {
	if len(overlays) == 0 {
		return nil, nil, fmt.Errorf("no overlays to merge")
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	var warnings []string

	base, pageCount, err := templateBase(template, conf)
	if err != nil {
		return nil, nil, &TemplateMergeError{Err: err}
	}
	if pageCount > 1 {
		warnings = append(warnings, TemplatePageCountWarning)
	}

	doc, err := replicate(base, len(overlays), conf)
	if err != nil {
		return nil, nil, &TemplateMergeError{Err: err}
	}

	stamps := make(map[int][]*model.Watermark)
	for i, ov := range overlays {
		for _, cell := range ov.Cells {
			if cell.Text == "" {
				continue
			}
			wm, wmErr := api.TextWatermark(cell.Text, watermarkDesc(cell), true, false, types.POINTS)
			if wmErr != nil {
				return nil, nil, &TemplateMergeError{Err: fmt.Errorf("building stamp for page %d: %w", i+1, wmErr)}
			}
			stamps[i+1] = append(stamps[i+1], wm)
		}
	}

	out := doc
	if len(stamps) > 0 {
		var stamped bytes.Buffer
		if err := api.AddWatermarksSliceMap(bytes.NewReader(doc), &stamped, stamps, conf); err != nil {
			return nil, nil, &TemplateMergeError{Err: fmt.Errorf("stamping overlays: %w", err)}
		}
		out = stamped.Bytes()
	}

	got, err := countPages(out, conf)
	if err != nil {
		return nil, nil, &TemplateMergeError{Err: fmt.Errorf("verifying output: %w", err)}
	}
	if got != len(overlays) {
		return nil, nil, fmt.Errorf("output page count %d does not match overlay count %d", got, len(overlays))
	}

	return out, warnings, nil
}

// templateBase validates the template and reduces it to its first
// page. The original page count is returned so callers can warn on
// multi-page templates.
func templateBase(template []byte, conf *model.Configuration) ([]byte, int, error) {
	pageCount, err := countPages(template, conf)
	if err != nil {
		return nil, 0, fmt.Errorf("reading template: %w", err)
	}
	if pageCount == 1 {
		return template, 1, nil
	}

	var first bytes.Buffer
	if err := api.Trim(bytes.NewReader(template), &first, []string{"1"}, conf); err != nil {
		return nil, 0, fmt.Errorf("trimming template to first page: %w", err)
	}
	return first.Bytes(), pageCount, nil
}

// replicate builds an n-page document by repeating the single-page
// base.
func replicate(base []byte, n int, conf *model.Configuration) ([]byte, error) {
	if n == 1 {
		return base, nil
	}
	readers := make([]io.ReadSeeker, n)
	for i := range readers {
		readers[i] = bytes.NewReader(base)
	}
	var merged bytes.Buffer
	if err := api.MergeRaw(readers, &merged, false, conf); err != nil {
		return nil, fmt.Errorf("replicating template page: %w", err)
	}
	return merged.Bytes(), nil
}

func countPages(doc []byte, conf *model.Configuration) (int, error) {
	ctx, err := api.ReadContext(bytes.NewReader(doc), conf)
	if err != nil {
		return 0, err
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return 0, err
	}
	return ctx.PageCount, nil
}

// watermarkDesc renders a cell into a pdfcpu text stamp description:
// Helvetica at absolute scale, anchored to the page's bottom-left
// corner and offset to the cell position.
func watermarkDesc(cell TextCell) string {
	return fmt.Sprintf("fo:Helvetica, points:%d, scale:1 abs, pos:bl, off:%.2f %.2f, rot:0, fillc:#000000, op:1",
		int(cell.Size), cell.X, cell.Y)
}
