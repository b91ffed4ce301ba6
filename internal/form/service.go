package form

import (
	"fmt"
	"sort"

	"github.com/packlist/dd1750/internal/bom"
)

// GenerationRequest carries the inputs for rendering a packing list.
type GenerationRequest struct {
	// Items is the (possibly review-edited) ordered item list. Order
	// is preserved verbatim through pagination.
	Items []bom.Item

	// Template optionally replaces the built-in blank template.
	Template []byte

	// Header holds the metadata fields rendered into fixed slots.
	Header Header

	// RowsPerPage overrides the 18-row grid; zero means default.
	RowsPerPage int
}

// GenerationResult is the rendered document plus diagnostics.
type GenerationResult struct {
	Document []byte
	Pages    int
	Warnings []string
}

// Generator produces DD Form 1750 documents. It is stateless apart
// from the shared read-only default template and safe for concurrent
// use.
type Generator struct{}

// NewGenerator creates a packing-list generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate paginates the items, renders one overlay per page and
// merges the overlays onto the template. With zero items the output
// is exactly one template page carrying only the header metadata.
func (g *Generator) Generate(req GenerationRequest) (*GenerationResult, error) {
	var warnings []string
	warnings = append(warnings, unknownHeaderFields(req.Header)...)

	pagination := Paginate(req.Items, req.RowsPerPage)
	overlays := Render(pagination, req.Header)

	template := req.Template
	if len(template) == 0 {
		template = DefaultTemplate()
	}

	doc, mergeWarnings, err := Merge(overlays, template)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, mergeWarnings...)

	return &GenerationResult{
		Document: doc,
		Pages:    len(overlays),
		Warnings: warnings,
	}, nil
}

// unknownHeaderFields reports header keys that have no template slot,
// in sorted order for stable diagnostics.
func unknownHeaderFields(h Header) []string {
	var unknown []string
	for name := range h {
		if _, ok := headerSlots[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for i, name := range unknown {
		unknown[i] = fmt.Sprintf("header field %q has no template slot and was ignored", name)
	}
	return unknown
}
