package form

import (
	"bytes"
	"fmt"
	"sync"
)

// The default template is a blank letter-sized single page, built once
// and shared read-only across requests. Per-request templates never
// replace it. It is assembled programmatically so the cross-reference
// offsets are correct by construction instead of shipping a binary
// asset.
var (
	defaultTemplateOnce sync.Once
	defaultTemplate     []byte
)

// DefaultTemplate returns a copy of the built-in blank template.
func DefaultTemplate() []byte {
	defaultTemplateOnce.Do(func() {
		defaultTemplate = buildBlankTemplate()
	})
	out := make([]byte, len(defaultTemplate))
	copy(out, defaultTemplate)
	return out
}

func buildBlankTemplate() []byte {
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		fmt.Sprintf("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Resources << >> /Contents 4 0 R >>\nendobj\n",
			int(pageWidth), int(pageHeight)),
		"4 0 obj\n<< /Length 0 >>\nstream\n\nendstream\nendobj\n",
	}

	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")

	offsets := make([]int, 0, len(objects))
	for _, obj := range objects {
		offsets = append(offsets, b.Len())
		b.WriteString(obj)
	}

	xrefPos := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", len(objects)+1)
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefPos)

	return b.Bytes()
}
