package form

import "strconv"

// Header carries the form's free-form metadata fields, keyed by slot
// name (see headerSlots). Values are rendered verbatim.
type Header map[string]string

// TextCell is one positioned piece of overlay text. X and Y are the
// bottom-left corner of the text in page coordinates.
type TextCell struct {
	Text string
	X    float64
	Y    float64
	Size float64
}

// Overlay is the rendered layer for one output page. Cells are in a
// deterministic order: header fields (sorted slot order), page
// numbers, then table rows top to bottom. Identical input always
// produces identical cells; nothing time-dependent is embedded.
type Overlay struct {
	Cells []TextCell
}

// slotOrder fixes the header rendering order so overlays are
// reproducible regardless of map iteration.
var slotOrder = []string{
	"packed_by", "num_boxes", "requisition_no", "order_no",
	"end_item", "date", "typed_name",
}

// Render converts paginated rows plus header metadata into one
// overlay per page. With zero pages a single header-only overlay is
// produced so the caller still gets one sheet to hand out.
func Render(p *Pagination, header Header) []Overlay {
	pageCount := len(p.Pages)
	if pageCount == 0 {
		return []Overlay{renderPage(nil, header, 1, 1, 0, 0, false, DefaultRowsPerPage)}
	}

	overlays := make([]Overlay, 0, pageCount)
	rowsPerPage := p.RowsPerPage
	if rowsPerPage <= 0 {
		rowsPerPage = DefaultRowsPerPage
	}
	for i, page := range p.Pages {
		last := i == pageCount-1
		overlays = append(overlays,
			renderPage(page.Rows, header, i+1, pageCount, page.Total, p.GrandTotal, last, rowsPerPage))
	}
	return overlays
}

func renderPage(rows []Row, header Header, pageNo, pageCount, pageTotal, grandTotal int, last bool, rowsPerPage int) Overlay {
	var ov Overlay

	for _, name := range slotOrder {
		value, ok := header[name]
		if !ok || value == "" {
			continue
		}
		slot := headerSlots[name]
		ov.add(value, slot.x, slot.y, slot.size)
	}

	ov.addCentered(strconv.Itoa(pageNo), pageNoX, pageNoX, pageNumbersY, headerFontSize)
	ov.addCentered(strconv.Itoa(pageCount), pageTotalX, pageTotalX, pageNumbersY, headerFontSize)

	rowH := rowHeight(rowsPerPage)
	for i, row := range rows {
		rowTop := tableTop - float64(i)*rowH
		y1 := rowTop - line1Offset
		y2 := rowTop - line2Offset

		ov.addCentered(strconv.Itoa(row.Box), boxColLeft, boxColRight, y1, boxFontSize)
		ov.add(truncate(row.Item.Description, maxDescChars), contentColLeft+padX, y1, descFontSize)
		if row.Item.NSN != "" {
			ov.add("NSN: "+row.Item.NSN, contentColLeft+padX, y2, nsnFontSize)
		}
		if row.Item.UnitOfIssue != "" {
			ov.addCentered(row.Item.UnitOfIssue, unitColLeft, unitColRight, y1, unitFontSize)
		}
		qty := strconv.Itoa(row.Item.Quantity)
		ov.addCentered(qty, qtyColLeft, qtyColRight, y1, qtyFontSize)
		ov.addCentered("0", sparesColLeft, sparesColRight, y1, qtyFontSize)
		ov.addCentered(qty, totalColLeft, totalColRight, y1, qtyFontSize)
	}

	if len(rows) > 0 {
		ov.addCentered(strconv.Itoa(pageTotal), totalColLeft, totalColRight, pageTotalRegionY, totalFontSize)
		if last {
			ov.add("GRAND TOTAL", sparesColLeft, grandTotalY, totalFontSize)
			ov.addCentered(strconv.Itoa(grandTotal), totalColLeft, totalColRight, grandTotalY, totalFontSize)
		}
	}

	return ov
}

func (o *Overlay) add(text string, x, y, size float64) {
	o.Cells = append(o.Cells, TextCell{Text: text, X: x, Y: y, Size: size})
}

// addCentered positions text horizontally centered between left and
// right using an average-width estimate for Helvetica.
func (o *Overlay) addCentered(text string, left, right, y, size float64) {
	center := (left + right) / 2
	width := helveticaAvgWidth * size * float64(len([]rune(text)))
	o.add(text, center-width/2, y, size)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
