package form

// DD Form 1750 layout constants, letter size in PDF points. The
// column boundaries and table band were measured off the official
// DD FORM 1750, SEP 70 template.
const (
	pageWidth  = 612.0
	pageHeight = 792.0

	// Column x bounds, left edge to right edge.
	boxColLeft      = 45.0
	boxColRight     = 88.2
	contentColLeft  = 88.2
	contentColRight = 365.4
	unitColLeft     = 365.4
	unitColRight    = 408.6
	qtyColLeft      = 408.6
	qtyColRight     = 453.6
	sparesColLeft   = 453.6
	sparesColRight  = 514.8
	totalColLeft    = 514.8
	totalColRight   = 567.0

	// Vertical extent of the 18-row table band.
	tableTop    = 616.0
	tableBottom = 89.1

	padX = 3.0

	// Baseline offsets within a row band.
	line1Offset = 10.0
	line2Offset = 20.0

	// Font sizes.
	boxFontSize    = 9.0
	descFontSize   = 8.0
	nsnFontSize    = 7.0
	unitFontSize   = 9.0
	qtyFontSize    = 9.0
	headerFontSize = 10.0
	totalFontSize  = 9.0

	maxDescChars = 55

	// helveticaAvgWidth approximates the average Helvetica glyph
	// width in em units, used to center text without font metrics.
	helveticaAvgWidth = 0.52
)

func rowHeight(rowsPerPage int) float64 {
	return (tableTop - tableBottom) / float64(rowsPerPage)
}

// headerSlot is a fixed template position for one named metadata
// field.
type headerSlot struct {
	x, y float64
	size float64
}

// headerSlots maps the supported metadata field names onto their
// template positions. Values are rendered verbatim.
var headerSlots = map[string]headerSlot{
	"packed_by":      {x: 95.0, y: 734.0, size: headerFontSize},
	"num_boxes":      {x: 285.0, y: 734.0, size: headerFontSize},
	"requisition_no": {x: 408.0, y: 734.0, size: headerFontSize},
	"order_no":       {x: 408.0, y: 714.0, size: headerFontSize},
	"end_item":       {x: 95.0, y: 691.0, size: headerFontSize},
	"date":           {x: 450.0, y: 691.0, size: headerFontSize},
	"typed_name":     {x: 95.0, y: 48.0, size: headerFontSize},
}

// Page number slots ("page X of Y"), centered.
const (
	pageNoX      = 472.0
	pageTotalX   = 520.0
	pageNumbersY = pageHeight - 132.0
)

// Per-page total region: the total column, just below the table band.
const (
	pageTotalRegionY = tableBottom - 14.0
	grandTotalY      = tableBottom - 28.0
)
