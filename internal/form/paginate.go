package form

import "github.com/packlist/dd1750/internal/bom"

// DefaultRowsPerPage is the fixed grid capacity of a DD Form 1750
// sheet.
const DefaultRowsPerPage = 18

// Row pairs an item with its box number. Box numbers run 1..N across
// the whole document and are never reset between pages.
type Row struct {
	Item bom.Item
	Box  int
}

// Page is one packing-list sheet worth of rows.
type Page struct {
	Index int // 0-based
	Rows  []Row
	Total int // sum of quantities on this page
}

// Pagination is the paged view of an item list plus its totals.
type Pagination struct {
	Pages       []Page
	GrandTotal  int
	ItemCount   int
	RowsPerPage int
}

// Paginate splits items into pages of at most rowsPerPage rows,
// preserving order exactly. Zero items yields zero pages. A
// non-positive rowsPerPage falls back to the form's 18-row grid.
func Paginate(items []bom.Item, rowsPerPage int) *Pagination {
	if rowsPerPage <= 0 {
		rowsPerPage = DefaultRowsPerPage
	}

	p := &Pagination{ItemCount: len(items), RowsPerPage: rowsPerPage}
	for i, item := range items {
		if i%rowsPerPage == 0 {
			p.Pages = append(p.Pages, Page{Index: len(p.Pages)})
		}
		page := &p.Pages[len(p.Pages)-1]
		page.Rows = append(page.Rows, Row{Item: item, Box: i + 1})
		page.Total += item.Quantity
		p.GrandTotal += item.Quantity
	}
	return p
}
