package bom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standardRow(y float64, lv, desc, nsn, ui, qty string) Line {
	var cells []tcell
	if nsn != "" {
		cells = append(cells, tcell{nsn, 60})
	}
	if lv != "" {
		cells = append(cells, tcell{lv, 150})
	}
	if desc != "" {
		cells = append(cells, tcell{desc, 200})
	}
	if ui != "" {
		cells = append(cells, tcell{ui, 340})
	}
	if qty != "" {
		cells = append(cells, tcell{qty, 390})
	}
	return testLine(y, cells...)
}

func TestExtractRowsSelectsComponentMarkerOnly(t *testing.T) {
	pages := []pageLines{{number: 0, lines: []Line{
		standardHeader(),
		standardRow(680, "A", "COEI- COMPONENT OF END ITEM", "", "", ""),
		standardRow(660, "B", "CHAIN ASSEMBLY,SINGLE LEG", "002643796", "EA", "2"),
		standardRow(640, "C", "SUBCOMPONENT NOT WANTED", "111111111", "EA", "1"),
		standardRow(620, "B", "VISE,MACHINIST", "004947063", "EA", "1"),
	}}}

	items, warnings, err := extractRows(pages, formatSpecs[FormatStandard])
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "CHAIN ASSEMBLY,SINGLE LEG", items[0].Description)
	assert.Equal(t, "002643796", items[0].NSN)
	assert.Equal(t, "EA", items[0].UnitOfIssue)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "VISE,MACHINIST", items[1].Description)
	assert.Empty(t, warnings)
}

func TestExtractRowsJoinsContinuationRows(t *testing.T) {
	pages := []pageLines{{number: 0, lines: []Line{
		standardHeader(),
		standardRow(680, "B", "CASE,MAINTENANCE AND", "002643796", "EA", "1"),
		standardRow(660, "", "TOOL BOX,PORTABLE", "", "", ""),
		standardRow(640, "B", "SCREWDRIVER,FLAT TIP", "005278867", "EA", "3"),
	}}}

	items, _, err := extractRows(pages, formatSpecs[FormatStandard])
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "CASE,MAINTENANCE AND TOOL BOX,PORTABLE", items[0].Description)
	assert.Equal(t, "SCREWDRIVER,FLAT TIP", items[1].Description)
}

func TestExtractRowsContinuationRequiresPrecedingSelection(t *testing.T) {
	// A description-only row with no selected row above it must not
	// become an item or attach to anything.
	pages := []pageLines{{number: 0, lines: []Line{
		standardHeader(),
		standardRow(680, "", "ORPHAN CONTINUATION TEXT", "", "", ""),
		standardRow(660, "B", "REAL ITEM", "002643796", "EA", "1"),
	}}}

	items, _, err := extractRows(pages, formatSpecs[FormatStandard])
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "REAL ITEM", items[0].Description)
}

func TestExtractRowsUnparsableQuantity(t *testing.T) {
	tests := []struct {
		name string
		qty  string
	}{
		{name: "placeholder_text", qty: "N/A"},
		{name: "non_numeric", qty: "TWO"},
		{name: "negative", qty: "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages := []pageLines{{number: 2, lines: []Line{
				standardHeader(),
				standardRow(680, "B", "GOGGLES,INDUSTRIAL", "004143218", "EA", tt.qty),
			}}}

			items, warnings, err := extractRows(pages, formatSpecs[FormatStandard])
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, 0, items[0].Quantity)

			found := false
			for _, w := range warnings {
				if strings.Contains(w, "page 3 row 1") && strings.Contains(w, "quantity") {
					found = true
				}
			}
			assert.True(t, found, "expected a quantity warning referencing the row, got %v", warnings)
		})
	}
}

func TestExtractRowsNSNFallbackFromRowText(t *testing.T) {
	// No material column at all; the NIIN hides inside the
	// description text.
	header := testLine(700,
		tcell{"LV", 150},
		tcell{"Description", 200},
		tcell{"Auth Qty", 390},
	)
	pages := []pageLines{{number: 0, lines: []Line{
		header,
		testLine(680,
			tcell{"B", 150},
			tcell{"PIN,QUICK RELEASE 002643796", 200},
			tcell{"1", 395},
		),
	}}}

	items, _, err := extractRows(pages, formatSpecs[FormatStandard])
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "002643796", items[0].NSN)
}

func TestExtractRowsMissingNSNWarns(t *testing.T) {
	pages := []pageLines{{number: 0, lines: []Line{
		standardHeader(),
		standardRow(680, "B", "STRAP,WEBBING", "", "EA", "4"),
	}}}

	items, warnings, err := extractRows(pages, formatSpecs[FormatStandard])
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Empty(t, items[0].NSN)

	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0], "no NSN found")
	assert.Contains(t, warnings[0], "page 1 row 1")
}

func TestExtractNSN(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{name: "bare_niin", in: "002643796", expected: "002643796"},
		{name: "niin_with_material_number", in: "002643796 C_19207 ~ 11655778-5", expected: "002643796"},
		{name: "dashed_nsn", in: "6545-00-922-1200", expected: "009221200"},
		{name: "material_with_dashed_nsn", in: "C_89875 ~ 6545-00-922-1200", expected: "009221200"},
		{name: "no_nsn", in: "C_19207", expected: ""},
		{name: "empty", in: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractNSN(tt.in))
		})
	}
}

func TestExtractRowsEPPSelectsByQuantity(t *testing.T) {
	pages := []pageLines{{number: 0, lines: []Line{
		eppHeader(),
		testLine(680,
			tcell{"002865967", 60},
			tcell{"PWR PLANT SUPPORT KIT", 200},
			tcell{"EA", 340},
			tcell{"1", 395},
		),
		testLine(660, tcell{"NOTES WITHOUT QUANTITY", 200}),
		testLine(640,
			tcell{"009221200", 60},
			tcell{"FIRST AID KIT", 200},
			tcell{"EA", 340},
			tcell{"2", 395},
		),
	}}}

	items, _, err := extractRows(pages, formatSpecs[FormatEPP])
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "PWR PLANT SUPPORT KIT NOTES WITHOUT QUANTITY", items[0].Description)
	assert.Equal(t, "FIRST AID KIT", items[1].Description)
}

func TestExtractRowsNoItemsFound(t *testing.T) {
	pages := []pageLines{{number: 0, lines: []Line{
		standardHeader(),
		standardRow(680, "A", "BASIC ISSUE ITEMS", "", "", ""),
	}}}

	items, warnings, err := extractRows(pages, formatSpecs[FormatStandard])
	require.NoError(t, err)
	assert.Empty(t, items)
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[len(warnings)-1], "no items found")
}

func TestExtractRowsSkipsPagesWithoutHeader(t *testing.T) {
	pages := []pageLines{
		{number: 0, lines: []Line{testLine(700, tcell{"COVER SHEET", 100})}},
		{number: 1, lines: []Line{
			standardHeader(),
			standardRow(680, "B", "TOOL KIT,GENERAL", "001234567", "EA", "1"),
		}},
	}

	items, _, err := extractRows(pages, formatSpecs[FormatStandard])
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "page 2 row 1", items[0].SourceLineNo)
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in       string
		expected int
		ok       bool
	}{
		{in: "4", expected: 4, ok: true},
		{in: " 12 ", expected: 12, ok: true},
		{in: "1,250", expected: 1250, ok: true},
		{in: "0", expected: 0, ok: true},
		{in: "", expected: 0, ok: false},
		{in: "N/A", expected: 0, ok: false},
		{in: "-1", expected: 0, ok: false},
	}

	for _, tt := range tests {
		n, ok := parseQuantity(tt.in)
		assert.Equal(t, tt.expected, n, "input %q", tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
	}
}
