package bom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func identificationBlock() []Line {
	return []Line{
		testLine(760, tcell{"END ITEM NIIN: 015449622", 60}, tcell{"LIN: T13168", 320}),
		testLine(745, tcell{"DESC: TRUCK UTILITY M1165A1", 60}),
		testLine(730, tcell{"SER/EQUIP NO: NZ0BB7", 60}, tcell{"UIC: WABCD1", 300}, tcell{"FE: 2", 450}),
	}
}

func TestExtractMetadata(t *testing.T) {
	md := extractMetadata(append(identificationBlock(), standardHeader()))

	assert.Equal(t, "015449622", md.EndItemNIIN)
	assert.Equal(t, "TRUCK UTILITY M1165A1", md.EndItemDescription)
	assert.Equal(t, "T13168", md.LIN)
	assert.Equal(t, "NZ0BB7", md.SerialEquipNo)
	assert.Equal(t, "WABCD1", md.UIC)
	assert.Equal(t, "2", md.FE)
}

func TestExtractMetadataAbsentFieldsStayEmpty(t *testing.T) {
	md := extractMetadata([]Line{standardHeader()})
	assert.Equal(t, Metadata{}, md)
}

func TestExtractMetadataToleratesCaseAndMissingColon(t *testing.T) {
	lines := []Line{
		testLine(760, tcell{"End Item NIIN 015449622", 60}),
		testLine(745, tcell{"uic WABCD1", 60}),
	}

	md := extractMetadata(lines)
	assert.Equal(t, "015449622", md.EndItemNIIN)
	assert.Equal(t, "WABCD1", md.UIC)
}

func TestExtractMetadataCapsDescription(t *testing.T) {
	long := strings.Repeat("A", 80)
	md := extractMetadata([]Line{testLine(745, tcell{"DESC: " + long, 60})})
	assert.Len(t, md.EndItemDescription, maxEndItemDescLen)
}

func TestExtractMetadataDescriptionStopsAtLineBreak(t *testing.T) {
	lines := []Line{
		testLine(745, tcell{"DESC: GENERATOR SET", 60}),
		testLine(730, tcell{"UIC: WABCD1", 60}),
	}

	md := extractMetadata(lines)
	assert.Equal(t, "GENERATOR SET", md.EndItemDescription)
}

func TestMetadataEndItem(t *testing.T) {
	tests := []struct {
		name     string
		md       Metadata
		expected string
	}{
		{
			name:     "description_preferred",
			md:       Metadata{EndItemDescription: "TRUCK UTILITY M1165A1", EndItemNIIN: "015449622"},
			expected: "TRUCK UTILITY M1165A1",
		},
		{
			name:     "niin_fallback",
			md:       Metadata{EndItemNIIN: "015449622"},
			expected: "015449622",
		},
		{
			name:     "nothing_recovered",
			md:       Metadata{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.md.EndItem())
		})
	}
}
