package bom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapColumnsStandardHeader(t *testing.T) {
	cm, err := mapColumns(standardHeader(), formatSpecs[FormatStandard])
	require.NoError(t, err)

	assert.True(t, cm.has(fieldDescription))
	assert.True(t, cm.has(fieldQuantity))
	assert.True(t, cm.has(fieldNSN))
	assert.True(t, cm.has(fieldUnit))
	assert.True(t, cm.has(fieldLevel))
}

func TestMapColumnsToleratesReordering(t *testing.T) {
	// Same fields, different column order.
	header := testLine(700,
		tcell{"Auth Qty", 60},
		tcell{"Description", 150},
		tcell{"LV", 320},
		tcell{"Material", 380},
	)

	cm, err := mapColumns(header, formatSpecs[FormatStandard])
	require.NoError(t, err)

	cells := cm.cellsFor(testLine(680,
		tcell{"4", 60},
		tcell{"CHAIN ASSEMBLY", 150},
		tcell{"B", 320},
		tcell{"002643796", 380},
	))
	assert.Equal(t, "4", cells[fieldQuantity])
	assert.Equal(t, "CHAIN ASSEMBLY", cells[fieldDescription])
	assert.Equal(t, "B", cells[fieldLevel])
	assert.Equal(t, "002643796", cells[fieldNSN])
}

func TestMapColumnsMissingMandatoryField(t *testing.T) {
	tests := []struct {
		name    string
		header  Line
		missing string
	}{
		{
			name:    "no_description",
			header:  testLine(700, tcell{"LV", 150}, tcell{"Auth Qty", 390}),
			missing: "description",
		},
		{
			name:    "no_quantity",
			header:  testLine(700, tcell{"LV", 150}, tcell{"Description", 200}),
			missing: "quantity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mapColumns(tt.header, formatSpecs[FormatStandard])
			require.Error(t, err)

			var missingErr *HeaderFieldMissingError
			require.ErrorAs(t, err, &missingErr)
			assert.Equal(t, tt.missing, missingErr.Field)
		})
	}
}

func TestMapColumnsOptionalFieldsAbsent(t *testing.T) {
	header := testLine(700, tcell{"Description", 200}, tcell{"Auth Qty", 390})

	cm, err := mapColumns(header, formatSpecs[FormatEPP])
	require.NoError(t, err)
	assert.False(t, cm.has(fieldNSN))
	assert.False(t, cm.has(fieldUnit))
	assert.False(t, cm.has(fieldLevel))
}

func TestOnHandColumnDoesNotShadowAuthQty(t *testing.T) {
	cm, err := mapColumns(standardHeader(), formatSpecs[FormatStandard])
	require.NoError(t, err)

	cells := cm.cellsFor(testLine(680,
		tcell{"B", 150},
		tcell{"TOOL KIT", 200},
		tcell{"2", 395}, // auth qty column
		tcell{"7", 465}, // on-hand column, handwritten counts live here
	))
	assert.Equal(t, "2", cells[fieldQuantity])
}

func TestCellsForJoinsMultiWordCells(t *testing.T) {
	cm, err := mapColumns(standardHeader(), formatSpecs[FormatStandard])
	require.NoError(t, err)

	cells := cm.cellsFor(testLine(680,
		tcell{"B", 150},
		tcell{"CHAIN", 200},
		tcell{"ASSEMBLY,SINGLE", 226},
		tcell{"LEG", 250},
	))
	assert.Equal(t, "CHAIN ASSEMBLY,SINGLE LEG", cells[fieldDescription])
}

func TestCellsForDropsUnmappedColumns(t *testing.T) {
	// WTY/ARC style code columns sit between description and UI and
	// must not leak into any mapped field.
	header := testLine(700,
		tcell{"LV", 150},
		tcell{"Description", 200},
		tcell{"WTY", 300},
		tcell{"UI", 340},
		tcell{"Auth Qty", 390},
	)
	cm, err := mapColumns(header, formatSpecs[FormatStandard])
	require.NoError(t, err)

	cells := cm.cellsFor(testLine(680,
		tcell{"B", 150},
		tcell{"VISE,MACHINIST", 200},
		tcell{"9K", 300},
		tcell{"EA", 340},
		tcell{"1", 395},
	))
	assert.Equal(t, "VISE,MACHINIST", cells[fieldDescription])
	assert.Equal(t, "EA", cells[fieldUnit])
	assert.NotContains(t, cells[fieldDescription], "9K")
}
