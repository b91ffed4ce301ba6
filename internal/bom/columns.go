package bom

import (
	"math"
	"sort"
	"strings"
)

// column is one resolved header cell with the horizontal span data
// cells are assigned against. Unmapped header cells keep an empty
// field name and act as separators only.
type column struct {
	field       fieldName
	left, right float64
}

// columnMap is the positional mapping from semantic field to column,
// resolved once per header row and reused for every data row under it.
type columnMap struct {
	cols    []column
	byField map[fieldName]int
}

// mapColumns resolves the header row of a table into a columnMap.
// Matching is case-insensitive and whitespace-normalized, and fields
// may appear in any order. Mandatory fields of the format must
// resolve; optional fields are simply absent from the map.
func mapColumns(header Line, spec *formatSpec) (*columnMap, error) {
	type headerCell struct {
		field      fieldName
		start, end int // word index range, inclusive
	}

	words := header.Words
	consumed := make([]bool, len(words))
	var cells []headerCell

	for _, field := range matchOrder {
		for _, alias := range spec.aliases[field] {
			idx := findAlias(words, alias, consumed)
			if idx < 0 {
				continue
			}
			span := aliasSpan(words, idx, alias)
			for j := idx; j < idx+span; j++ {
				consumed[j] = true
			}
			cells = append(cells, headerCell{field: field, start: idx, end: idx + span - 1})
			break
		}
	}

	// Unmatched header words still separate columns.
	for i := range words {
		if !consumed[i] {
			cells = append(cells, headerCell{field: "", start: i, end: i})
		}
	}

	sort.Slice(cells, func(i, j int) bool { return words[cells[i].start].X < words[cells[j].start].X })

	m := &columnMap{byField: make(map[fieldName]int)}
	for i, c := range cells {
		lo := words[c.start].X
		hi := words[c.end].X + words[c.end].W
		left := math.Inf(-1)
		if i > 0 {
			prev := cells[i-1]
			prevHi := words[prev.end].X + words[prev.end].W
			left = (prevHi + lo) / 2
		}
		right := math.Inf(1)
		if i < len(cells)-1 {
			right = (hi + words[cells[i+1].start].X) / 2
		}
		m.cols = append(m.cols, column{field: c.field, left: left, right: right})
		if c.field != "" && c.field != fieldOnHand {
			m.byField[c.field] = i
		}
	}

	for _, field := range spec.mandatory {
		if _, ok := m.byField[field]; !ok {
			return nil, &HeaderFieldMissingError{Field: string(field), Format: spec.kind}
		}
	}
	return m, nil
}

// has reports whether the optional field resolved to a column.
func (m *columnMap) has(field fieldName) bool {
	_, ok := m.byField[field]
	return ok
}

// cellsFor assigns the words of a data row to columns by horizontal
// position and returns the text of each mapped field's cell. Words
// landing in unmapped columns are dropped.
func (m *columnMap) cellsFor(line Line) map[fieldName]string {
	parts := make(map[fieldName][]string)
	for _, w := range line.Words {
		center := w.X + w.W/2
		for _, col := range m.cols {
			if center >= col.left && center < col.right {
				if col.field != "" && col.field != fieldOnHand {
					parts[col.field] = append(parts[col.field], w.Text)
				}
				break
			}
		}
	}
	cells := make(map[fieldName]string, len(parts))
	for f, p := range parts {
		cells[f] = strings.Join(p, " ")
	}
	return cells
}
