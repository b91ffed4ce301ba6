package bom

import "strings"

// fieldName identifies a semantic column of a BOM table.
type fieldName string

const (
	fieldDescription fieldName = "description"
	fieldQuantity    fieldName = "quantity"
	fieldNSN         fieldName = "nsn"
	fieldUnit        fieldName = "unit_of_issue"
	fieldLevel       fieldName = "level"

	// fieldOnHand is recognized so the on-hand quantity column cannot
	// shadow the authorized quantity column; it is never exported.
	fieldOnHand fieldName = "on_hand"
)

// componentMarker is the LV cell value marking a component line in the
// standard layout. "A" rows are category headers and are skipped.
const componentMarker = "B"

// formatSpec is the static descriptor of one supported layout: its
// header signature, column aliases, mandatory fields and row selection
// rule. Extraction branches on nothing but the descriptor.
type formatSpec struct {
	kind      FormatKind
	aliases   map[fieldName][]string
	mandatory []fieldName
	selects   func(cells map[fieldName]string) bool
}

// matchOrder fixes the sequence in which fields claim header cells.
// More specific aliases must win before generic ones (AUTH QTY and
// OH QTY before bare QTY).
var matchOrder = []fieldName{fieldLevel, fieldOnHand, fieldQuantity, fieldDescription, fieldNSN, fieldUnit}

var baseAliases = map[fieldName][]string{
	fieldDescription: {"ITEM DESCRIPTION", "DESCRIPTION", "DESC", "NOMENCLATURE"},
	fieldQuantity:    {"AUTHORIZED QUANTITY", "AUTH QTY", "QTY AUTH", "QTY"},
	fieldNSN:         {"STOCK NUMBER", "MATERIAL", "MAT", "NSN", "NIIN"},
	fieldUnit:        {"UNIT OF ISSUE", "U/I", "UI", "UNIT"},
	fieldLevel:       {"LEVEL", "LV"},
	fieldOnHand:      {"OH QTY", "QTY OH"},
}

var formatSpecs = map[FormatKind]*formatSpec{
	FormatStandard: {
		kind:      FormatStandard,
		aliases:   baseAliases,
		mandatory: []fieldName{fieldDescription, fieldQuantity},
		selects: func(cells map[fieldName]string) bool {
			return strings.EqualFold(strings.TrimSpace(cells[fieldLevel]), componentMarker)
		},
	},
	FormatEPP: {
		kind:      FormatEPP,
		aliases:   baseAliases,
		mandatory: []fieldName{fieldDescription, fieldQuantity},
		selects: func(cells map[fieldName]string) bool {
			return strings.TrimSpace(cells[fieldQuantity]) != ""
		},
	},
}

// canonical normalizes header text for alias comparison: uppercase
// with all whitespace removed, so "Auth  Qty", "AUTH QTY" and
// "AuthQty" compare equal.
func canonical(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}

// hasAlias reports whether any word sequence of the line matches one
// of the aliases for the given field.
func hasAlias(line Line, field fieldName) bool {
	for _, alias := range baseAliases[field] {
		if findAlias(line.Words, alias, nil) >= 0 {
			return true
		}
	}
	return false
}

// findAlias locates the first word index where the alias starts,
// allowing the alias to span several consecutive words. Words whose
// index is marked consumed are skipped. Returns -1 when absent.
func findAlias(words []Word, alias string, consumed []bool) int {
	want := canonical(alias)
	for i := range words {
		if consumed != nil && consumed[i] {
			continue
		}
		got := ""
		for j := i; j < len(words); j++ {
			if consumed != nil && consumed[j] {
				break
			}
			got += canonical(words[j].Text)
			if got == want {
				return i
			}
			if len(got) >= len(want) {
				break
			}
		}
	}
	return -1
}

// aliasSpan returns how many words starting at idx the alias covers.
func aliasSpan(words []Word, idx int, alias string) int {
	want := canonical(alias)
	got := ""
	for j := idx; j < len(words); j++ {
		got += canonical(words[j].Text)
		if got == want {
			return j - idx + 1
		}
	}
	return 1
}

// headerSignature reports whether the line looks like a header row of
// the given format.
func headerSignature(line Line, kind FormatKind) bool {
	switch kind {
	case FormatStandard:
		return hasAlias(line, fieldDescription) && hasAlias(line, fieldLevel)
	case FormatEPP:
		return hasAlias(line, fieldDescription) &&
			hasAlias(line, fieldQuantity) &&
			!hasAlias(line, fieldLevel)
	default:
		return false
	}
}

// detectFormat classifies a single page's lines against the known
// header signatures. The standard layout is tried first since its
// signature is strictly narrower (it requires the LV token).
func detectFormat(lines []Line) (FormatKind, bool) {
	for _, line := range lines {
		if headerSignature(line, FormatStandard) {
			return FormatStandard, true
		}
		if headerSignature(line, FormatEPP) {
			return FormatEPP, true
		}
	}
	return "", false
}
