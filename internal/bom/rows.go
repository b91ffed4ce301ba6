package bom

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// maxDescriptionLen caps item descriptions; GCSS exports occasionally
// wrap the whole remarks block into the description cell.
const maxDescriptionLen = 100

var (
	niinPattern      = regexp.MustCompile(`\b(\d{9})\b`)
	nsnDashedPattern = regexp.MustCompile(`\b\d{4}-(\d{2})-(\d{3})-(\d{4})\b`)
	trailingSlashes  = regexp.MustCompile(`[/\\]+\s*$`)
)

// categoryRows are section headings that show up as data rows in GCSS
// exports and must never become items.
var categoryRows = []string{
	"COMPONENT OF END ITEM",
	"BASIC ISSUE ITEMS",
	"OPERATIONAL SUPPORT",
	"COEI-",
	"BII-",
}

// pageLines is the gridded content of one source page.
type pageLines struct {
	number int // 0-based page index within the document
	lines  []Line
}

// rowState is the extractor's position in the continuation-row state
// machine.
type rowState int

const (
	awaitingRow rowState = iota
	accumulatingContinuation
)

// extractRows walks the data rows of every page, applying the format's
// selection rule and folding continuation rows into the preceding
// item's description. Row-level problems become warnings; only a
// missing mandatory header column aborts.
func extractRows(pages []pageLines, spec *formatSpec) ([]Item, []string, error) {
	items := []Item{}
	warnings := []string{}

	for _, page := range pages {
		headerIdx := -1
		for i, line := range page.lines {
			if headerSignature(line, spec.kind) {
				headerIdx = i
				break
			}
		}
		if headerIdx < 0 {
			// Page without a table, e.g. a cover or remarks page.
			continue
		}

		cm, err := mapColumns(page.lines[headerIdx], spec)
		if err != nil {
			return nil, nil, err
		}

		state := awaitingRow
		for rowIdx, line := range page.lines[headerIdx+1:] {
			cells := cm.cellsFor(line)
			ref := fmt.Sprintf("page %d row %d", page.number+1, rowIdx+1)

			if spec.selects(cells) {
				item, itemWarnings, ok := buildItem(cells, line, ref)
				warnings = append(warnings, itemWarnings...)
				if ok {
					items = append(items, item)
					state = accumulatingContinuation
				} else {
					state = awaitingRow
				}
				continue
			}

			if state == accumulatingContinuation && isContinuation(cells) {
				last := &items[len(items)-1]
				last.Description = capDescription(last.Description + " " + cleanDescription(cells[fieldDescription]))
				continue
			}

			state = awaitingRow
		}
	}

	if len(items) == 0 {
		warnings = append(warnings, "no items found; check the start page or verify the document is a GCSS-Army BOM")
	}
	return items, warnings, nil
}

// isContinuation reports whether a non-selected row is a wrapped
// description fragment: text in the description column and nothing in
// any other mapped column.
func isContinuation(cells map[fieldName]string) bool {
	if strings.TrimSpace(cells[fieldDescription]) == "" {
		return false
	}
	for field, text := range cells {
		if field == fieldDescription {
			continue
		}
		if strings.TrimSpace(text) != "" {
			return false
		}
	}
	return true
}

// buildItem converts a selected row's cells into an Item, recovering
// optional fields and downgrading per-row problems to warnings.
func buildItem(cells map[fieldName]string, line Line, ref string) (Item, []string, bool) {
	var warnings []string

	desc := cleanDescription(cells[fieldDescription])
	if len(desc) < 3 {
		warnings = append(warnings, fmt.Sprintf("%s: skipped, no usable description", ref))
		return Item{}, warnings, false
	}
	for _, cat := range categoryRows {
		if strings.Contains(strings.ToUpper(desc), cat) {
			return Item{}, warnings, false
		}
	}

	nsn := extractNSN(cells[fieldNSN])
	if nsn == "" {
		// The NSN often hides in a neighboring cell or wrapped text.
		nsn = extractNSN(line.Text())
		if nsn == "" {
			warnings = append(warnings, fmt.Sprintf("%s: no NSN found for %q", ref, desc))
		}
	}

	qty, ok := parseQuantity(cells[fieldQuantity])
	if !ok {
		warnings = append(warnings, fmt.Sprintf("%s: unparsable quantity %q, defaulting to 0", ref, cells[fieldQuantity]))
	}

	return Item{
		Description:  capDescription(desc),
		NSN:          nsn,
		UnitOfIssue:  strings.TrimSpace(cells[fieldUnit]),
		Quantity:     qty,
		SourceLineNo: ref,
	}, warnings, true
}

// cleanDescription normalizes whitespace and strips trailing slash
// noise left by wrapped cells.
func cleanDescription(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(trailingSlashes.ReplaceAllString(s, ""))
}

func capDescription(s string) string {
	r := []rune(s)
	if len(r) > maxDescriptionLen {
		return string(r[:maxDescriptionLen])
	}
	return s
}

// extractNSN pulls a 9-digit NIIN out of free text. Both the bare
// 9-digit form and the dashed NSN form (FSC-CC-PPP-NNNN) occur in
// GCSS exports; for the dashed form the NIIN is the last nine digits.
func extractNSN(s string) string {
	if s == "" {
		return ""
	}
	if m := niinPattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	if m := nsnDashedPattern.FindStringSubmatch(s); m != nil {
		return m[1] + m[2] + m[3]
	}
	return ""
}

// parseQuantity parses a quantity cell. Placeholder text, blanks and
// anything non-numeric yield (0, false); callers record the warning.
func parseQuantity(s string) (int, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
