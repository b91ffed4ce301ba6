package bom

import (
	"regexp"
	"strings"
)

// maxEndItemDescLen caps the end-item description pulled from the
// header block.
const maxEndItemDescLen = 50

// The identification block above the table on the first page carries
// labeled values in free text. Labels tolerate a colon or plain
// whitespace separator.
var (
	endItemNIINPattern = regexp.MustCompile(`(?i)END\s*ITEM\s*NIIN[:\s]*(\d{9})`)
	linPattern         = regexp.MustCompile(`(?i)\bLIN[:\s]+([A-Z0-9]+)`)
	endItemDescPattern = regexp.MustCompile(`(?i)\bDESC[:\s]+([A-Z0-9 /\-]+)`)
	serialEquipPattern = regexp.MustCompile(`(?i)SER/EQUIP\s*NO[:\s]+([A-Z0-9]+)`)
	uicPattern         = regexp.MustCompile(`(?i)\bUIC[:\s]+([A-Z0-9]+)`)
	fePattern          = regexp.MustCompile(`(?i)\bFE[:\s]+(\d+)`)
)

// Metadata is the end-item identification block printed above the
// table on the first page of a BOM export. Every field is optional;
// absent labels stay empty without a warning.
type Metadata struct {
	EndItemNIIN        string `json:"end_item_niin,omitempty"`
	EndItemDescription string `json:"end_item_description,omitempty"`
	LIN                string `json:"lin,omitempty"`
	SerialEquipNo      string `json:"serial_equip_no,omitempty"`
	UIC                string `json:"uic,omitempty"`
	FE                 string `json:"fe,omitempty"`
}

// EndItem formats the metadata into a value suitable for the packing
// list's END ITEM header slot.
func (m Metadata) EndItem() string {
	if m.EndItemDescription != "" {
		return m.EndItemDescription
	}
	return m.EndItemNIIN
}

// extractMetadata scans a page's lines for the labeled identification
// fields. Values never cross a line boundary.
func extractMetadata(lines []Line) Metadata {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line.Text())
		b.WriteString("\n")
	}
	text := b.String()

	var md Metadata
	if m := endItemNIINPattern.FindStringSubmatch(text); m != nil {
		md.EndItemNIIN = m[1]
	}
	if m := linPattern.FindStringSubmatch(text); m != nil {
		md.LIN = m[1]
	}
	if m := endItemDescPattern.FindStringSubmatch(text); m != nil {
		desc := strings.TrimSpace(m[1])
		if r := []rune(desc); len(r) > maxEndItemDescLen {
			desc = string(r[:maxEndItemDescLen])
		}
		md.EndItemDescription = desc
	}
	if m := serialEquipPattern.FindStringSubmatch(text); m != nil {
		md.SerialEquipNo = m[1]
	}
	if m := uicPattern.FindStringSubmatch(text); m != nil {
		md.UIC = m[1]
	}
	if m := fePattern.FindStringSubmatch(text); m != nil {
		md.FE = m[1]
	}
	return md
}
