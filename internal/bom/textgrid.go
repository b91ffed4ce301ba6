package bom

import (
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// lineTolerance is the maximum Y distance between two text runs
	// that still land on the same visual line.
	lineTolerance = 2.0

	// wordGapFactor scales the font size into the maximum horizontal
	// gap between runs that still belong to the same word.
	wordGapFactor = 0.35

	// minWordGap keeps word joining sane for tiny or missing font sizes.
	minWordGap = 1.5
)

// Word is a horizontally-merged run of text on a line.
type Word struct {
	Text string
	X    float64 // left edge
	W    float64 // width
}

// Line is one visual row of a page, ordered left to right.
type Line struct {
	Y     float64
	Words []Word
}

// Text returns the line's words joined by single spaces.
func (l Line) Text() string {
	parts := make([]string, 0, len(l.Words))
	for _, w := range l.Words {
		parts = append(parts, w.Text)
	}
	return strings.Join(parts, " ")
}

// gridPage converts the positioned text runs of a PDF page into lines
// ordered top to bottom, with runs merged into words per line. The pdf
// library emits run-level (often glyph-level) fragments whose order
// follows the content stream, not reading order, so everything is
// re-bucketed by coordinates first.
func gridPage(texts []pdf.Text) []Line {
	type rawLine struct {
		y    float64
		runs []pdf.Text
	}

	var lines []rawLine
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		placed := false
		for i := range lines {
			if abs(lines[i].y-t.Y) < lineTolerance {
				lines[i].runs = append(lines[i].runs, t)
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, rawLine{y: t.Y, runs: []pdf.Text{t}})
		}
	}

	// Top of page first: PDF user space has Y increasing upward.
	sort.Slice(lines, func(i, j int) bool { return lines[i].y > lines[j].y })

	out := make([]Line, 0, len(lines))
	for _, rl := range lines {
		sort.SliceStable(rl.runs, func(i, j int) bool { return rl.runs[i].X < rl.runs[j].X })
		out = append(out, Line{Y: rl.y, Words: mergeRuns(rl.runs)})
	}
	return out
}

// mergeRuns joins adjacent runs into words when the gap between the
// end of one run and the start of the next is small relative to the
// font size. Runs must already be sorted by X.
func mergeRuns(runs []pdf.Text) []Word {
	var words []Word
	for _, r := range runs {
		gap := wordGapFactor * r.FontSize
		if gap < minWordGap {
			gap = minWordGap
		}
		if n := len(words); n > 0 && r.X-(words[n-1].X+words[n-1].W) <= gap {
			words[n-1].Text += r.S
			words[n-1].W = r.X + r.W - words[n-1].X
			continue
		}
		words = append(words, Word{Text: r.S, X: r.X, W: r.W})
	}
	for i := range words {
		words[i].Text = strings.TrimSpace(words[i].Text)
	}
	return words
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
