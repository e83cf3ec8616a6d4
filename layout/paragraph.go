package layout

import (
	"fmt"
	"regexp"
	"strings"

	"deckfit/config"
	"deckfit/deck"
	"deckfit/deck/text"
)

// enumMarker matches explicit list markers at line starts: "1." / "2)" and
// common bullet glyphs.
var (
	enumMarker     = regexp.MustCompile(`(?m)^[ \t]*(?:\d{1,3}[.)、．]|[-*•·])[ \t]+`)
	paragraphBreak = regexp.MustCompile(`\n[ \t]*\n`)
)

// NeedsConversion reports whether free text should be decomposed into a
// bullet list before classification. Any single trigger suffices.
func NeedsConversion(paragraph string, cfg config.ParagraphConfig, splitter *text.Splitter) bool {
	p := strings.TrimSpace(paragraph)
	if p == "" {
		return false
	}
	switch {
	case chars(p) > cfg.CharThreshold:
		return true
	case len(enumMarker.FindAllStringIndex(p, -1)) >= 2:
		return true
	case len(paragraphBreak.FindAllStringIndex(p, -1)) >= 1:
		return true
	case len(splitter.Split(p)) > cfg.SentenceThreshold:
		return true
	}
	return false
}

// ConvertParagraph decomposes long free text into an itemized bullet list.
// Splitting precedence: explicit enumerated markers, then blank-line
// paragraph breaks, then sentence boundaries - the coarsest strategy that
// yields at least two items wins. Items are cleaned of trailing terminal
// punctuation (bullets carry none) and capped at the per-bullet budget;
// items beyond the maximum are merged into the final bullet so no content
// is silently dropped.
func ConvertParagraph(paragraph string, cfg config.ParagraphConfig, splitter *text.Splitter) ([]deck.BulletItem, []Adjustment) {
	p := strings.TrimSpace(paragraph)
	if p == "" {
		return nil, nil
	}

	parts := splitByMarkers(p)
	if len(parts) < 2 {
		parts = splitNonEmpty(paragraphBreak.Split(p, -1))
	}
	if len(parts) < 2 {
		parts = splitNonEmpty(splitter.Split(p))
	}

	var adjustments []Adjustment

	items := make([]deck.BulletItem, 0, len(parts))
	for _, part := range parts {
		cleaned := cleanBulletText(part)
		if cleaned == "" {
			continue
		}
		capped, truncated := TruncateBoxText(cleaned, cfg.BulletCharBudget)
		if truncated {
			adjustments = append(adjustments, Adjustment{
				Kind:   AdjustBoxTruncate,
				Before: cleaned,
				After:  capped,
			})
		}
		items = append(items, deck.BulletItem{Text: capped})
	}

	if len(items) > cfg.MaxBullets {
		merged := items[cfg.MaxBullets-1].Text
		for _, extra := range items[cfg.MaxBullets:] {
			merged += "; " + extra.Text
		}
		adjustments = append(adjustments, Adjustment{
			Kind:   AdjustBulletMerge,
			Before: fmt.Sprintf("%d bullets", len(items)),
			After:  fmt.Sprintf("%d bullets, excess merged into the last one", cfg.MaxBullets),
		})
		items = append(items[:cfg.MaxBullets-1], deck.BulletItem{Text: merged})
	}
	return items, adjustments
}

// splitByMarkers cuts text at explicit enumeration markers. Text before the
// first marker becomes its own item when present.
func splitByMarkers(p string) []string {
	locs := enumMarker.FindAllStringIndex(p, -1)
	if len(locs) < 2 {
		return nil
	}

	var parts []string
	if head := strings.TrimSpace(p[:locs[0][0]]); head != "" {
		parts = append(parts, head)
	}
	for i, loc := range locs {
		end := len(p)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		parts = append(parts, p[loc[1]:end])
	}
	return splitNonEmpty(parts)
}

func splitNonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// cleanBulletText normalizes whitespace and strips trailing terminal
// punctuation. Question and exclamation marks stay - they carry meaning.
func cleanBulletText(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimRight(s, ".,;:。，；：")
}
