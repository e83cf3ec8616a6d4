package layout

import (
	"strings"
	"unicode"
)

// Ellipsis marks truncated tile text.
const Ellipsis = "…"

// TruncateBoxText enforces a hard character budget on tile text. When the
// text exceeds the budget the cut happens at the nearest word boundary, but
// only if that boundary keeps at least 75% of the budget - otherwise the cut
// is exact. Budget is measured in runes. The result is never empty for
// non-empty input and never longer than budget plus the ellipsis marker.
func TruncateBoxText(text string, budget int) (string, bool) {
	runes := []rune(text)
	if len(runes) <= budget {
		return text, false
	}

	window := runes[:budget]
	cut := budget
	for i := budget - 1; i > 0; i-- {
		if unicode.IsSpace(window[i]) {
			if i >= budget*3/4 {
				cut = i
			}
			break
		}
	}

	out := strings.TrimRightFunc(string(window[:cut]), unicode.IsSpace)
	if out == "" {
		// pathological input of leading whitespace - fall back to exact cut
		out = string(window)
	}
	return out + Ellipsis, true
}
