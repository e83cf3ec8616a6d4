// Package layout implements the content-fitting and pagination engine: it
// decides whether generated content overflows the slide canvas and splits it
// deterministically when it does.
package layout

import (
	"unicode/utf8"

	"deckfit/config"
	"deckfit/deck"
)

// HeightEstimator converts text quantity into estimated vertical footprint
// in canonical layout units. It is an interface so the character-count
// heuristic can later be replaced with real font metrics without touching
// the classifier or the distributor.
type HeightEstimator interface {
	Estimate(items []deck.BulletItem) int
}

type charEstimator struct {
	cfg config.EstimatorConfig
}

// NewHeightEstimator returns the character-count estimator. It is monotonic:
// growing any item never shrinks the estimate.
func NewHeightEstimator(cfg config.EstimatorConfig) HeightEstimator {
	return &charEstimator{cfg: cfg}
}

func (e *charEstimator) Estimate(items []deck.BulletItem) int {
	height := 0
	for _, it := range items {
		height += ceilDiv(chars(it.Text), e.cfg.MainCharsPerLine) * e.cfg.MainLineHeight
		for _, sub := range it.SubItems {
			height += ceilDiv(chars(sub), e.cfg.SubCharsPerLine) * e.cfg.SubLineHeight
		}
		// items with sub-entries get extra visual separation
		if len(it.SubItems) > 0 {
			height += e.cfg.ItemSpacingWithSubs
		} else {
			height += e.cfg.ItemSpacing
		}
	}
	return height
}

func chars(s string) int {
	return utf8.RuneCountInString(s)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
