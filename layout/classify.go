package layout

import (
	"deckfit/config"
	"deckfit/deck"
)

// Reason explains an overflow verdict. It is diagnostic only and never
// drives further logic.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonHeight
	ReasonCount
	ReasonItemLength
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonHeight:
		return "height"
	case ReasonCount:
		return "count"
	case ReasonItemLength:
		return "item-length"
	}
	return "unknown"
}

// Stats summarizes a bullet block for classification.
type Stats struct {
	ItemCount       int
	TotalChars      int
	MaxItemChars    int
	EstimatedHeight int
}

// Verdict is the classifier output.
type Verdict struct {
	Overflow bool
	Reason   Reason
}

// StatsFor gathers classifier input for a list of items. Character counts
// are rune counts; sub-item text counts toward the total but not toward the
// per-item maximum.
func StatsFor(items []deck.BulletItem, est HeightEstimator) Stats {
	s := Stats{
		ItemCount:       len(items),
		EstimatedHeight: est.Estimate(items),
	}
	for _, it := range items {
		c := chars(it.Text)
		s.TotalChars += c
		if c > s.MaxItemChars {
			s.MaxItemChars = c
		}
		for _, sub := range it.SubItems {
			s.TotalChars += chars(sub)
		}
	}
	return s
}

// Classify decides whether a block fits the canvas. Height is the primary
// signal; item count and extreme item length are safety nets for estimator
// blind spots. First match wins. The buffer keeps blocks sitting exactly at
// the ceiling from oscillating between fits and overflow.
func Classify(s Stats, lim config.LimitsConfig) Verdict {
	switch {
	case s.EstimatedHeight > lim.HeightCeiling+lim.HeightBuffer:
		return Verdict{Overflow: true, Reason: ReasonHeight}
	case s.ItemCount > lim.HardCountCeiling:
		return Verdict{Overflow: true, Reason: ReasonCount}
	case s.MaxItemChars > lim.ExtremeItemCharCeiling:
		return Verdict{Overflow: true, Reason: ReasonItemLength}
	}
	return Verdict{Reason: ReasonNone}
}
