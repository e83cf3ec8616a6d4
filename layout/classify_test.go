package layout

import (
	"strings"
	"testing"

	"deckfit/config"
	"deckfit/deck"
)

func testLimits() config.LimitsConfig {
	return config.LimitsConfig{
		HeightCeiling:          420,
		HeightBuffer:           40,
		SoftCountCeiling:       4,
		HardCountCeiling:       8,
		ExtremeItemCharCeiling: 300,
		TableRowLimit:          4,
		BoxCharBudget:          100,
	}
}

func TestClassify(t *testing.T) {
	lim := testLimits()

	tests := []struct {
		name     string
		stats    Stats
		overflow bool
		reason   Reason
	}{
		{"fits comfortably", Stats{ItemCount: 3, EstimatedHeight: 200}, false, ReasonNone},
		{"exactly at ceiling", Stats{ItemCount: 4, EstimatedHeight: 420}, false, ReasonNone},
		{"inside buffer zone", Stats{ItemCount: 4, EstimatedHeight: 455}, false, ReasonNone},
		{"just past buffer", Stats{ItemCount: 4, EstimatedHeight: 461}, true, ReasonHeight},
		{"way too tall", Stats{ItemCount: 5, EstimatedHeight: 900}, true, ReasonHeight},
		{"too many items", Stats{ItemCount: 9, EstimatedHeight: 300}, true, ReasonCount},
		{"at hard count ceiling", Stats{ItemCount: 8, EstimatedHeight: 300}, false, ReasonNone},
		{"extreme single item", Stats{ItemCount: 1, MaxItemChars: 301, EstimatedHeight: 100}, true, ReasonItemLength},
		{"height wins over count", Stats{ItemCount: 9, EstimatedHeight: 1000}, true, ReasonHeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Classify(tt.stats, lim)
			if v.Overflow != tt.overflow {
				t.Errorf("Overflow = %v, want %v", v.Overflow, tt.overflow)
			}
			if v.Reason != tt.reason {
				t.Errorf("Reason = %v, want %v", v.Reason, tt.reason)
			}
		})
	}
}

func TestStatsFor(t *testing.T) {
	est := NewHeightEstimator(testEstimatorConfig())

	items := []deck.BulletItem{
		{Text: strings.Repeat("a", 20)},
		{Text: strings.Repeat("b", 50), SubItems: []string{strings.Repeat("c", 30)}},
		{Text: strings.Repeat("d", 10)},
	}

	s := StatsFor(items, est)

	if s.ItemCount != 3 {
		t.Errorf("ItemCount = %d, want 3", s.ItemCount)
	}
	if s.TotalChars != 20+50+30+10 {
		t.Errorf("TotalChars = %d, want %d", s.TotalChars, 20+50+30+10)
	}
	// sub-item text does not count toward the per-item maximum
	if s.MaxItemChars != 50 {
		t.Errorf("MaxItemChars = %d, want 50", s.MaxItemChars)
	}
	if s.EstimatedHeight != est.Estimate(items) {
		t.Errorf("EstimatedHeight = %d, want %d", s.EstimatedHeight, est.Estimate(items))
	}
}

func TestReason_String(t *testing.T) {
	tests := []struct {
		reason   Reason
		expected string
	}{
		{ReasonNone, "none"},
		{ReasonHeight, "height"},
		{ReasonCount, "count"},
		{ReasonItemLength, "item-length"},
		{Reason(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.reason.String(); got != tt.expected {
			t.Errorf("Reason(%d).String() = %q, want %q", int(tt.reason), got, tt.expected)
		}
	}
}
