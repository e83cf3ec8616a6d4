package layout

import (
	"go.uber.org/zap"
)

// AdjustmentKind enumerates expected corrective actions the engine applies
// to unclean generator output. Adjustments are not errors - they are logged
// and reported so tuning passes can audit what was changed.
type AdjustmentKind int

const (
	AdjustDuplicateHeader AdjustmentKind = iota
	AdjustRaggedRow
	AdjustBoxTruncate
	AdjustParagraphConvert
	AdjustBulletMerge
	AdjustSplit
)

func (k AdjustmentKind) String() string {
	switch k {
	case AdjustDuplicateHeader:
		return "duplicate-header"
	case AdjustRaggedRow:
		return "ragged-row"
	case AdjustBoxTruncate:
		return "box-truncate"
	case AdjustParagraphConvert:
		return "paragraph-convert"
	case AdjustBulletMerge:
		return "bullet-merge"
	case AdjustSplit:
		return "split"
	}
	return "unknown"
}

// Adjustment describes one corrective action: which slide it touched and a
// short before/after summary for the audit trail.
type Adjustment struct {
	Kind   AdjustmentKind
	Slide  string
	Before string
	After  string
}

func (a Adjustment) log(log *zap.Logger) {
	log.Info("Corrective adjustment",
		zap.Stringer("kind", a.Kind),
		zap.String("slide", a.Slide),
		zap.String("before", a.Before),
		zap.String("after", a.After))
}
