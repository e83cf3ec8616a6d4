package deck

import "fmt"

// Slide is one fixed-size canvas worth of content. PartIndex/PartTotal are
// set only when the slide is a fragment of an originally single logical
// slide; both are 1-based.
type Slide struct {
	Title     string         `json:"title"`
	PartIndex int            `json:"part_index,omitempty"`
	PartTotal int            `json:"part_total,omitempty"`
	Blocks    []ContentBlock `json:"blocks"`
}

// PartTitle returns the base title annotated with the part suffix.
func PartTitle(base string, index, total int) string {
	if total <= 1 {
		return base
	}
	return fmt.Sprintf("%s (Part %d of %d)", base, index, total)
}
