// Package deck defines the content model exchanged between the upstream deck
// generator, the pagination engine and the slide renderer.
package deck

import (
	"fmt"
	"strings"
)

// BoxGroupSize is the only box group cardinality the grid layout renders.
const BoxGroupSize = 4

// BlockKind discriminates ContentBlock variants on the wire.
type BlockKind int

const (
	KindBullets BlockKind = iota
	KindTable
	KindBoxes
	KindParagraph
	KindPlaceholder
)

var kindNames = map[BlockKind]string{
	KindBullets:     "bullets",
	KindTable:       "table",
	KindBoxes:       "boxes",
	KindParagraph:   "paragraph",
	KindPlaceholder: "placeholder",
}

func (k BlockKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("BlockKind(%d)", int(k))
}

func ParseBlockKind(name string) (BlockKind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%q is not a valid BlockKind", name)
}

func (k BlockKind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("invalid BlockKind value %d", int(k))
	}
	return []byte(name), nil
}

func (k *BlockKind) UnmarshalText(text []byte) error {
	parsed, err := ParseBlockKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// BulletItem is a single list entry, optionally with second-level entries.
type BulletItem struct {
	Text     string   `json:"text"`
	SubItems []string `json:"sub_items,omitempty"`
}

// TableData holds a table as emitted by the generator. Rows are expected to
// have len(Headers) columns but the generator does not always comply - the
// engine normalizes before pagination.
type TableData struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// BoxItem is one tile of a fixed grid group.
type BoxItem struct {
	Text string `json:"text"`
}

// ContentBlock is a tagged union over the block variants. Exactly the fields
// relevant to Kind are populated, everything else stays zero.
type ContentBlock struct {
	Kind      BlockKind    `json:"kind"`
	Bullets   []BulletItem `json:"bullets,omitempty"`
	Table     *TableData   `json:"table,omitempty"`
	Boxes     []BoxItem    `json:"boxes,omitempty"`
	Paragraph string       `json:"paragraph,omitempty"`
	// Message carries diagnostic text for placeholder blocks. The renderer
	// must display it visibly - malformed content is never dropped silently.
	Message string `json:"message,omitempty"`
}

func Bullets(items []BulletItem) ContentBlock {
	return ContentBlock{Kind: KindBullets, Bullets: items}
}

func Table(t TableData) ContentBlock {
	return ContentBlock{Kind: KindTable, Table: &t}
}

func Boxes(items []BoxItem) ContentBlock {
	return ContentBlock{Kind: KindBoxes, Boxes: items}
}

func Paragraph(text string) ContentBlock {
	return ContentBlock{Kind: KindParagraph, Paragraph: text}
}

// Placeholder converts malformed content into an explicitly rendered block.
func Placeholder(format string, args ...any) ContentBlock {
	return ContentBlock{Kind: KindPlaceholder, Message: fmt.Sprintf(format, args...)}
}

// Validate checks the variant fields against Kind.
func (b ContentBlock) Validate() error {
	switch b.Kind {
	case KindBullets:
		if b.Table != nil || len(b.Boxes) != 0 || b.Paragraph != "" {
			return fmt.Errorf("bullets block carries foreign payload")
		}
	case KindTable:
		if b.Table == nil {
			return fmt.Errorf("table block without table payload")
		}
	case KindBoxes:
		if len(b.Boxes) == 0 {
			return fmt.Errorf("boxes block without tiles")
		}
	case KindParagraph:
		if strings.TrimSpace(b.Paragraph) == "" {
			return fmt.Errorf("paragraph block without text")
		}
	case KindPlaceholder:
		if b.Message == "" {
			return fmt.Errorf("placeholder block without message")
		}
	default:
		return fmt.Errorf("unknown block kind %d", int(b.Kind))
	}
	return nil
}
