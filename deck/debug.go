package deck

import (
	"deckfit/utils/debug"
)

// String returns a readable tree of the whole deck. It exists solely for
// manual inspection of before/after pagination dumps in debug reports.
func (d *Deck) String() string {
	if d == nil {
		return "<nil Deck>"
	}

	tw := debug.NewTreeWriter()
	tw.Line(0, "Deck[%s] slides[%d]", d.ID, len(d.Slides))
	tw.TextBlock(0, "Title", d.Title)

	for i, s := range d.Slides {
		if s.PartTotal > 1 {
			tw.Line(1, "Slide[%d] part[%d/%d] blocks[%d]", i, s.PartIndex, s.PartTotal, len(s.Blocks))
		} else {
			tw.Line(1, "Slide[%d] blocks[%d]", i, len(s.Blocks))
		}
		tw.TextBlock(2, "Title", s.Title)

		for j, b := range s.Blocks {
			switch b.Kind {
			case KindBullets:
				tw.Line(2, "Block[%d] %s items[%d]", j, b.Kind, len(b.Bullets))
				for _, it := range b.Bullets {
					tw.TextBlock(3, "Item", it.Text)
					for _, sub := range it.SubItems {
						tw.TextBlock(4, "Sub", sub)
					}
				}
			case KindTable:
				tw.Line(2, "Block[%d] %s cols[%d] rows[%d]", j, b.Kind, len(b.Table.Headers), len(b.Table.Rows))
			case KindBoxes:
				tw.Line(2, "Block[%d] %s tiles[%d]", j, b.Kind, len(b.Boxes))
				for _, box := range b.Boxes {
					tw.TextBlock(3, "Tile", box.Text)
				}
			case KindParagraph:
				tw.Line(2, "Block[%d] %s chars[%d]", j, b.Kind, len([]rune(b.Paragraph)))
				tw.TextBlock(3, "Text", b.Paragraph)
			case KindPlaceholder:
				tw.Line(2, "Block[%d] %s", j, b.Kind)
				tw.TextBlock(3, "Message", b.Message)
			}
		}
	}
	return tw.String()
}
