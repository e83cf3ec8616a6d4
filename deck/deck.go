package deck

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Deck is the top level wire object: everything the generator produced for
// one document, in document order.
type Deck struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Slides []Slide `json:"slides"`
}

// Parse reads a deck from JSON. Decoding is strict - unknown fields mean the
// generator and this engine disagree about the wire format and that should
// surface loudly, not vanish.
func Parse(r io.Reader) (*Deck, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var d Deck
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("unable to decode deck: %w", err)
	}
	for i, s := range d.Slides {
		for j, b := range s.Blocks {
			if err := b.Validate(); err != nil {
				return nil, fmt.Errorf("slide %d block %d: %w", i, j, err)
			}
		}
	}
	return &d, nil
}

// NormalizeID makes sure deck ID is a valid UUID, correcting it when the
// generator sent garbage.
func (d *Deck) NormalizeID(log *zap.Logger) {
	if _, err := uuid.Parse(d.ID); err == nil {
		return
	}
	id, err := uuid.NewV7()
	if err != nil {
		// v7 only fails when the entropy source is broken, fall back to v4 path
		id = uuid.New()
	}
	log.Warn("Deck has invalid ID, correcting", zap.String("old_id", d.ID), zap.Stringer("new_id", id))
	d.ID = id.String()
}

// Marshal renders the deck back to indented JSON for the renderer.
func (d *Deck) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("unable to encode deck: %w", err)
	}
	return data, nil
}
