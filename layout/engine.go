package layout

import (
	"fmt"

	"go.uber.org/zap"

	"deckfit/config"
	"deckfit/deck"
	"deckfit/deck/text"
)

// Engine is the stateless pagination pipeline. Every invocation is an
// independent, deterministic function from generated slides to slides that
// satisfy the configured limits - the renderer never re-checks or re-splits.
type Engine struct {
	limits   config.LimitsConfig
	parCfg   config.ParagraphConfig
	est      HeightEstimator
	splitter *text.Splitter
	log      *zap.Logger
}

type Option func(*Engine)

// WithEstimator replaces the character-count height heuristic, e.g. with
// real font metrics.
func WithEstimator(est HeightEstimator) Option {
	return func(e *Engine) { e.est = est }
}

func New(cfg config.PaginationConfig, splitter *text.Splitter, log *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		limits:   cfg.Limits,
		parCfg:   cfg.Paragraph,
		est:      NewHeightEstimator(cfg.Estimator),
		splitter: splitter,
		log:      log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Paginate runs the full pipeline over all slides in document order and
// returns the paginated slides together with every corrective adjustment
// that was applied. Identical input and configuration always produce
// identical output.
func (e *Engine) Paginate(slides []deck.Slide) ([]deck.Slide, []Adjustment) {
	var (
		out         []deck.Slide
		adjustments []Adjustment
	)
	for _, s := range slides {
		fragments, adjs := e.paginateSlide(s)
		out = append(out, fragments...)
		adjustments = append(adjustments, adjs...)
	}
	return out, adjustments
}

// paginateSlide expands each block of one logical slide into fragments and
// reassembles them into slide-sized pieces. Blocks that fit accumulate on
// the current fragment; every extra fragment produced by a split opens a
// new one.
func (e *Engine) paginateSlide(s deck.Slide) ([]deck.Slide, []Adjustment) {
	var (
		fragments   [][]deck.ContentBlock
		cur         []deck.ContentBlock
		adjustments []Adjustment
	)

	for _, b := range s.Blocks {
		parts, adjs := e.expandBlock(b)
		adjustments = append(adjustments, adjs...)

		cur = append(cur, parts[0])
		if len(parts) == 1 {
			continue
		}
		fragments = append(fragments, cur)
		for _, mid := range parts[1 : len(parts)-1] {
			fragments = append(fragments, []deck.ContentBlock{mid})
		}
		cur = []deck.ContentBlock{parts[len(parts)-1]}
	}
	if len(cur) > 0 {
		fragments = append(fragments, cur)
	}

	for i := range adjustments {
		if adjustments[i].Slide == "" {
			adjustments[i].Slide = s.Title
		}
		adjustments[i].log(e.log)
	}

	if len(fragments) <= 1 {
		if len(fragments) == 1 {
			s.Blocks = fragments[0]
		}
		return []deck.Slide{s}, adjustments
	}

	total := len(fragments)
	split := Adjustment{
		Kind:   AdjustSplit,
		Slide:  s.Title,
		Before: "1 slide",
		After:  fmt.Sprintf("%d slides", total),
	}
	split.log(e.log)
	adjustments = append(adjustments, split)

	out := make([]deck.Slide, 0, total)
	for i, blocks := range fragments {
		out = append(out, deck.Slide{
			Title:     deck.PartTitle(s.Title, i+1, total),
			PartIndex: i + 1,
			PartTotal: total,
			Blocks:    blocks,
		})
	}
	return out, adjustments
}

// expandBlock normalizes one block and splits it when it overflows. Always
// returns at least one block - malformed content degrades to a visible
// placeholder, never to silence.
func (e *Engine) expandBlock(b deck.ContentBlock) ([]deck.ContentBlock, []Adjustment) {
	switch b.Kind {
	case deck.KindBullets:
		if len(b.Bullets) == 0 {
			return []deck.ContentBlock{deck.Placeholder("bullet list arrived empty")}, nil
		}
		return e.fitBullets(b.Bullets), nil

	case deck.KindParagraph:
		return e.expandParagraph(b.Paragraph)

	case deck.KindTable:
		return e.expandTable(*b.Table)

	case deck.KindBoxes:
		return e.expandBoxes(b.Boxes)

	default:
		return []deck.ContentBlock{b}, nil
	}
}

// fitBullets classifies a bullet list and distributes it when it overflows.
func (e *Engine) fitBullets(items []deck.BulletItem) []deck.ContentBlock {
	stats := StatsFor(items, e.est)
	verdict := Classify(stats, e.limits)
	if !verdict.Overflow {
		return []deck.ContentBlock{deck.Bullets(items)}
	}

	e.log.Debug("Bullet list overflows",
		zap.Stringer("reason", verdict.Reason),
		zap.Int("items", stats.ItemCount),
		zap.Int("height", stats.EstimatedHeight))

	groups := DistributeBullets(items, e.limits.SoftCountCeiling)
	blocks := make([]deck.ContentBlock, 0, len(groups))
	for _, group := range groups {
		blocks = append(blocks, deck.Bullets(group))
	}
	return blocks
}

func (e *Engine) expandParagraph(paragraph string) ([]deck.ContentBlock, []Adjustment) {
	if !NeedsConversion(paragraph, e.parCfg, e.splitter) {
		return []deck.ContentBlock{deck.Paragraph(paragraph)}, nil
	}

	items, adjustments := ConvertParagraph(paragraph, e.parCfg, e.splitter)
	if len(items) == 0 {
		return []deck.ContentBlock{deck.Placeholder("paragraph produced no content")}, adjustments
	}
	adjustments = append(adjustments, Adjustment{
		Kind:   AdjustParagraphConvert,
		Before: fmt.Sprintf("paragraph of %d chars", chars(paragraph)),
		After:  fmt.Sprintf("%d bullets", len(items)),
	})
	// converted text re-enters the classifier and may still split
	return e.fitBullets(items), adjustments
}

func (e *Engine) expandTable(t deck.TableData) ([]deck.ContentBlock, []Adjustment) {
	pages, norm, err := PaginateTable(t, e.limits.TableRowLimit)
	if err != nil {
		return []deck.ContentBlock{deck.Placeholder("table cannot be rendered: %d columns, %d rows", len(t.Headers), len(t.Rows))}, nil
	}

	var adjustments []Adjustment
	if norm.DroppedHeaderRow {
		adjustments = append(adjustments, Adjustment{
			Kind:   AdjustDuplicateHeader,
			Before: fmt.Sprintf("%d rows, first duplicates headers", len(t.Rows)),
			After:  fmt.Sprintf("%d rows", len(t.Rows)-1),
		})
	}
	if norm.RaggedRows > 0 {
		adjustments = append(adjustments, Adjustment{
			Kind:   AdjustRaggedRow,
			Before: fmt.Sprintf("%d rows of wrong width", norm.RaggedRows),
			After:  fmt.Sprintf("all rows at %d columns", len(t.Headers)),
		})
	}

	blocks := make([]deck.ContentBlock, 0, len(pages))
	for _, page := range pages {
		blocks = append(blocks, deck.Table(deck.TableData{Headers: page.Headers, Rows: page.Rows}))
	}
	return blocks, adjustments
}

func (e *Engine) expandBoxes(boxes []deck.BoxItem) ([]deck.ContentBlock, []Adjustment) {
	if len(boxes) != deck.BoxGroupSize {
		return []deck.ContentBlock{deck.Placeholder("box group has %d tiles, expected %d", len(boxes), deck.BoxGroupSize)}, nil
	}

	var adjustments []Adjustment
	out := make([]deck.BoxItem, len(boxes))
	for i, box := range boxes {
		truncated, changed := TruncateBoxText(box.Text, e.limits.BoxCharBudget)
		out[i] = deck.BoxItem{Text: truncated}
		if changed {
			adjustments = append(adjustments, Adjustment{
				Kind:   AdjustBoxTruncate,
				Before: box.Text,
				After:  truncated,
			})
		}
	}
	return []deck.ContentBlock{deck.Boxes(out)}, adjustments
}
