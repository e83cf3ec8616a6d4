// Package text wraps the sentence tokenizer used by paragraph conversion.
package text

import (
	"unicode"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

type Splitter struct {
	*sentences.DefaultSentenceTokenizer
}

// NewSplitter returns sentence tokenizer for the requested language or nil
// when no trained model is available. A nil Splitter is usable - it treats
// the whole input as a single sentence.
func NewSplitter(lang language.Tag, log *zap.Logger) *Splitter {
	base, confidence := lang.Base()
	if confidence == language.No {
		log.Warn("Unable to determine language base, turning off sentence splitting", zap.Stringer("tag", lang))
		return nil
	}

	// Only the English model ships with the tokenizer module. Other
	// languages fall back to whole-paragraph handling.
	if base.String() != "en" {
		log.Warn("No sentence tokenizer model for language, turning off sentence splitting", zap.Stringer("language", lang))
		return nil
	}

	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		log.Warn("Unable to load sentence tokenizer data", zap.Stringer("tag", lang), zap.Error(err))
		return nil
	}
	return &Splitter{tok}
}

// Split returns slice of sentences.
func (s *Splitter) Split(in string) []string {

	var result []string
	if s == nil {
		// sentence tokenizer is off
		return append(result, in)
	}

	for _, sentence := range s.Tokenize(in) {
		result = append(result, sentence.Text)
	}

	// The tokenizer attributes sentence trailing spaces to the next
	// sentence. Move them back so every element is self-contained.
	for i := range len(result) - 1 {
		for idx, sym := range result[i+1] {
			if !unicode.IsSpace(sym) {
				result[i] = result[i] + result[i+1][0:idx]
				result[i+1] = result[i+1][idx:]
				break
			}
		}
	}
	return result
}
