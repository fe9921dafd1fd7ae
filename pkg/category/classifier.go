package category

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Classifier assigns a category to free-text transaction descriptions.
// It holds no mutable state and may be shared between goroutines.
type Classifier struct {
	taxonomy *Taxonomy
}

func NewClassifier(taxonomy *Taxonomy) *Classifier {
	return &Classifier{taxonomy: taxonomy}
}

// Classify returns the category of the first rule, in taxonomy order, that has
// a keyword occurring as a whole word in description. It falls back to the
// taxonomy fallback (Other) when nothing matches.
func (c *Classifier) Classify(description string) Category {
	text := strings.ToLower(description)
	if text == "" {
		return c.taxonomy.fallback
	}
	for _, rule := range c.taxonomy.rules {
		for _, kw := range rule.Keywords {
			if containsWord(text, kw) {
				return rule.Category
			}
		}
	}
	return c.taxonomy.fallback
}

// containsWord reports whether word occurs in text bounded by non-word runes
// or the ends of text.
func containsWord(text, word string) bool {
	idx := 0
	for idx <= len(text)-len(word) {
		pos := strings.Index(text[idx:], word)
		if pos < 0 {
			return false
		}
		start := idx + pos
		end := start + len(word)

		before, _ := utf8.DecodeLastRuneInString(text[:start])
		after, _ := utf8.DecodeRuneInString(text[end:])
		if (start == 0 || !isWordRune(before)) && (end == len(text) || !isWordRune(after)) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		idx = start + size
	}
	return false
}

// isWordRune reports letters, numbers (Nd, Nl, No) and underscore. Combining
// marks are not word runes.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
