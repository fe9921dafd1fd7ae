package category

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

type Category string

const (
	Food      Category = "Food"
	Transport Category = "Transport"
	Shopping  Category = "Shopping"
	Bills     Category = "Bills"
	Other     Category = "Other"
)

var ErrInvalidTaxonomy = errors.New("invalid taxonomy")

// KeywordRule maps a category to its trigger words. A rule without keywords
// is the fallback and can never match on its own.
type KeywordRule struct {
	Category Category
	Keywords []string
}

// Taxonomy is an ordered, immutable list of keyword rules. Rule order is a
// priority order: the first rule with a matching keyword wins.
type Taxonomy struct {
	rules    []KeywordRule
	fallback Category
}

// DefaultTaxonomy returns the built-in rules. Reordering them changes which
// category wins for descriptions matching several rules.
func DefaultTaxonomy() *Taxonomy {
	t, err := NewTaxonomy(
		KeywordRule{Category: Food, Keywords: []string{"makan", "nasi", "kopi", "resto", "warung", "sarapan", "lunch", "dinner"}},
		KeywordRule{Category: Transport, Keywords: []string{"ojek", "grab", "gojek", "angkot", "bus", "parkir", "taksi"}},
		KeywordRule{Category: Shopping, Keywords: []string{"baju", "sepatu", "belanja", "shopping", "mall"}},
		KeywordRule{Category: Bills, Keywords: []string{"listrik", "pulsa", "tagihan", "bayar", "internet"}},
		KeywordRule{Category: Other},
	)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTaxonomy validates rules and copies them. Exactly one rule, the last
// one, must be keyword-less; its category becomes the fallback.
func NewTaxonomy(rules ...KeywordRule) (*Taxonomy, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: no rules", ErrInvalidTaxonomy)
	}
	seen := make(map[Category]bool, len(rules))
	copied := make([]KeywordRule, 0, len(rules))
	for i, rule := range rules {
		if rule.Category == "" {
			return nil, fmt.Errorf("%w: rule %d has no category", ErrInvalidTaxonomy, i)
		}
		if seen[rule.Category] {
			return nil, fmt.Errorf("%w: category %s declared twice", ErrInvalidTaxonomy, rule.Category)
		}
		seen[rule.Category] = true

		last := i == len(rules)-1
		if last != (len(rule.Keywords) == 0) {
			return nil, fmt.Errorf("%w: only the last rule may (and must) have no keywords, got %s with %d",
				ErrInvalidTaxonomy, rule.Category, len(rule.Keywords))
		}
		for _, kw := range rule.Keywords {
			if err := validateKeyword(kw); err != nil {
				return nil, fmt.Errorf("%w: category %s: %v", ErrInvalidTaxonomy, rule.Category, err)
			}
		}
		copied = append(copied, KeywordRule{Category: rule.Category, Keywords: slices.Clone(rule.Keywords)})
	}
	return &Taxonomy{rules: copied, fallback: copied[len(copied)-1].Category}, nil
}

func validateKeyword(kw string) error {
	if kw == "" {
		return errors.New("empty keyword")
	}
	if kw != strings.ToLower(kw) {
		return fmt.Errorf("keyword %q is not lowercase", kw)
	}
	first, _ := utf8.DecodeRuneInString(kw)
	last, _ := utf8.DecodeLastRuneInString(kw)
	if !isWordRune(first) || !isWordRune(last) {
		return fmt.Errorf("keyword %q must start and end with a word character", kw)
	}
	return nil
}

// Rules returns a copy of the rules in priority order.
func (t *Taxonomy) Rules() []KeywordRule {
	rules := make([]KeywordRule, 0, len(t.rules))
	for _, rule := range t.rules {
		rules = append(rules, KeywordRule{Category: rule.Category, Keywords: slices.Clone(rule.Keywords)})
	}
	return rules
}

func (t *Taxonomy) Fallback() Category {
	return t.fallback
}
