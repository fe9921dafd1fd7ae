package plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Plan is a budget plan as produced by the model. Its shape is whatever the
// model returned; only JSON validity is guaranteed. Numbers are kept as
// json.Number so they are written back exactly as received.
type Plan struct {
	Value    any
	Strategy string
}

// Strategy isolates an extraction candidate from raw model output.
type Strategy struct {
	Name string
	Find func(raw string) (string, bool)
}

var (
	fencedJSONPattern  = regexp.MustCompile("(?is)```json\\b(.*?)```")
	bracketSpanPattern = regexp.MustCompile(`(?s)(\[.*\]|\{.*\})`)
)

// FencedJSONBlock takes the body of the first ```json fenced block.
var FencedJSONBlock = Strategy{
	Name: "fenced_json_block",
	Find: func(raw string) (string, bool) {
		match := fencedJSONPattern.FindStringSubmatch(raw)
		if match == nil {
			return "", false
		}
		return strings.TrimSpace(match[1]), true
	},
}

// BracketSpan takes the span from the first [ or { to the last matching
// closer of the same kind.
var BracketSpan = Strategy{
	Name: "bracket_span",
	Find: func(raw string) (string, bool) {
		match := bracketSpanPattern.FindString(raw)
		return match, match != ""
	},
}

func DefaultStrategies() []Strategy {
	return []Strategy{FencedJSONBlock, BracketSpan}
}

// Extractor turns raw model replies into plans. It is immutable and safe for
// concurrent use.
type Extractor struct {
	strategies []Strategy
}

// NewExtractor uses the given strategies in order, or DefaultStrategies when
// none are given.
func NewExtractor(strategies ...Strategy) *Extractor {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &Extractor{strategies: append([]Strategy(nil), strategies...)}
}

func (e *Extractor) Extract(raw string) (Plan, error) {
	for _, strategy := range e.strategies {
		candidate, ok := strategy.Find(raw)
		if !ok {
			continue
		}
		value, err := decodeJSON(StripLineComments(candidate))
		if err != nil {
			return Plan{}, &ExtractionError{Kind: ErrMalformedJSON, RawText: raw, Candidate: candidate, Cause: err}
		}
		return Plan{Value: value, Strategy: strategy.Name}, nil
	}
	return Plan{}, &ExtractionError{Kind: ErrNoJSONFound, RawText: raw}
}

func decodeJSON(candidate string) (any, error) {
	decoder := json.NewDecoder(strings.NewReader(candidate))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty JSON candidate")
		}
		return nil, err
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after JSON value at offset %d", decoder.InputOffset())
	}
	return value, nil
}

// StripLineComments removes // comments running to the end of a line. Slashes
// inside JSON string literals are left alone.
func StripLineComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			b.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"' || c == '\n':
				inString = false
			}
			continue
		}
		if c == '/' && i+1 < len(s) && s[i+1] == '/' {
			end := strings.IndexByte(s[i:], '\n')
			if end < 0 {
				break
			}
			i += end - 1
			continue
		}
		if c == '"' {
			inString = true
		}
		b.WriteByte(c)
	}
	return b.String()
}
