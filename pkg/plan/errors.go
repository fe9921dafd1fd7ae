package plan

import (
	"errors"
	"fmt"
)

var (
	ErrModelUnavailable = errors.New("text generation model unavailable")
	ErrMissingPrompt    = errors.New("prompt is required")
	ErrUpstreamFailure  = errors.New("text generation failed")
	ErrNoJSONFound      = errors.New("no JSON found in model response")
	ErrMalformedJSON    = errors.New("malformed JSON in model response")
)

// ExtractionError is returned when a model reply cannot be turned into a plan.
// Kind is ErrNoJSONFound or ErrMalformedJSON; both Kind and Cause match with
// errors.Is.
type ExtractionError struct {
	Kind      error
	RawText   string
	Candidate string
	Cause     error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v: %v", e.Kind, e.Cause)
	}
	return e.Kind.Error()
}

func (e *ExtractionError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}
