package plan

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dompet/dompet/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GeneratePlan(ctx context.Context, prompt string) (Plan, error)
	Available() bool
}

// ServiceImpl generates plans through a Model. Whether a model exists is
// decided once, at construction, and never changes afterwards.
type ServiceImpl struct {
	model       Model
	unavailable error
	extractor   *Extractor
	eventBus    *event_bus.EventBus
}

func NewService(model Model, extractor *Extractor, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{model: model, extractor: extractor, eventBus: eventBus}
}

// NewUnavailableService returns a service that fails every call with
// ErrModelUnavailable, wrapping cause.
func NewUnavailableService(cause error, eventBus *event_bus.EventBus) *ServiceImpl {
	if cause == nil {
		cause = errors.New("no model configured")
	}
	return &ServiceImpl{unavailable: cause, eventBus: eventBus}
}

func (s *ServiceImpl) Available() bool {
	return s.unavailable == nil
}

func (s *ServiceImpl) GeneratePlan(ctx context.Context, prompt string) (Plan, error) {
	if s.unavailable != nil {
		return Plan{}, fmt.Errorf("%w: %w", ErrModelUnavailable, s.unavailable)
	}
	if strings.TrimSpace(prompt) == "" {
		return Plan{}, ErrMissingPrompt
	}

	rawText, err := s.model.Generate(ctx, prompt)
	if err != nil {
		s.publish(ctx, event_bus.PlanFailed, event_bus.PlanFailedPayload{
			Reason: "upstream",
			Prompt: prompt,
			Err:    err,
		})
		return Plan{}, fmt.Errorf("%w: %w", ErrUpstreamFailure, err)
	}

	plan, err := s.extractor.Extract(rawText)
	if err != nil {
		payload := event_bus.PlanFailedPayload{Reason: "extraction", Prompt: prompt, RawText: rawText, Err: err}
		var extractionErr *ExtractionError
		if errors.As(err, &extractionErr) {
			payload.Candidate = extractionErr.Candidate
		}
		s.publish(ctx, event_bus.PlanFailed, payload)
		return Plan{}, err
	}

	s.publish(ctx, event_bus.PlanGenerated, event_bus.PlanGeneratedPayload{
		PromptLength: len(prompt),
		Strategy:     plan.Strategy,
	})
	return plan, nil
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, payload any) {
	if err := s.eventBus.Publish(event_bus.NewEvent(ctx, eventType, payload)); err != nil {
		log.Warnf("failed to publish %s event: %v", eventType, err)
	}
}
