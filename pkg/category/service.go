package category

import (
	"context"

	"github.com/dompet/dompet/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Classify(ctx context.Context, description string) Category
	ListRules(ctx context.Context) []KeywordRule
}

type ServiceImpl struct {
	classifier *Classifier
	taxonomy   *Taxonomy
	eventBus   *event_bus.EventBus
}

func NewService(taxonomy *Taxonomy, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{
		classifier: NewClassifier(taxonomy),
		taxonomy:   taxonomy,
		eventBus:   eventBus,
	}
}

func (s *ServiceImpl) Classify(ctx context.Context, description string) Category {
	category := s.classifier.Classify(description)

	// Classification never fails; a subscriber error only costs us a counter.
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.DescriptionClassified,
		event_bus.DescriptionClassifiedPayload{Category: string(category)}))
	if err != nil {
		log.Warnf("failed to publish classification event: %v", err)
	}
	return category
}

func (s *ServiceImpl) ListRules(ctx context.Context) []KeywordRule {
	return s.taxonomy.Rules()
}
