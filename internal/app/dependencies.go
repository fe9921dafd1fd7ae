package app

import (
	"context"
	"errors"

	"github.com/dompet/dompet/internal/config"
	"github.com/dompet/dompet/internal/event_bus"
	"github.com/dompet/dompet/internal/utils"
	"github.com/dompet/dompet/pkg/activity"
	"github.com/dompet/dompet/pkg/category"
	"github.com/dompet/dompet/pkg/forecast"
	"github.com/dompet/dompet/pkg/plan"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock    utils.Clock
	EventBus *event_bus.EventBus

	ActivityRecorder *activity.Recorder
	ActivityHandler  *activity.Handler

	CategoryService category.Service
	CategoryHandler *category.Handler

	ForecastService forecast.Service
	ForecastHandler *forecast.Handler

	PlanService plan.Service
	PlanHandler *plan.Handler

	HealthHandler *HealthHandler

	closers []func() error
}

// BuildDependencies initializes and wires all application services and handlers.
// The Gemini model is created once; if that fails, plan generation stays
// disabled until the process restarts.
func BuildDependencies(ctx context.Context, cfg config.Application) *Dependencies {
	gemini, err := plan.NewGeminiModel(ctx, cfg.Gemini)
	if err != nil {
		log.Warnf("plan generation disabled: %v", err)
		return WireDependencies(&utils.SystemClock{}, nil, err)
	}
	log.Infof("plan generation enabled with model %s", cfg.Gemini.Model)

	deps := WireDependencies(&utils.SystemClock{}, gemini, nil)
	deps.closers = append(deps.closers, gemini.Close)
	return deps
}

// WireDependencies builds the object graph around an already constructed
// model. A non-nil modelErr marks plan generation as unavailable.
func WireDependencies(clock utils.Clock, model plan.Model, modelErr error) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = clock
	deps.EventBus = event_bus.NewEventBus(deps.Clock)

	deps.ActivityRecorder = activity.NewRecorder(deps.Clock)
	deps.closers = append(deps.closers, unsubscriber(deps.ActivityRecorder.Subscribe(deps.EventBus)))
	deps.ActivityHandler = activity.NewHandler(deps.ActivityRecorder)
	deps.closers = append(deps.closers, unsubscriber(plan.LogFailures(deps.EventBus)))

	deps.CategoryService = category.NewService(category.DefaultTaxonomy(), deps.EventBus)
	deps.CategoryHandler = category.NewHandler(deps.CategoryService)

	deps.ForecastService = forecast.NewService(deps.Clock, deps.EventBus)
	deps.ForecastHandler = forecast.NewHandler(deps.ForecastService)

	if modelErr != nil || model == nil {
		if modelErr == nil {
			modelErr = errors.New("no model configured")
		}
		deps.PlanService = plan.NewUnavailableService(modelErr, deps.EventBus)
	} else {
		deps.PlanService = plan.NewService(model, plan.NewExtractor(), deps.EventBus)
	}
	deps.PlanHandler = plan.NewHandler(deps.PlanService)

	deps.HealthHandler = NewHealthHandler(deps.PlanService)

	return deps
}

// Close releases the model client and detaches bus subscribers.
func (deps *Dependencies) Close() error {
	var errs []error
	for i := len(deps.closers) - 1; i >= 0; i-- {
		if err := deps.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	deps.closers = nil
	return errors.Join(errs...)
}

func unsubscriber(unsubscribe func()) func() error {
	return func() error {
		unsubscribe()
		return nil
	}
}
