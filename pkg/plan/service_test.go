package plan

import (
	"context"
	"errors"
	"testing"

	"github.com/dompet/dompet/internal/event_bus"
	"github.com/dompet/dompet/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

type recordedEvents struct {
	generated []event_bus.PlanGeneratedPayload
	failed    []event_bus.PlanFailedPayload
}

func setup(t *testing.T, model *StubModel) (*ServiceImpl, *recordedEvents) {
	bus := event_bus.NewEventBus(&utils.MockClock{})
	events := &recordedEvents{}
	event_bus.SubscribeTyped(bus, event_bus.PlanGenerated, func(e event_bus.EventT[event_bus.PlanGeneratedPayload]) error {
		events.generated = append(events.generated, e.Data)
		return nil
	})
	event_bus.SubscribeTyped(bus, event_bus.PlanFailed, func(e event_bus.EventT[event_bus.PlanFailedPayload]) error {
		events.failed = append(events.failed, e.Data)
		return nil
	})
	return NewService(model, NewExtractor(), bus), events
}

func TestServiceImpl_GeneratePlan(t *testing.T) {
	t.Run("should return the extracted plan", func(t *testing.T) {
		// given
		model := NewStubModel("```json\n{\"title\": \"Plan\"}\n```")
		service, events := setup(t, model)

		// when
		plan, err := service.GeneratePlan(ctx, "buat rencana 5 juta")

		// then
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"title": "Plan"}, plan.Value)
		assert.Equal(t, []string{"buat rencana 5 juta"}, model.Prompts())
		require.Len(t, events.generated, 1)
		assert.Equal(t, "fenced_json_block", events.generated[0].Strategy)
		assert.Empty(t, events.failed)
		assert.True(t, service.Available())
	})

	for name, prompt := range map[string]string{"empty": "", "blank": "  \n\t"} {
		t.Run("should reject "+name+" prompt without calling the model", func(t *testing.T) {
			// given
			model := NewStubModel("{}")
			service, events := setup(t, model)

			// when
			_, err := service.GeneratePlan(ctx, prompt)

			// then
			assert.ErrorIs(t, err, ErrMissingPrompt)
			assert.Empty(t, model.Prompts())
			assert.Empty(t, events.failed)
		})
	}

	t.Run("should wrap model errors as upstream failures", func(t *testing.T) {
		// given
		model := NewStubModel("")
		model.Err = errors.New("quota exceeded")
		service, events := setup(t, model)

		// when
		_, err := service.GeneratePlan(ctx, "rencana")

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUpstreamFailure)
		assert.ErrorIs(t, err, model.Err)
		require.Len(t, events.failed, 1)
		assert.Equal(t, "upstream", events.failed[0].Reason)
	})

	t.Run("should report extraction failures with diagnostics", func(t *testing.T) {
		// given
		model := NewStubModel("```json\n{broken\n```")
		service, events := setup(t, model)

		// when
		_, err := service.GeneratePlan(ctx, "rencana")

		// then
		assert.ErrorIs(t, err, ErrMalformedJSON)
		require.Len(t, events.failed, 1)
		assert.Equal(t, "extraction", events.failed[0].Reason)
		assert.Equal(t, "```json\n{broken\n```", events.failed[0].RawText)
		assert.Equal(t, "{broken", events.failed[0].Candidate)
		assert.Empty(t, events.generated)
	})

	t.Run("should report replies without json", func(t *testing.T) {
		// given
		service, _ := setup(t, NewStubModel("tidak ada"))

		// when
		_, err := service.GeneratePlan(ctx, "rencana")

		// then
		assert.ErrorIs(t, err, ErrNoJSONFound)
	})
}

func TestUnavailableService(t *testing.T) {
	// given
	cause := errors.New("gemini API key is not configured")
	service := NewUnavailableService(cause, event_bus.NewEventBus(&utils.MockClock{}))

	// when
	_, errWithPrompt := service.GeneratePlan(ctx, "rencana")
	_, errWithoutPrompt := service.GeneratePlan(ctx, "")

	// then
	assert.False(t, service.Available())
	assert.ErrorIs(t, errWithPrompt, ErrModelUnavailable)
	assert.ErrorIs(t, errWithPrompt, cause)
	assert.ErrorIs(t, errWithoutPrompt, ErrModelUnavailable)
}
