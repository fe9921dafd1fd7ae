package activity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dompet/dompet/internal/event_bus"
	"github.com/dompet/dompet/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*Recorder, *event_bus.EventBus, *utils.MockClock) {
	clock := &utils.MockClock{FixedNow: start}
	bus := event_bus.NewEventBus(clock)
	recorder := NewRecorder(clock)
	unsubscribe := recorder.Subscribe(bus)
	t.Cleanup(unsubscribe)
	return recorder, bus, clock
}

func publish(t *testing.T, bus *event_bus.EventBus, eventType event_bus.EventType, payload any) {
	require.NoError(t, bus.Publish(event_bus.NewEvent(context.Background(), eventType, payload)))
}

func TestRecorder(t *testing.T) {
	t.Run("should count published events", func(t *testing.T) {
		// given
		recorder, bus, clock := setup(t)

		// when
		publish(t, bus, event_bus.DescriptionClassified, event_bus.DescriptionClassifiedPayload{Category: "Food"})
		publish(t, bus, event_bus.DescriptionClassified, event_bus.DescriptionClassifiedPayload{Category: "Food"})
		publish(t, bus, event_bus.DescriptionClassified, event_bus.DescriptionClassifiedPayload{Category: "Other"})
		publish(t, bus, event_bus.BudgetPredicted, event_bus.BudgetPredictedPayload{})
		clock.Advance(time.Minute)
		publish(t, bus, event_bus.PlanGenerated, event_bus.PlanGeneratedPayload{})
		publish(t, bus, event_bus.PlanFailed, event_bus.PlanFailedPayload{Reason: "extraction"})

		// then
		snapshot := recorder.Snapshot()
		assert.Equal(t, map[string]int{"Food": 2, "Other": 1}, snapshot.Classifications)
		assert.Equal(t, 1, snapshot.Predictions)
		assert.Equal(t, 1, snapshot.PlansGenerated)
		assert.Equal(t, map[string]int{"extraction": 1}, snapshot.PlanFailures)
		assert.Equal(t, start, snapshot.Since)
		assert.Equal(t, start.Add(time.Minute), snapshot.LastActivity)
		assert.Equal(t, time.Minute, recorder.Uptime())
	})

	t.Run("snapshot should not alias internal state", func(t *testing.T) {
		// given
		recorder, bus, _ := setup(t)
		publish(t, bus, event_bus.DescriptionClassified, event_bus.DescriptionClassifiedPayload{Category: "Bills"})

		// when
		recorder.Snapshot().Classifications["Bills"] = 100

		// then
		assert.Equal(t, 1, recorder.Snapshot().Classifications["Bills"])
	})
}

func TestHandler_GetActivity(t *testing.T) {
	// given
	recorder, bus, clock := setup(t)
	handler := NewHandler(recorder)
	publish(t, bus, event_bus.BudgetPredicted, event_bus.BudgetPredictedPayload{})
	clock.Advance(90 * time.Second)
	req := httptest.NewRequest(http.MethodGet, "/api/activity", nil)
	w := httptest.NewRecorder()

	// when
	handler.GetActivity(w, req)

	// then
	assert.Equal(t, http.StatusOK, w.Code)
	var response SnapshotDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 1, response.Predictions)
	assert.Equal(t, int64(90), response.UptimeSeconds)
	require.NotNil(t, response.LastActivity)
	assert.True(t, start.Equal(*response.LastActivity))
}
