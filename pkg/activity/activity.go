package activity

import (
	"maps"
	"sync"
	"time"

	"github.com/dompet/dompet/internal/event_bus"
	"github.com/dompet/dompet/internal/utils"
)

// Snapshot is a point-in-time copy of the counters since process start.
type Snapshot struct {
	Since           time.Time
	LastActivity    time.Time
	Classifications map[string]int
	Predictions     int
	PlansGenerated  int
	PlanFailures    map[string]int
}

// Recorder counts domain events published on the bus. Counters live only in
// memory and reset on restart.
type Recorder struct {
	mu              sync.Mutex
	clock           utils.Clock
	since           time.Time
	lastActivity    time.Time
	classifications map[string]int
	predictions     int
	plansGenerated  int
	planFailures    map[string]int
}

func NewRecorder(clock utils.Clock) *Recorder {
	return &Recorder{
		clock:           clock,
		since:           clock.Now(),
		classifications: make(map[string]int),
		planFailures:    make(map[string]int),
	}
}

// Subscribe attaches the recorder to the bus and returns a function that
// detaches it.
func (r *Recorder) Subscribe(bus *event_bus.EventBus) (unsubscribe func()) {
	unsubscribers := []func(){
		event_bus.SubscribeTyped(bus, event_bus.DescriptionClassified,
			func(e event_bus.EventT[event_bus.DescriptionClassifiedPayload]) error {
				r.record(e.Timestamp, func() { r.classifications[e.Data.Category]++ })
				return nil
			}),
		event_bus.SubscribeTyped(bus, event_bus.BudgetPredicted,
			func(e event_bus.EventT[event_bus.BudgetPredictedPayload]) error {
				r.record(e.Timestamp, func() { r.predictions++ })
				return nil
			}),
		event_bus.SubscribeTyped(bus, event_bus.PlanGenerated,
			func(e event_bus.EventT[event_bus.PlanGeneratedPayload]) error {
				r.record(e.Timestamp, func() { r.plansGenerated++ })
				return nil
			}),
		event_bus.SubscribeTyped(bus, event_bus.PlanFailed,
			func(e event_bus.EventT[event_bus.PlanFailedPayload]) error {
				r.record(e.Timestamp, func() { r.planFailures[e.Data.Reason]++ })
				return nil
			}),
	}
	return func() {
		for _, unsubscribe := range unsubscribers {
			unsubscribe()
		}
	}
}

func (r *Recorder) record(at time.Time, update func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	update()
	if at.After(r.lastActivity) {
		r.lastActivity = at
	}
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{
		Since:           r.since,
		LastActivity:    r.lastActivity,
		Classifications: maps.Clone(r.classifications),
		Predictions:     r.predictions,
		PlansGenerated:  r.plansGenerated,
		PlanFailures:    maps.Clone(r.planFailures),
	}
}

// Uptime is measured against the recorder's clock.
func (r *Recorder) Uptime() time.Duration {
	return r.clock.Now().Sub(r.since)
}
