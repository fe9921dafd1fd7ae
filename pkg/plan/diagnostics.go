package plan

import (
	"github.com/dompet/dompet/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

// LogFailures logs every failed plan generation with the raw model output.
func LogFailures(bus *event_bus.EventBus) (unsubscribe func()) {
	return event_bus.SubscribeTyped(bus, event_bus.PlanFailed,
		func(e event_bus.EventT[event_bus.PlanFailedPayload]) error {
			log.WithFields(log.Fields{
				"reason":    e.Data.Reason,
				"prompt":    e.Data.Prompt,
				"raw_text":  e.Data.RawText,
				"candidate": e.Data.Candidate,
			}).Warnf("plan generation failed: %v", e.Data.Err)
			return nil
		})
}
