package activity

import (
	"net/http"
	"time"

	"github.com/dompet/dompet/internal/rest"
)

type SnapshotDTO struct {
	Since           time.Time      `json:"since"`
	UptimeSeconds   int64          `json:"uptime_seconds"`
	LastActivity    *time.Time     `json:"last_activity,omitempty"`
	Classifications map[string]int `json:"classifications"`
	Predictions     int            `json:"predictions"`
	PlansGenerated  int            `json:"plans_generated"`
	PlanFailures    map[string]int `json:"plan_failures"`
}

type Handler struct {
	recorder *Recorder
}

func NewHandler(recorder *Recorder) *Handler {
	return &Handler{recorder}
}

// GetActivity godoc
// @Summary Activity counters
// @Description Requests handled per operation since the process started
// @Tags Activity
// @Produce json
// @Success 200 {object} SnapshotDTO
// @Router /api/activity [get]
func (handler *Handler) GetActivity(w http.ResponseWriter, r *http.Request) {
	snapshot := handler.recorder.Snapshot()
	dto := SnapshotDTO{
		Since:           snapshot.Since,
		UptimeSeconds:   int64(handler.recorder.Uptime().Seconds()),
		Classifications: snapshot.Classifications,
		Predictions:     snapshot.Predictions,
		PlansGenerated:  snapshot.PlansGenerated,
		PlanFailures:    snapshot.PlanFailures,
	}
	if !snapshot.LastActivity.IsZero() {
		dto.LastActivity = &snapshot.LastActivity
	}
	rest.WriteJSON(w, http.StatusOK, dto)
}
