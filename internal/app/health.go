package app

import (
	"net/http"

	"github.com/dompet/dompet/internal/rest"
)

type availability interface {
	Available() bool
}

type HealthDTO struct {
	Status         string `json:"status"`
	ModelAvailable bool   `json:"model_available"`
}

type HealthHandler struct {
	model availability
}

func NewHealthHandler(model availability) *HealthHandler {
	return &HealthHandler{model}
}

// Health godoc
// @Summary Liveness probe
// @Description The process is up. model_available is false when plan generation was disabled at startup.
// @Tags Health
// @Produce json
// @Success 200 {object} HealthDTO
// @Router /health [get]
func (handler *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, HealthDTO{
		Status:         "ok",
		ModelAvailable: handler.model.Available(),
	})
}
