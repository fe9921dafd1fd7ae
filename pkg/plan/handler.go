package plan

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dompet/dompet/internal/rest"
	log "github.com/sirupsen/logrus"
)

type GenerateRequestDTO struct {
	Prompt *string `json:"prompt"`
}

// ExtractionErrorDTO carries the model output so that a failed extraction can
// be reproduced offline.
type ExtractionErrorDTO struct {
	Error     string `json:"error"`
	Details   string `json:"details"`
	RawText   string `json:"raw_text"`
	Candidate string `json:"candidate,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// GeneratePlan godoc
// @Summary Generate a budget plan
// @Description Ask the text generation model for a budget plan and return the JSON it produced
// @Tags Plan
// @Accept json
// @Produce json
// @Param request body GenerateRequestDTO true "Prompt"
// @Success 200 {object} object
// @Failure 400 {object} rest.ErrorResponse
// @Failure 502 {object} ExtractionErrorDTO
// @Failure 503 {object} rest.ErrorResponse
// @Router /generate-plan [post]
func (handler *Handler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	log.Debug("Generating budget plan")
	var request GenerateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil && !errors.Is(err, io.EOF) {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	prompt := ""
	if request.Prompt != nil {
		prompt = *request.Prompt
	}

	plan, err := handler.service.GeneratePlan(r.Context(), prompt)
	if err != nil {
		handler.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, plan.Value)
}

func (handler *Handler) writeError(w http.ResponseWriter, err error) {
	var extractionErr *ExtractionError
	switch {
	case errors.Is(err, ErrMissingPrompt):
		rest.WriteError(w, http.StatusBadRequest, "Prompt is required", "")
	case errors.Is(err, ErrModelUnavailable):
		rest.WriteError(w, http.StatusServiceUnavailable, "Plan generation is unavailable", err.Error())
	case errors.As(err, &extractionErr):
		rest.WriteJSON(w, http.StatusBadGateway, ExtractionErrorDTO{
			Error:     extractionErr.Kind.Error(),
			Details:   err.Error(),
			RawText:   extractionErr.RawText,
			Candidate: extractionErr.Candidate,
		})
	case errors.Is(err, ErrUpstreamFailure):
		log.Errorf("plan generation failed: %v", err)
		rest.WriteError(w, http.StatusBadGateway, "Plan generation failed", err.Error())
	default:
		log.Errorf("unexpected plan generation error: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Internal error", err.Error())
	}
}
