package category

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dompet/dompet/internal/rest"
	log "github.com/sirupsen/logrus"
)

type ClassifyRequestDTO struct {
	Description *string `json:"description"`
}

type ClassifyResponseDTO struct {
	Category string `json:"category"`
}

type RuleDTO struct {
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// Classify godoc
// @Summary Classify a transaction description
// @Description Assign a spending category to a free-text description. A missing description is classified as empty text.
// @Tags Category
// @Accept json
// @Produce json
// @Param request body ClassifyRequestDTO true "Description"
// @Success 200 {object} ClassifyResponseDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /classify [post]
func (handler *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	log.Debug("Classifying description")
	var request ClassifyRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil && !errors.Is(err, io.EOF) {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	description := ""
	if request.Description != nil {
		description = *request.Description
	}

	category := handler.service.Classify(r.Context(), description)
	rest.WriteJSON(w, http.StatusOK, ClassifyResponseDTO{Category: string(category)})
}

// ListCategories godoc
// @Summary List categories
// @Description List categories with their trigger words in priority order
// @Tags Category
// @Produce json
// @Success 200 {array} RuleDTO
// @Router /categories [get]
func (handler *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	rules := handler.service.ListRules(r.Context())
	rulesDTO := make([]RuleDTO, 0, len(rules))
	for _, rule := range rules {
		keywords := rule.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		rulesDTO = append(rulesDTO, RuleDTO{Category: string(rule.Category), Keywords: keywords})
	}
	rest.WriteJSON(w, http.StatusOK, rulesDTO)
}
