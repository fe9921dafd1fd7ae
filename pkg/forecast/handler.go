package forecast

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dompet/dompet/internal/rest"
	log "github.com/sirupsen/logrus"
)

type PredictRequestDTO struct {
	Transactions []TransactionInput `json:"transactions"`
}

type MonthTotalDTO struct {
	Month string      `json:"month"`
	Total json.Number `json:"total"`
}

type PredictResponseDTO struct {
	SuggestedBudget int64           `json:"suggested_budget"`
	ForMonth        string          `json:"for_month"`
	MonthlyAverage  json.Number     `json:"monthly_average"`
	Months          []MonthTotalDTO `json:"months"`
}

type InvalidFieldDTO struct {
	Index int    `json:"index"`
	Field string `json:"field"`
	Value string `json:"value"`
	Error string `json:"error"`
}

type InvalidTransactionsDTO struct {
	Error   string            `json:"error"`
	Details string            `json:"details"`
	Invalid []InvalidFieldDTO `json:"invalid"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// PredictBudget godoc
// @Summary Suggest next month's budget
// @Description Sum transactions per calendar month and suggest the monthly mean plus 10%, truncated. No transactions suggest 0.
// @Tags Forecast
// @Accept json
// @Produce json
// @Param request body PredictRequestDTO true "Transactions"
// @Success 200 {object} PredictResponseDTO
// @Failure 400 {object} InvalidTransactionsDTO
// @Router /predict-budget [post]
func (handler *Handler) PredictBudget(w http.ResponseWriter, r *http.Request) {
	log.Debug("Predicting budget")
	var request PredictRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil && !errors.Is(err, io.EOF) {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	transactions, err := ParseTransactions(request.Transactions)
	if err != nil {
		var transactionErrors TransactionErrors
		if errors.As(err, &transactionErrors) {
			log.Debugf("rejected prediction request: %v", err)
			rest.WriteJSON(w, http.StatusBadRequest, toInvalidTransactionsDTO(transactionErrors))
			return
		}
		rest.WriteError(w, http.StatusBadRequest, "Invalid transactions", err.Error())
		return
	}

	prediction, err := handler.service.PredictBudget(r.Context(), transactions)
	if err != nil {
		if errors.Is(err, ErrForecastOutOfRange) {
			rest.WriteError(w, http.StatusBadRequest, "Suggested budget out of range", err.Error())
			return
		}
		log.Errorf("failed to predict budget: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Internal error", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, PredictionToDTO(prediction))
}

func PredictionToDTO(prediction Prediction) PredictResponseDTO {
	months := make([]MonthTotalDTO, 0, len(prediction.Months))
	for _, mt := range prediction.Months {
		months = append(months, MonthTotalDTO{Month: mt.Month.String(), Total: json.Number(mt.Total.String())})
	}
	return PredictResponseDTO{
		SuggestedBudget: prediction.SuggestedBudget,
		ForMonth:        prediction.ForMonth.String(),
		MonthlyAverage:  json.Number(prediction.MonthlyAverage.String()),
		Months:          months,
	}
}

func toInvalidTransactionsDTO(errs TransactionErrors) InvalidTransactionsDTO {
	invalid := make([]InvalidFieldDTO, 0, len(errs))
	for _, fieldErr := range errs {
		invalid = append(invalid, InvalidFieldDTO{
			Index: fieldErr.Index,
			Field: fieldErr.Field,
			Value: fieldErr.Value,
			Error: fieldErr.Err.Error(),
		})
	}
	return InvalidTransactionsDTO{
		Error:   "Invalid transactions",
		Details: "every transaction needs a parseable date and a numeric amount",
		Invalid: invalid,
	}
}
