package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Classification
	r.HandleFunc("/classify", deps.CategoryHandler.Classify).Methods("POST")
	r.HandleFunc("/categories", deps.CategoryHandler.ListCategories).Methods("GET")

	// Forecast
	r.HandleFunc("/predict-budget", deps.ForecastHandler.PredictBudget).Methods("POST")

	// Plan generation
	r.HandleFunc("/generate-plan", deps.PlanHandler.GeneratePlan).Methods("POST")

	// Operations
	r.HandleFunc("/health", deps.HealthHandler.Health).Methods("GET")
	r.HandleFunc("/api/activity", deps.ActivityHandler.GetActivity).Methods("GET")
}
