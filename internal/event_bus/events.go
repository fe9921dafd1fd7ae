package event_bus

import "github.com/shopspring/decimal"

type DescriptionClassifiedPayload struct {
	Category string
}

type BudgetPredictedPayload struct {
	Transactions    int
	Months          int
	SuggestedBudget int64
	MonthlyAverage  decimal.Decimal
}

type PlanGeneratedPayload struct {
	PromptLength int
	Strategy     string
}

// PlanFailedPayload carries everything needed to reproduce a failed plan
// generation offline.
type PlanFailedPayload struct {
	Reason    string
	Prompt    string
	RawText   string
	Candidate string
	Err       error
}
