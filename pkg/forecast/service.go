package forecast

import (
	"context"

	"github.com/dompet/dompet/internal/event_bus"
	"github.com/dompet/dompet/internal/utils"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Prediction struct {
	// ForMonth is the calendar month following the current one.
	ForMonth        Month
	SuggestedBudget int64
	MonthlyAverage  decimal.Decimal
	Months          MonthlyTotals
}

type Service interface {
	PredictBudget(ctx context.Context, transactions []Transaction) (Prediction, error)
}

type ServiceImpl struct {
	clock    utils.Clock
	eventBus *event_bus.EventBus
}

func NewService(clock utils.Clock, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{clock: clock, eventBus: eventBus}
}

func (s *ServiceImpl) PredictBudget(ctx context.Context, transactions []Transaction) (Prediction, error) {
	totals := AggregateByMonth(transactions)
	suggested, err := ForecastNextMonth(totals)
	if err != nil {
		return Prediction{}, err
	}
	prediction := Prediction{
		ForMonth:        MonthOf(s.clock.Now()).Next(),
		SuggestedBudget: suggested,
		MonthlyAverage:  MonthlyAverage(totals),
		Months:          totals,
	}
	log.Debugf("Predicted budget %d from %d transactions in %d months",
		prediction.SuggestedBudget, len(transactions), len(totals))

	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.BudgetPredicted, event_bus.BudgetPredictedPayload{
		Transactions:    len(transactions),
		Months:          len(totals),
		SuggestedBudget: prediction.SuggestedBudget,
		MonthlyAverage:  prediction.MonthlyAverage,
	}))
	if err != nil {
		log.Warnf("failed to publish budget prediction event: %v", err)
	}
	return prediction, nil
}
