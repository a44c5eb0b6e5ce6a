package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/pharmacy-service/internal/events"
)

// StartStockAlertWorker subscribes stock alert handlers on the dispatcher.
// Alerts are log-only; restocking is an operator action.
func StartStockAlertWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}

	dispatcher.Subscribe(events.EventDrugStockLow, func(_ context.Context, event events.Event) error {
		if payload, ok := event.Payload.(events.StockPayload); ok {
			logger.Warn("drug stock low",
				zap.String("drug_id", payload.DrugID),
				zap.String("drug_name", payload.DrugName),
				zap.Int("remaining", payload.Remaining),
			)
		}
		return nil
	})

	dispatcher.Subscribe(events.EventDrugDepleted, func(_ context.Context, event events.Event) error {
		if payload, ok := event.Payload.(events.StockPayload); ok {
			logger.Error("drug stock depleted",
				zap.String("drug_id", payload.DrugID),
				zap.String("drug_name", payload.DrugName),
			)
		}
		return nil
	})
}
