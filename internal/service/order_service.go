package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/pharmacy-service/internal/domain"
	"github.com/spec-kit/pharmacy-service/internal/events"
	"github.com/spec-kit/pharmacy-service/internal/repository"
)

// lowStockThreshold triggers a stock alert event once remaining stock falls
// to or below it.
const lowStockThreshold = 10

// OrderService orchestrates order mutations: the repository applies the
// atomic stock adjustment, then the service invalidates the drug cache and
// emits stock events.
type OrderService struct {
	orders     repository.OrderRepository
	drugs      repository.DrugRepository
	inventory  *InventoryService
	dispatcher events.Dispatcher
}

// NewOrderService builds the service.
func NewOrderService(orders repository.OrderRepository, drugs repository.DrugRepository, inventory *InventoryService, dispatcher events.Dispatcher) *OrderService {
	return &OrderService{orders: orders, drugs: drugs, inventory: inventory, dispatcher: dispatcher}
}

// PlaceOrder creates the order and reserves stock in one store operation.
func (s *OrderService) PlaceOrder(ctx context.Context, order *domain.Order) error {
	if err := s.orders.Create(ctx, order); err != nil {
		return err
	}
	s.inventory.Invalidate(ctx, order.DrugID)

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventOrderPlaced,
		Timestamp: time.Now().UTC(),
		Payload: events.OrderPlacedPayload{
			OrderID:  order.ID,
			DrugID:   order.DrugID,
			DoctorID: order.DoctorID,
			Quantity: order.Quantity,
		},
	})
	s.checkStock(ctx, order.DrugID)
	return nil
}

// GetOrder fetches one order.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// ListOrders lists orders matching the filter.
func (s *OrderService) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	return s.orders.List(ctx, filter)
}

// UpdateOrder replaces an order, re-reserving stock for the new quantity.
func (s *OrderService) UpdateOrder(ctx context.Context, id string, order *domain.Order) error {
	if err := s.orders.Update(ctx, id, order); err != nil {
		return err
	}
	s.inventory.Invalidate(ctx, order.DrugID)
	s.checkStock(ctx, order.DrugID)
	return nil
}

// DeleteOrder removes an order, returning its reservation to stock.
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	s.inventory.Invalidate(ctx, order.DrugID)

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventOrderRemoved,
		Timestamp: time.Now().UTC(),
		Payload: events.OrderPlacedPayload{
			OrderID:  order.ID,
			DrugID:   order.DrugID,
			DoctorID: order.DoctorID,
			Quantity: order.Quantity,
		},
	})
	return nil
}

func (s *OrderService) checkStock(ctx context.Context, drugID string) {
	drug, err := s.drugs.GetByID(ctx, drugID)
	if err != nil {
		return
	}
	if drug.Stock > lowStockThreshold {
		return
	}

	eventType := events.EventDrugStockLow
	if drug.Stock == 0 {
		eventType = events.EventDrugDepleted
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload: events.StockPayload{
			DrugID:    drug.ID,
			DrugName:  drug.Name,
			Remaining: drug.Stock,
		},
	})
}
