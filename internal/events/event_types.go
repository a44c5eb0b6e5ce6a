package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventOrderPlaced  EventType = "order_placed"
	EventOrderRemoved EventType = "order_removed"
	EventDrugStockLow EventType = "drug_stock_low"
	EventDrugDepleted EventType = "drug_depleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// OrderPlacedPayload payload.
type OrderPlacedPayload struct {
	OrderID  string `json:"order_id"`
	DrugID   string `json:"drug_id"`
	DoctorID string `json:"doctor_id"`
	Quantity int    `json:"quantity"`
}

// StockPayload payload for stock threshold events.
type StockPayload struct {
	DrugID    string `json:"drug_id"`
	DrugName  string `json:"drug_name"`
	Remaining int    `json:"remaining"`
}
