package events

import "time"

const (
	// OrderPlaced is emitted once an order and its items are committed.
	OrderPlaced = "ORDER_PLACED"
	// CartCleared is emitted when a session's cart is emptied outside checkout.
	CartCleared = "CART_CLEARED"
	// CatalogUpdated is published by whatever maintains products and categories.
	CatalogUpdated = "CATALOG_UPDATED"
)

// Event is what travels on the EVENTS stream under events.<type>.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

// BaseEvent is the only Event implementation; subscribers decode into it.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
