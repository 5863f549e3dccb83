package mykafka

import "time"

const (
	TopicUserEvents    = "user_events"
	TopicProductEvents = "product_events"
	TopicOrderEvents   = "order_events"
)

const (
	EventUserRegistered = "user_registered"
	EventProductCreated = "product_created"
	EventProductUpdated = "product_updated"
	EventProductDeleted = "product_deleted"
	EventCheckoutPaid   = "checkout_paid"
	EventOrderCreated   = "order_created"
	EventOrderUpdated   = "order_updated"
	EventOrderDeleted   = "order_deleted"
)

type Event struct {
	Type   string    `json:"type"`
	ID     string    `json:"id"`
	UserID string    `json:"userId,omitempty"`
	At     time.Time `json:"at"`
	Data   any       `json:"data,omitempty"`
}

func NewEvent(typ, id, userID string, data any) Event {
	return Event{Type: typ, ID: id, UserID: userID, At: time.Now().UTC(), Data: data}
}
