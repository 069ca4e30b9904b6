package domain

import "time"

const (
	EventEntity        = "orders"
	EventCreated       = "created"
	EventStatusChanged = "status_changed"
)

// Event is published whenever the gateway creates an order or moves it along the ladder.
type Event struct {
	Action     string    `json:"action"`
	OrderID    int       `json:"orderId"`
	StandID    int       `json:"standId"`
	UserID     string    `json:"userId"`
	Status     Status    `json:"status"`
	Previous   Status    `json:"previousStatus,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (e Event) Topic() string {
	return EventEntity + "." + e.Action
}

func NewCreatedEvent(o Order, at time.Time) Event {
	return Event{Action: EventCreated, OrderID: o.ID, StandID: o.StandID, UserID: o.UserID, Status: o.Status, OccurredAt: at.UTC()}
}

func NewStatusChangedEvent(o Order, previous Status, at time.Time) Event {
	return Event{Action: EventStatusChanged, OrderID: o.ID, StandID: o.StandID, UserID: o.UserID, Status: o.Status, Previous: previous, OccurredAt: at.UTC()}
}
