package domain

import (
	"strconv"
	"strings"

	orders "canteenWeb/internal/modules/orders/domain"
)

const (
	metaUserID  = "userId"
	metaStandID = "standId"
	metaStatus  = "status"
)

// FromOrderEvent wraps an order event for delivery. The topic is the event kind; RecipientTopics
// decides who receives it.
func FromOrderEvent(event orders.Event) *Message {
	metadata := map[string]string{
		metaUserID: strings.TrimSpace(event.UserID),
		metaStatus: string(event.Status),
	}
	if event.StandID > 0 {
		metadata[metaStandID] = strconv.Itoa(event.StandID)
	}
	return &Message{
		Topic:      event.Topic(),
		Entity:     orders.EventEntity,
		Action:     event.Action,
		ResourceID: strconv.Itoa(event.OrderID),
		Metadata:   metadata,
		Data:       event,
		Timestamp:  event.OccurredAt,
	}
}

// RecipientTopics returns the connection topics an order message is delivered to.
func RecipientTopics(msg *Message) []string {
	standID, _ := strconv.Atoi(msg.MetadataValue(metaStandID))
	return ConnectionTopics(msg.MetadataValue(metaUserID), standID)
}
