package broker

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"canteenWeb/internal/modules/realtime/domain"
)

// record is the JSON value of an order event on the wire.
type record struct {
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId"`
	Topic      string            `json:"topic"`
	Metadata   map[string]string `json:"metadata"`
	Data       any               `json:"data"`
	Timestamp  time.Time         `json:"timestamp"`
}

// encodeMessage keys records by resource so one order's updates stay ordered on a partition.
func encodeMessage(msg *domain.Message) (kafka.Message, error) {
	value, err := json.Marshal(record{
		Entity:     msg.Entity,
		Action:     msg.Action,
		ResourceID: msg.ResourceID,
		Topic:      msg.Topic,
		Metadata:   msg.Metadata,
		Data:       msg.Data,
		Timestamp:  msg.Timestamp,
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode %s record: %w", msg.Topic, err)
	}
	return kafka.Message{Key: []byte(msg.ResourceID), Value: value, Time: msg.Timestamp}, nil
}

// decodeMessage turns a record back into a message. Values that are not JSON keep their raw
// text as data and take entity and action from the broker topic name.
func decodeMessage(m kafka.Message) *domain.Message {
	msg := &domain.Message{Timestamp: time.Now().UTC()}

	var rec record
	if err := json.Unmarshal(m.Value, &rec); err != nil {
		msg.Topic = m.Topic
		msg.Entity, msg.Action = topicParts(m.Topic)
		msg.Data = string(m.Value)
		return msg
	}

	msg.Entity = firstNonEmpty(rec.Entity, lastSegment(m.Topic))
	msg.Action = firstNonEmpty(rec.Action, "unknown")
	msg.ResourceID = rec.ResourceID
	msg.Metadata = rec.Metadata
	msg.Data = rec.Data
	if !rec.Timestamp.IsZero() {
		msg.Timestamp = rec.Timestamp.UTC()
	}
	msg.Topic = firstNonEmpty(rec.Topic, domain.CustomTopic(msg.Entity, msg.Action))
	return msg
}

// topicParts reads "<prefix>.<entity>.<action>" broker topic names.
func topicParts(topic string) (string, string) {
	parts := strings.Split(topic, ".")
	if len(parts) >= 2 {
		entity := strings.TrimSpace(parts[len(parts)-2])
		action := strings.TrimSpace(parts[len(parts)-1])
		if entity != "" && action != "" {
			return entity, action
		}
	}
	return lastSegment(topic), "unknown"
}

func lastSegment(topic string) string {
	if idx := strings.LastIndex(topic, "."); idx >= 0 {
		topic = topic[idx+1:]
	}
	return strings.TrimSpace(topic)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
