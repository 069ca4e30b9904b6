package broker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	orders "canteenWeb/internal/modules/orders/domain"
	"canteenWeb/internal/modules/realtime/domain"
)

type captureWriter struct {
	records []kafka.Message
	err     error
}

func (w *captureWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.records = append(w.records, msgs...)
	return nil
}

func (w *captureWriter) Close() error { return nil }

// scriptedReader replays records, then blocks until the context ends.
type scriptedReader struct {
	records []kafka.Message
	errs    []error
	closed  bool
}

func (r *scriptedReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.errs) > 0 {
		err := r.errs[0]
		r.errs = r.errs[1:]
		return kafka.Message{}, err
	}
	if len(r.records) > 0 {
		m := r.records[0]
		r.records = r.records[1:]
		return m, nil
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *scriptedReader) Close() error {
	r.closed = true
	return nil
}

func TestPublishedEventDecodesBack(t *testing.T) {
	t.Parallel()

	writer := &captureWriter{}
	publisher := &KafkaPublisher{writer: writer, topic: "canteen.orders"}
	at := time.Date(2026, 10, 19, 7, 30, 0, 0, time.UTC)
	event := orders.NewCreatedEvent(orders.Order{ID: 21, StandID: 2, UserID: "u-4", Status: orders.StatusPending}, at)

	require.NoError(t, publisher.Publish(context.Background(), event))
	require.Len(t, writer.records, 1)
	require.Equal(t, "21", string(writer.records[0].Key))

	record := writer.records[0]
	record.Topic = "canteen.orders"
	msg := decodeMessage(record)
	require.Equal(t, "orders.created", msg.Topic)
	require.Equal(t, "orders", msg.Entity)
	require.Equal(t, "created", msg.Action)
	require.Equal(t, "21", msg.ResourceID)
	require.True(t, msg.Timestamp.Equal(at))
	require.Equal(t, []string{"orders.u-4", "stands.2"}, domain.RecipientTopics(msg))
}

func TestPublishWrapsWriterError(t *testing.T) {
	t.Parallel()

	boom := errors.New("broker down")
	publisher := &KafkaPublisher{writer: &captureWriter{err: boom}, topic: "canteen.orders"}
	err := publisher.Publish(context.Background(), orders.Event{Action: orders.EventCreated, OrderID: 1})
	require.ErrorIs(t, err, boom)
}

func TestDecodeMessageFallsBackToTopic(t *testing.T) {
	t.Parallel()

	msg := decodeMessage(kafka.Message{Topic: "canteen.orders.created", Value: []byte("not json")})
	require.Equal(t, "orders", msg.Entity)
	require.Equal(t, "created", msg.Action)
	require.Equal(t, "not json", msg.Data)

	msg = decodeMessage(kafka.Message{Topic: "canteen.orders", Value: []byte(`{"action":"status_changed"}`)})
	require.Equal(t, "orders", msg.Entity)
	require.Equal(t, "orders.status_changed", msg.Topic)
}

func TestConsumeDeliversUntilCancelled(t *testing.T) {
	t.Parallel()

	record, err := encodeEvent(orders.NewStatusChangedEvent(orders.Order{ID: 5, StandID: 1, UserID: "u-1", Status: orders.StatusCooking}, orders.StatusPending, time.Now()))
	require.NoError(t, err)
	reader := &scriptedReader{errs: []error{errors.New("leader not available")}, records: []kafka.Message{record}}
	consumer := &KafkaConsumer{reader: reader, backoff: time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	var got []*domain.Message
	err = consumer.Consume(ctx, func(msg *domain.Message) error {
		got = append(got, msg)
		cancel()
		return errors.New("handler failures are skipped")
	})

	require.ErrorIs(t, err, context.Canceled)
	require.True(t, reader.closed)
	require.Len(t, got, 1)
	require.Equal(t, "orders.status_changed", got[0].Topic)
	require.Equal(t, "5", got[0].ResourceID)
}
