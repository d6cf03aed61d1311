package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaSink forwards outcome events to a Kafka topic so external dashboards
// can observe the desktop fleet. The export is best-effort: a broker outage
// never fails the operation that produced the event.
type KafkaSink struct {
	writer *kafka.Writer
	topic  string
	log    *zap.Logger
}

func NewKafkaSink(brokers []string, topic string, log *zap.Logger) *KafkaSink {
	return &KafkaSink{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
		topic: topic,
		log:   log,
	}
}

// Run subscribes to the bus and forwards events until ctx is canceled.
func (s *KafkaSink) Run(ctx context.Context, bus *Bus) {
	ch, cancel := bus.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if err := s.forward(ctx, ev); err != nil {
				s.log.Warn("kafka export failed", zap.String("event", ev.ID), zap.Error(err))
			}
		}
	}
}

func (s *KafkaSink) forward(ctx context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.writer.WriteMessages(ctx, kafka.Message{
		Topic: s.topic,
		Key:   []byte(ev.Kind),
		Value: data,
		Time:  ev.At,
	})
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
