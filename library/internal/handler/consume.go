package handler

import (
	"context"
	"encoding/json"

	"github.com/Astemirdum/library-system/library/internal/model"
	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

type ingestBorrowEvent func(ctx context.Context, event model.BorrowEvent) error

type Consumer struct {
	ingest ingestBorrowEvent
	log    *zap.Logger
	ready  chan bool
}

func NewConsumer(ingest ingestBorrowEvent, log *zap.Logger) *Consumer {
	return &Consumer{
		ingest: ingest,
		log:    log.Named("consumer"),
		ready:  make(chan bool),
	}
}

func (consumer *Consumer) Setup(sarama.ConsumerGroupSession) error {
	// Mark the consumer as ready
	close(consumer.ready)
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited.
func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			var event model.BorrowEvent
			if err := json.Unmarshal(message.Value, &event); err != nil {
				consumer.log.Error("unmarshal borrow event", zap.Error(err))
				session.MarkMessage(message, "")
				continue
			}

			if err := consumer.ingest(context.Background(), event); err != nil {
				consumer.log.Error("consumer.ingest", zap.Error(err))
				continue
			}

			consumer.log.Debug("Message claimed:", zap.String("value", string(message.Value)), zap.Time("timestamp", message.Timestamp), zap.String("topic", message.Topic))
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}
