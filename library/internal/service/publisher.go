package service

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/Astemirdum/library-system/library/internal/model"
	"github.com/Astemirdum/library-system/pkg/kafka"
	"github.com/IBM/sarama"
)

//go:generate go run github.com/golang/mock/mockgen -destination=mocks/mock.go -package=mock_service github.com/Astemirdum/library-system/library/internal/service Publisher

type Publisher interface {
	PublishBorrowEvent(ctx context.Context, event model.BorrowEvent) error
}

func NewPublisher(producer sarama.SyncProducer) Publisher {
	return &publisherImpl{
		producer: producer,
	}
}

type publisherImpl struct {
	producer sarama.SyncProducer
}

func (p *publisherImpl) PublishBorrowEvent(_ context.Context, event model.BorrowEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	// keyed by book id: per-book ordering for the stats consumer
	msg := &sarama.ProducerMessage{
		Topic: kafka.BorrowEventsTopic,
		Key:   sarama.StringEncoder(strconv.Itoa(event.BookID)),
		Value: sarama.ByteEncoder(data),
	}
	if _, _, err = p.producer.SendMessage(msg); err != nil {
		return err
	}
	return nil
}
