package lib

import (
	"context"
	"fmt"
	"hms/src/events"
	"hms/src/lib/logger"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

type KafkaProducer interface {
	Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error
	Flush(timeoutMs int) int
	Close()
}

func GetKafkaProducerConfig(broker string, clientId string) *kafka.ConfigMap {
	return &kafka.ConfigMap{
		"bootstrap.servers": broker,
		"client.id":         clientId,
		"acks":              "all",
	}
}

// KafkaPublisher writes events to a topic keyed by record id, so every event
// for one record lands on the same partition.
type KafkaPublisher struct {
	Topic    string
	producer KafkaProducer
}

func NewKafkaPublisher(producer KafkaProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{Topic: topic, producer: producer}
}

func DialKafkaPublisher(broker string, topic string) (*KafkaPublisher, error) {
	p, err := kafka.NewProducer(GetKafkaProducerConfig(broker, "hms"))
	if err != nil {
		logger.Log.Errorf("Error on producer: %s", err.Error())
		return nil, err
	}
	return NewKafkaPublisher(p, topic), nil
}

func (k *KafkaPublisher) Publish(ctx context.Context, event events.Event) error {
	value, err := event.Encode()
	if err != nil {
		return err
	}
	delivery := make(chan kafka.Event, 1)
	err = k.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &k.Topic, Partition: kafka.PartitionAny},
		Key:            []byte(event.ID),
		Value:          value,
		Headers:        []kafka.Header{{Key: "eventType", Value: []byte(event.Type)}},
	}, delivery)
	if err != nil {
		return fmt.Errorf("producing to %s: %w", k.Topic, err)
	}
	select {
	case e := <-delivery:
		if m, ok := e.(*kafka.Message); ok && m.TopicPartition.Error != nil {
			return fmt.Errorf("delivering to %s: %w", k.Topic, m.TopicPartition.Error)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (k *KafkaPublisher) Close() {
	k.producer.Flush(5000)
	k.producer.Close()
}
