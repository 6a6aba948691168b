package producer

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/IBM/sarama"
	"github.com/tumbleweedd/pineapple_store/storefront_service/internal/domain/models"
	"github.com/tumbleweedd/pineapple_store/storefront_service/pkg/logger"
)

const defaultBufferSize = 256

// Producer publishes order events to Kafka without making the caller wait on the broker.
type Producer struct {
	log logger.Logger

	orderEventTopic string
	orderEvents     chan *models.OrderCreatedEvent

	done      chan struct{}
	closeOnce sync.Once
	sendWG    sync.WaitGroup
	watchWG   sync.WaitGroup

	// the relay answers the client before the broker acknowledges, so an async producer is enough
	producer sarama.AsyncProducer
}

func NewProducer(log logger.Logger, brokerAddress []string, orderEventTopic string) (*Producer, error) {
	producerConfig := sarama.NewConfig()
	producerConfig.Producer.RequiredAcks = sarama.WaitForLocal
	producerConfig.Producer.Compression = sarama.CompressionNone
	producerConfig.Producer.Return.Successes = true
	producerConfig.Producer.Return.Errors = true

	producer, err := sarama.NewAsyncProducer(brokerAddress, producerConfig)
	if err != nil {
		return nil, err
	}

	return newProducer(log, producer, orderEventTopic, defaultBufferSize), nil
}

func newProducer(log logger.Logger, producer sarama.AsyncProducer, orderEventTopic string, bufferSize int) *Producer {
	p := &Producer{
		log:             log,
		orderEventTopic: orderEventTopic,
		orderEvents:     make(chan *models.OrderCreatedEvent, bufferSize),
		done:            make(chan struct{}),
		producer:        producer,
	}

	p.watchWG.Add(1)
	go p.watch()

	p.sendWG.Add(1)
	go p.produce()

	return p
}

// PublishOrderCreated queues event for delivery. A full buffer or a closed producer drops the event.
func (p *Producer) PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) {
	const op = "brokers.kafka.producer.PublishOrderCreated"

	select {
	case <-p.done:
		p.log.WarnContext(ctx, op, logger.String("message", "producer closed, event dropped"), logger.String("order_id", event.OrderID))
		return
	default:
	}

	select {
	case p.orderEvents <- event:
	default:
		p.log.WarnContext(ctx, op, logger.String("message", "event buffer full, event dropped"), logger.String("order_id", event.OrderID))
	}
}

func (p *Producer) produce() {
	defer p.sendWG.Done()

	for {
		select {
		case event := <-p.orderEvents:
			p.send(event)
		case <-p.done:
			for {
				select {
				case event := <-p.orderEvents:
					p.send(event)
				default:
					return
				}
			}
		}
	}
}

func (p *Producer) send(event *models.OrderCreatedEvent) {
	const op = "brokers.kafka.producer.send"

	p.log.Debug(op, logger.String("topic", p.orderEventTopic), logger.String("event_uuid", event.UUID()))

	bytes, err := json.Marshal(event)
	if err != nil {
		p.log.Error(op, logger.String("failed to marshal event", err.Error()))
		return
	}

	p.producer.Input() <- &sarama.ProducerMessage{
		Topic: p.orderEventTopic,
		Key:   sarama.StringEncoder(event.UUID()),
		Value: sarama.ByteEncoder(bytes),
	}
}

func (p *Producer) watch() {
	defer p.watchWG.Done()

	errs, successes := p.producer.Errors(), p.producer.Successes()
	for errs != nil || successes != nil {
		select {
		case sendErr, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			p.log.Warn("failed to send message", logger.String("error", sendErr.Error()))
		case success, ok := <-successes:
			if !ok {
				successes = nil
				continue
			}
			p.log.Debug("successfully sent message", logger.String("topic", success.Topic))
		}
	}
}

// Close flushes queued events and shuts the underlying producer down. Safe to call more than once.
func (p *Producer) Close() error {
	var err error

	p.closeOnce.Do(func() {
		close(p.done)
		p.sendWG.Wait()

		err = p.producer.Close()
		p.watchWG.Wait()
	})

	return err
}
