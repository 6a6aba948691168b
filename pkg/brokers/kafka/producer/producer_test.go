package producer

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tumbleweedd/pineapple_store/storefront_service/internal/domain/models"
	"github.com/tumbleweedd/pineapple_store/storefront_service/pkg/logger"
)

const topic = "storefront.orders"

func mockConfig() *sarama.Config {
	cfg := mocks.NewTestConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	return cfg
}

func testEvent() *models.OrderCreatedEvent {
	return &models.OrderCreatedEvent{
		EventUUID: uuid.New(),
		EventType: models.OrderCreated,
		OrderID:   "ord_1",
		UserID:    "u1",
		Total:     25,
		ItemCount: 2,
		CreatedAt: time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPublishOrderCreated(t *testing.T) {
	asyncProducer := mocks.NewAsyncProducer(t, mockConfig())
	event := testEvent()

	asyncProducer.ExpectInputWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		require.Equal(t, topic, msg.Topic)

		key, err := msg.Key.Encode()
		require.NoError(t, err)
		require.Equal(t, event.UUID(), string(key))

		value, err := msg.Value.Encode()
		require.NoError(t, err)

		var got models.OrderCreatedEvent
		require.NoError(t, json.Unmarshal(value, &got))
		require.Equal(t, models.OrderCreated, got.EventType)
		require.Equal(t, "ord_1", got.OrderID)
		require.Equal(t, 25.0, got.Total)

		return nil
	})

	p := newProducer(logger.NewDiscard(), asyncProducer, topic, 4)
	p.PublishOrderCreated(context.Background(), event)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
}

func TestPublishBrokerFailureIsLogged(t *testing.T) {
	asyncProducer := mocks.NewAsyncProducer(t, mockConfig())
	asyncProducer.ExpectInputAndFail(sarama.ErrOutOfBrokers)

	p := newProducer(logger.NewDiscard(), asyncProducer, topic, 4)
	p.PublishOrderCreated(context.Background(), testEvent())

	require.NoError(t, p.Close())
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	// no expectations: any message reaching the broker fails the test
	asyncProducer := mocks.NewAsyncProducer(t, mockConfig())

	p := newProducer(logger.NewDiscard(), asyncProducer, topic, 4)
	require.NoError(t, p.Close())

	p.PublishOrderCreated(context.Background(), testEvent())
}
