package producers

import (
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaramaProducer_WriteMessage(t *testing.T) {
	mock := mocks.NewSyncProducer(t, NewSaramaConfig())
	mock.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "lunchrush_customer_events" {
			return errors.New("unexpected topic " + msg.Topic)
		}
		value, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		if string(value) != `{"eventType":"CustomerArrived"}` {
			return errors.New("unexpected value " + string(value))
		}
		return nil
	})

	producer := NewSaramaProducerFrom(mock)
	require.NoError(t, producer.WriteMessage("lunchrush_customer_events", []byte(`{"eventType":"CustomerArrived"}`)))
	require.NoError(t, producer.Close())
}

func TestSaramaProducer_WriteMessageFailure(t *testing.T) {
	mock := mocks.NewSyncProducer(t, NewSaramaConfig())
	mock.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	producer := NewSaramaProducerFrom(mock)
	err := producer.WriteMessage("topic", []byte(`{}`))
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, producer.Close())
}

func TestSaramaProducer_ClosedProducer(t *testing.T) {
	producer := NewSaramaProducerFrom(nil)
	assert.Error(t, producer.WriteMessage("topic", []byte(`{}`)))
	assert.NoError(t, producer.Close())
}
