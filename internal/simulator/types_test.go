package simulator

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/chrisdamba/lunchrush/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, msg models.EventMessage) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Message, &out))
	return out
}

func TestEventSerializer(t *testing.T) {
	s := &EventSerializer{SessionID: "game-1", TopicPrefix: "lunchrush_"}
	at := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	customer := models.Customer{ID: "c1", Name: "Ann", PartySize: 2, Patience: 1, Anger: 0, EatTime: 4}

	t.Run("customer arrived", func(t *testing.T) {
		msg, err := s.Serialize(&models.Event{Turn: 3, Time: at, Type: models.EventCustomerArrived, Data: customer})
		require.NoError(t, err)
		assert.Equal(t, "lunchrush_customer_events", msg.Topic)

		body := decode(t, msg)
		assert.Equal(t, float64(at.Unix()), body["timestamp"])
		assert.Equal(t, models.EventCustomerArrived, body["eventType"])
		assert.Equal(t, "game-1", body["sessionId"])
		assert.Equal(t, float64(3), body["turn"])
		assert.Equal(t, "c1", body["customerId"])
		assert.Equal(t, float64(2), body["partySize"])
	})

	t.Run("seated", func(t *testing.T) {
		msg, err := s.Serialize(&models.Event{Time: at, Type: models.EventCustomerSeated, Data: SeatingRecord{Customer: customer, TableCapacity: 2}})
		require.NoError(t, err)
		assert.Equal(t, "lunchrush_seating_events", msg.Topic)
		assert.Equal(t, float64(2), decode(t, msg)["tableCapacity"])
	})

	t.Run("seating failed without a customer", func(t *testing.T) {
		msg, err := s.Serialize(&models.Event{Time: at, Type: models.EventSeatingFailed, Data: SeatingRecord{Reason: SeatNoCustomer.String()}})
		require.NoError(t, err)

		body := decode(t, msg)
		assert.Equal(t, "no_customer", body["reason"])
		assert.NotContains(t, body, "customerId")
	})

	t.Run("served", func(t *testing.T) {
		msg, err := s.Serialize(&models.Event{Time: at, Type: models.EventTableServed, Data: ServingRecord{Customer: customer, TableCapacity: 2, Earned: 10}})
		require.NoError(t, err)
		assert.Equal(t, "lunchrush_serving_events", msg.Topic)
		assert.Equal(t, float64(10), decode(t, msg)["earned"])
	})

	t.Run("customer left", func(t *testing.T) {
		msg, err := s.Serialize(&models.Event{Time: at, Type: models.EventCustomerLeft, Data: DepartureRecord{Customer: customer, Penalty: 4}})
		require.NoError(t, err)
		assert.Equal(t, "lunchrush_customer_events", msg.Topic)
		assert.Equal(t, float64(4), decode(t, msg)["penalty"])
	})

	t.Run("session ended", func(t *testing.T) {
		msg, err := s.Serialize(&models.Event{Time: at, Type: models.EventSessionEnded, Data: SessionRecord{PlayerName: "Ann", Money: -3, TimePlayed: 30, Saved: true}})
		require.NoError(t, err)
		assert.Equal(t, "lunchrush_session_events", msg.Topic)

		body := decode(t, msg)
		assert.Equal(t, "Ann", body["playerName"])
		assert.Equal(t, float64(-3), body["money"])
		assert.Equal(t, true, body["saved"])
	})

	t.Run("wrong payload", func(t *testing.T) {
		_, err := s.Serialize(&models.Event{Type: models.EventTableServed, Data: customer})
		assert.Error(t, err)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := s.Serialize(&models.Event{Type: "Nope"})
		assert.Error(t, err)
	})
}
