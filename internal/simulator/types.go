package simulator

import (
	"encoding/json"
	"fmt"

	"github.com/chrisdamba/lunchrush/internal/models"
)

// records kept in models.Event.Data; values are copies taken when the event
// happened

type SeatingRecord struct {
	Customer      models.Customer
	TableCapacity int
	Reason        string
}

type ServingRecord struct {
	Customer      models.Customer
	TableCapacity int
	Earned        int
}

type DepartureRecord struct {
	Customer models.Customer
	Penalty  int
}

type SessionRecord struct {
	PlayerName string
	Money      int
	TimePlayed int
	Saved      bool
}

const (
	TopicCustomerEvents = "customer_events"
	TopicSeatingEvents  = "seating_events"
	TopicServingEvents  = "serving_events"
	TopicSessionEvents  = "session_events"
)

// BaseEvent is the common structure for all events
type BaseEvent struct {
	Timestamp int64  `json:"timestamp"`
	EventType string `json:"eventType"`
	SessionID string `json:"sessionId"`
	Turn      int    `json:"turn"`
}

type CustomerPayload struct {
	CustomerID string `json:"customerId"`
	Name       string `json:"name"`
	PartySize  int    `json:"partySize"`
	Patience   int    `json:"patience"`
	Anger      int    `json:"anger"`
}

// CustomerArrivedEvent represents a party joining the queue
type CustomerArrivedEvent struct {
	BaseEvent
	CustomerPayload
}

// CustomerSeatedEvent represents a party leaving the queue for a table
type CustomerSeatedEvent struct {
	BaseEvent
	CustomerPayload
	TableCapacity int `json:"tableCapacity"`
}

// SeatingFailedEvent represents a seat action that seated nobody
type SeatingFailedEvent struct {
	BaseEvent
	*CustomerPayload
	Reason string `json:"reason"`
}

// TableServedEvent represents a party finishing its meal
type TableServedEvent struct {
	BaseEvent
	CustomerPayload
	TableCapacity int `json:"tableCapacity"`
	Earned        int `json:"earned"`
}

// CustomerLeftEvent represents an angry party walking out of the queue
type CustomerLeftEvent struct {
	BaseEvent
	CustomerPayload
	Penalty int `json:"penalty"`
}

// SessionEndedEvent closes the stream of one game
type SessionEndedEvent struct {
	BaseEvent
	PlayerName string `json:"playerName"`
	Money      int    `json:"money"`
	TimePlayed int    `json:"timePlayed"`
	Saved      bool   `json:"saved"`
}

// EventSerializer turns recorded events into topic messages
type EventSerializer struct {
	SessionID   string
	TopicPrefix string
}

func (s *EventSerializer) Serialize(event *models.Event) (models.EventMessage, error) {
	var topic string
	var eventData interface{}

	baseEvent := BaseEvent{
		Timestamp: event.Time.Unix(),
		EventType: event.Type,
		SessionID: s.SessionID,
		Turn:      event.Turn,
	}

	switch event.Type {
	case models.EventCustomerArrived:
		c, ok := event.Data.(models.Customer)
		if !ok {
			return models.EventMessage{}, unexpectedData(event)
		}
		eventData = CustomerArrivedEvent{BaseEvent: baseEvent, CustomerPayload: newCustomerPayload(c)}
		topic = TopicCustomerEvents

	case models.EventCustomerLeft:
		rec, ok := event.Data.(DepartureRecord)
		if !ok {
			return models.EventMessage{}, unexpectedData(event)
		}
		eventData = CustomerLeftEvent{
			BaseEvent:       baseEvent,
			CustomerPayload: newCustomerPayload(rec.Customer),
			Penalty:         rec.Penalty,
		}
		topic = TopicCustomerEvents

	case models.EventCustomerSeated:
		rec, ok := event.Data.(SeatingRecord)
		if !ok {
			return models.EventMessage{}, unexpectedData(event)
		}
		eventData = CustomerSeatedEvent{
			BaseEvent:       baseEvent,
			CustomerPayload: newCustomerPayload(rec.Customer),
			TableCapacity:   rec.TableCapacity,
		}
		topic = TopicSeatingEvents

	case models.EventSeatingFailed:
		rec, ok := event.Data.(SeatingRecord)
		if !ok {
			return models.EventMessage{}, unexpectedData(event)
		}
		failed := SeatingFailedEvent{BaseEvent: baseEvent, Reason: rec.Reason}
		if rec.Customer.ID != "" {
			payload := newCustomerPayload(rec.Customer)
			failed.CustomerPayload = &payload
		}
		eventData = failed
		topic = TopicSeatingEvents

	case models.EventTableServed:
		rec, ok := event.Data.(ServingRecord)
		if !ok {
			return models.EventMessage{}, unexpectedData(event)
		}
		eventData = TableServedEvent{
			BaseEvent:       baseEvent,
			CustomerPayload: newCustomerPayload(rec.Customer),
			TableCapacity:   rec.TableCapacity,
			Earned:          rec.Earned,
		}
		topic = TopicServingEvents

	case models.EventSessionEnded:
		rec, ok := event.Data.(SessionRecord)
		if !ok {
			return models.EventMessage{}, unexpectedData(event)
		}
		eventData = SessionEndedEvent{
			BaseEvent:  baseEvent,
			PlayerName: rec.PlayerName,
			Money:      rec.Money,
			TimePlayed: rec.TimePlayed,
			Saved:      rec.Saved,
		}
		topic = TopicSessionEvents

	default:
		return models.EventMessage{}, fmt.Errorf("unknown event type: %v", event.Type)
	}

	data, err := json.Marshal(eventData)
	if err != nil {
		return models.EventMessage{}, fmt.Errorf("failed to serialize %s event: %w", event.Type, err)
	}

	return models.EventMessage{
		Topic:   s.TopicPrefix + topic,
		Message: data,
	}, nil
}

func newCustomerPayload(c models.Customer) CustomerPayload {
	return CustomerPayload{
		CustomerID: c.ID,
		Name:       c.Name,
		PartySize:  c.PartySize,
		Patience:   c.Patience,
		Anger:      c.Anger,
	}
}

func unexpectedData(event *models.Event) error {
	return fmt.Errorf("unexpected data %T for event type %s", event.Data, event.Type)
}
