package domain

import (
	"github.com/google/uuid"
)

// EventType represents a domain change notification relevant to cached results.
type EventType string

const (
	EventTransactionCreated EventType = "transaction_created"
	EventTransactionUpdated EventType = "transaction_updated"
	EventTransactionDeleted EventType = "transaction_deleted"
	EventAccountUpdated     EventType = "account_updated"
)

// Event represents a domain change notification. Only the shape matters here:
// the transport that delivers events is out of scope, and delivery order
// across topics is not guaranteed, so handlers must not depend on it.
type Event struct {
	Type      EventType
	AccountID uuid.UUID
	Record    any // the changed TransactionRecord or Account, when the producer includes it
}

// Subscriber is implemented by anything that reacts to domain events.
// It exists so event handling can be unit tested by feeding synthetic events
// without standing up a real bus.
type Subscriber interface {
	HandleEvent(event Event)
}
