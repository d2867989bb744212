// Package events delivers domain change notifications to subscribers over
// PostgreSQL LISTEN/NOTIFY. The persistence layer emits a NOTIFY on the
// domain_events channel for every transaction/account mutation; this adapter
// turns the payloads into domain.Event values.
//
// Delivery is asynchronous relative to the write that produced the event, so
// there is a bounded staleness window between a mutation and the cache
// invalidation it triggers, on top of the TTL window.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/quantfolio/calcengine-backend/internal/domain"
)

// Channel is the NOTIFY channel the persistence layer publishes on.
const Channel = "domain_events"

const (
	minReconnectInterval = time.Second
	maxReconnectInterval = time.Minute
)

// payload is the wire shape of a notification
type payload struct {
	Type      string `json:"type"`
	AccountID string `json:"account_id"`
}

// Listener fans incoming notifications out to subscribers.
type Listener struct {
	pg          *pq.Listener
	subscribers []domain.Subscriber
	log         *logrus.Logger
}

// NewListener creates a Listener connected with the given DSN.
func NewListener(dsn string, log *logrus.Logger) (*Listener, error) {
	listener := &Listener{log: log}

	listener.pg = pq.NewListener(dsn, minReconnectInterval, maxReconnectInterval,
		func(event pq.ListenerEventType, err error) {
			if err != nil && log != nil {
				log.WithError(err).Warn("event listener connection state changed")
			}
		})

	if err := listener.pg.Listen(Channel); err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", Channel, err)
	}

	return listener, nil
}

// Subscribe registers a subscriber. Not safe to call after Run has started.
func (l *Listener) Subscribe(subscriber domain.Subscriber) {
	l.subscribers = append(l.subscribers, subscriber)
}

// Run dispatches notifications until the context is canceled.
func (l *Listener) Run(ctx context.Context) error {
	defer l.pg.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case notification := <-l.pg.Notify:
			if notification == nil {
				// Reconnect marker; events sent while disconnected are lost,
				// which TTL expiry bounds anyway
				continue
			}
			l.dispatch(notification.Extra)
		}
	}
}

func (l *Listener) dispatch(raw string) {
	event, err := parseEvent(raw)
	if err != nil {
		if l.log != nil {
			l.log.WithError(err).Warn("dropping malformed domain event")
		}
		return
	}

	for _, subscriber := range l.subscribers {
		subscriber.HandleEvent(event)
	}
}

func parseEvent(raw string) (domain.Event, error) {
	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return domain.Event{}, fmt.Errorf("failed to decode event payload: %w", err)
	}

	accountID, err := uuid.Parse(p.AccountID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("failed to parse event account_id: %w", err)
	}

	return domain.Event{
		Type:      domain.EventType(p.Type),
		AccountID: accountID,
	}, nil
}
