package cache

import (
	"github.com/sirupsen/logrus"

	"github.com/quantfolio/calcengine-backend/internal/domain"
)

// Invalidator reacts to domain change events by dropping the cached results
// they make stale. It implements domain.Subscriber, so it can be unit tested
// by feeding synthetic events without a real bus.
//
// Each event only triggers scope-keyed deletes, so handling is
// order-independent: delivery order across topics is not guaranteed and does
// not matter here.
type Invalidator struct {
	cache *ResultCache
	log   *logrus.Logger
}

// NewInvalidator creates an Invalidator bound to a cache instance.
func NewInvalidator(cache *ResultCache, log *logrus.Logger) *Invalidator {
	return &Invalidator{
		cache: cache,
		log:   log,
	}
}

// HandleEvent invalidates the account scope of the changed record plus the
// portfolio-wide scope. Unknown event types are ignored.
func (i *Invalidator) HandleEvent(event domain.Event) {
	switch event.Type {
	case domain.EventTransactionCreated,
		domain.EventTransactionUpdated,
		domain.EventTransactionDeleted,
		domain.EventAccountUpdated:
	default:
		return
	}

	deleted := i.cache.InvalidateScope(event.AccountID.String())
	deleted += i.cache.InvalidateScope(ScopePortfolio)

	if i.log != nil {
		i.log.WithFields(logrus.Fields{
			"event":   event.Type,
			"account": event.AccountID,
			"deleted": deleted,
		}).Debug("cache invalidated")
	}
}
