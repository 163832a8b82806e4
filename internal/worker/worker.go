package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/events"
)

// Subscriber attaches handlers to the event dispatcher.
type Subscriber interface {
	RegisterHandlers(dispatcher events.Dispatcher)
}

// StartSubscribers wires every background consumer onto the dispatcher.
// Subscribers run in-process on the publisher's goroutines.
func StartSubscribers(dispatcher events.Dispatcher, logger *zap.Logger, subscribers ...Subscriber) {
	for _, sub := range subscribers {
		sub.RegisterHandlers(dispatcher)
	}
	logger.Info("event subscribers registered", zap.Int("count", len(subscribers)))
}
