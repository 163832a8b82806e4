package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/mail"
)

// NotificationService emails requesters about ticket updates. Delivery is
// fire-and-forget: a send failure is logged and never fails the update.
type NotificationService struct {
	sender mail.Sender
	logger *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(sender mail.Sender, logger *zap.Logger) *NotificationService {
	return &NotificationService{sender: sender, logger: logger}
}

// RegisterHandlers subscribes to ticket update events.
func (n *NotificationService) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(domain.EventUpdateTicket, n.handleTicketUpdated)
}

func (n *NotificationService) handleTicketUpdated(ctx context.Context, event events.Event) error {
	meta, ok := event.Payload.(events.TicketUpdatedMeta)
	if !ok || !meta.NotifyRequester || meta.RequesterEmail == "" {
		return nil
	}

	if err := n.sender.SendTicketUpdate(ctx, meta.RequesterEmail, meta.TicketID, meta.Status, meta.UpdatedBy); err != nil {
		n.logger.Warn("ticket update notification failed",
			zap.String("ticket_id", meta.TicketID),
			zap.String("to", meta.RequesterEmail),
			zap.Error(err))
	}
	return nil
}
