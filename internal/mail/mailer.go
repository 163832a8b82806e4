package mail

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/domain"
)

// Sender delivers ticket-update notifications to requesters.
type Sender interface {
	SendTicketUpdate(ctx context.Context, to, ticketID string, status domain.TicketStatus, updatedBy string) error
}

// NoopSender logs instead of sending, used when notifications are disabled.
type NoopSender struct {
	Logger *zap.Logger
}

// SendTicketUpdate logs the would-be delivery and returns nil.
func (n NoopSender) SendTicketUpdate(_ context.Context, to, ticketID string, status domain.TicketStatus, _ string) error {
	if n.Logger != nil {
		n.Logger.Debug("email notifications disabled; skipping ticket update mail",
			zap.String("to", to),
			zap.String("ticket_id", ticketID),
			zap.String("status", string(status)))
	}
	return nil
}
