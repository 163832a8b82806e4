package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/repository"
)

// AuditService writes the append-only event log. Writes are best-effort: a
// failed insert is logged server-side and never surfaces to the caller.
type AuditService struct {
	logs   repository.EventLogRepository
	logger *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(logs repository.EventLogRepository, logger *zap.Logger) *AuditService {
	return &AuditService{logs: logs, logger: logger}
}

// RegisterHandlers subscribes the audit writer to every event type.
func (s *AuditService) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	for _, eventType := range events.AllEventTypes() {
		dispatcher.Subscribe(eventType, s.handle)
	}
}

func (s *AuditService) handle(ctx context.Context, event events.Event) error {
	entry := &domain.EventLog{
		ID:          uuid.NewString(),
		UserID:      event.ActorID,
		EventType:   event.Type,
		Description: event.Description,
		Metadata:    event.Metadata,
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		s.logger.Warn("event log write failed",
			zap.String("event_type", string(event.Type)),
			zap.String("actor_id", event.ActorID),
			zap.Error(err))
	}
	return nil
}
