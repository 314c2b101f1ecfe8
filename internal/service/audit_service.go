package service

import (
	"context"
	"fmt"

	"photopro-be/internal/pkg/logger"
	"photopro-be/pkg/events"
	pktNats "photopro-be/pkg/nats"
)

// EventStream is the slice of the NATS subscriber the audit trail needs.
type EventStream interface {
	Subscribe(subject string, durableName string, handler pktNats.EventHandler) error
}

type IAuditService interface {
	Start()
}

// auditService records every domain event published on the bus into the
// structured log, giving operators a trail of registrations, activations
// and failed payments without touching the request path.
type auditService struct {
	stream EventStream
	logger logger.ILogger
}

func NewAuditService(stream EventStream, log logger.ILogger) IAuditService {
	return &auditService{
		stream: stream,
		logger: log,
	}
}

// Start begins listening to the event bus. The consumer is durable so
// events delivered while the process was down are replayed on restart.
func (s *auditService) Start() {
	if s.stream == nil {
		s.logger.Warn("AuditService", "Event bus unavailable, audit trail disabled", nil)
		return
	}

	if err := s.stream.Subscribe("events.>", "audit-worker", s.handleEvent); err != nil {
		s.logger.Error("AuditService", "Failed to start audit subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("AuditService", "Audit service started, listening to events.>", nil)
}

func (s *auditService) handleEvent(ctx context.Context, event events.Event) error {
	s.logger.Info("AuditService", fmt.Sprintf("Event: %s", event.EventType()), event.Payload())
	return nil
}
