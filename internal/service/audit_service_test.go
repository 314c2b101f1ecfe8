package service

import (
	"context"
	"testing"
	"time"

	"photopro-be/pkg/events"
	pktNats "photopro-be/pkg/nats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventStream struct {
	subject string
	durable string
	handler pktNats.EventHandler
}

func (s *fakeEventStream) Subscribe(subject, durableName string, handler pktNats.EventHandler) error {
	s.subject = subject
	s.durable = durableName
	s.handler = handler
	return nil
}

func TestAuditService_LogsBusEvents(t *testing.T) {
	stream := &fakeEventStream{}
	log := &fakeLogger{}

	NewAuditService(stream, log).Start()

	require.NotNil(t, stream.handler, "Start must register a handler")
	assert.Equal(t, "events.>", stream.subject)

	event := events.BaseEvent{
		Type:       events.TypeSubscriptionActivated,
		Data:       map[string]interface{}{"user_id": "u1"},
		OccurredAt: time.Now(),
	}
	require.NoError(t, stream.handler(context.Background(), event))

	// Startup line plus one entry per event
	assert.Equal(t, 2, log.entryCount())
}

func TestAuditService_DisabledWithoutBus(t *testing.T) {
	log := &fakeLogger{}

	// Must not panic when the event bus never connected
	NewAuditService(nil, log).Start()

	assert.Equal(t, 1, log.entryCount())
}
