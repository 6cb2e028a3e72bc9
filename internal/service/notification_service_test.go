package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/huevos-organicos/backend/internal/config"
	"github.com/huevos-organicos/backend/internal/events"
)

func TestNotificationService_LeadCreatedLogsNoContactDetails(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher(nil)
	svc := NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{
		LeadsEmailTo: "ventas@huevos.com",
		WebhookURL:   "https://hooks.example.com/leads",
	})
	svc.RegisterHandlers()

	_ = dispatcher.Publish(context.Background(), events.Event{
		ID:        "evt-1",
		Type:      events.EventLeadCreated,
		Timestamp: time.Now(),
		Payload: events.LeadCreatedPayload{
			LeadID: 42,
			Name:   "Rosa Quispe",
			Email:  "rosa@cliente.pe",
			Phone:  "999888777",
		},
	})

	entries := logs.FilterMessage("LeadCreated").All()
	if len(entries) != 1 {
		t.Fatalf("expected one LeadCreated entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["lead_id"]; got != int64(42) {
		t.Fatalf("expected lead_id 42, got %v", got)
	}

	for _, entry := range logs.All() {
		for key, value := range entry.ContextMap() {
			text, _ := value.(string)
			for _, secret := range []string{"rosa@cliente.pe", "999888777", "Rosa Quispe"} {
				if strings.Contains(text, secret) {
					t.Fatalf("%q logged under %q in %q", secret, key, entry.Message)
				}
			}
			if key == "payload" {
				t.Fatalf("raw payload logged in %q", entry.Message)
			}
		}
	}
}
