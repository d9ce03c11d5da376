package notifications

import (
	"context"
	"log"
	"os"
	"strings"

	"freelancehub_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
)

// LogDispatcher is the default INotificationDispatcher: it logs every
// delivery and reports success. Real providers (email gateway, push
// broker) plug in behind the same interface; the billing core never
// depends on delivery succeeding either way.
//
// NOTIFICATIONS_DISABLED silences deliveries entirely, which keeps local
// runs and CI quiet.
type LogDispatcher struct {
	disabled bool
}

var _ interfaces.INotificationDispatcher = (*LogDispatcher)(nil)

func NewLogDispatcher() *LogDispatcher {
	return &LogDispatcher{disabled: isDisabled()}
}

func (d *LogDispatcher) SendEmail(ctx context.Context, to, subject, template string, data map[string]string) interfaces.DispatchResult {
	if d.disabled {
		return interfaces.DispatchResult{Success: true}
	}
	id := uuid.NewString()
	log.Printf("[notify][email] dispatched id=%s to=%s subject=%q template=%s fields=%d", id, to, subject, template, len(data))
	return interfaces.DispatchResult{Success: true, ID: id}
}

func (d *LogDispatcher) SendPush(ctx context.Context, userID, title, body string, data map[string]string) interfaces.DispatchResult {
	if d.disabled {
		return interfaces.DispatchResult{Success: true}
	}
	id := uuid.NewString()
	log.Printf("[notify][push] dispatched id=%s user_id=%s title=%q fields=%d", id, userID, title, len(data))
	return interfaces.DispatchResult{Success: true, ID: id}
}

func isDisabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("NOTIFICATIONS_DISABLED")))
	switch v {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
