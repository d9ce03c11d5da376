package interfaces

import "context"

// DispatchResult is the best-effort outcome of a single notification
// delivery attempt.

type DispatchResult struct {
	Success bool
	ID      string
	Err     error
}

// INotificationDispatcher abstracts outbound notification providers.
//
// Deliveries are fire-and-forget: a failed dispatch must never fail the
// billing mutation that triggered it, so implementations report failure
// through the result instead of being allowed to abort the caller.

type INotificationDispatcher interface {
	SendEmail(ctx context.Context, to, subject, template string, data map[string]string) DispatchResult
	SendPush(ctx context.Context, userID, title, body string, data map[string]string) DispatchResult
}
