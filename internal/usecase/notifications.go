package usecase

import (
	"context"
	"fmt"
	"log"

	"freelancehub_billing/internal/domain/entities"
	"freelancehub_billing/internal/usecase/interfaces"
)

// recordEvent appends to the billing event log on a best-effort basis.
// Sink failures are logged and swallowed: they never roll back or fail
// the mutation that emitted the event.
func recordEvent(ctx context.Context, rec interfaces.IEventRecorder, ev entities.BudgetEvent) {
	if rec == nil {
		return
	}
	if err := rec.Record(ctx, ev); err != nil {
		log.Printf("[events][usecase] record failed kind=%s job_id=%s err=%v", ev.Kind(), ev.Job(), err)
	}
}

// NotificationIntent describes one email + push delivery pair triggered by
// a billing mutation.

type NotificationIntent struct {
	JobID      string
	ActorID    string
	EmailTo    string
	Subject    string
	Template   string
	PushUserID string
	PushTitle  string
	PushBody   string
	Data       map[string]string
}

// NotificationOutcome aggregates the best-effort delivery results.

type NotificationOutcome struct {
	EmailSent bool
	PushSent  bool
	Errors    []string
}

// dispatchNotification runs after the primary transaction has committed.
// Every failure lands in the outcome and the log; nothing propagates to
// the caller, matching the fire-and-forget contract.
func dispatchNotification(ctx context.Context, d interfaces.INotificationDispatcher, rec interfaces.IEventRecorder, in NotificationIntent) NotificationOutcome {
	var out NotificationOutcome
	if d == nil {
		return out
	}

	if in.EmailTo != "" {
		res := d.SendEmail(ctx, in.EmailTo, in.Subject, in.Template, in.Data)
		out.EmailSent = res.Success
		if !res.Success && res.Err != nil {
			log.Printf("[notify][usecase] email failed job_id=%s to=%s err=%v", in.JobID, in.EmailTo, res.Err)
			out.Errors = append(out.Errors, fmt.Sprintf("email: %v", res.Err))
		}
	}
	if in.PushUserID != "" {
		res := d.SendPush(ctx, in.PushUserID, in.PushTitle, in.PushBody, in.Data)
		out.PushSent = res.Success
		if !res.Success && res.Err != nil {
			log.Printf("[notify][usecase] push failed job_id=%s user_id=%s err=%v", in.JobID, in.PushUserID, res.Err)
			out.Errors = append(out.Errors, fmt.Sprintf("push: %v", res.Err))
		}
	}

	recordEvent(ctx, rec, entities.NotificationSent{
		JobID:     in.JobID,
		Subject:   in.Subject,
		EmailSent: out.EmailSent,
		PushSent:  out.PushSent,
		Errors:    out.Errors,
		ActorID:   in.ActorID,
	})
	return out
}
