package port

import "context"

// Publisher emits cart change events. Publishing is best effort: failures are
// logged by callers and never fail the mutation that produced the event.
type Publisher interface {
	Publish(ctx context.Context, subject string, message any) error
}
