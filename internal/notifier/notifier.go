package notifier

import "context"

// Result is the structured outcome of one confirmation send. A failed send
// is data, not a panic: the checkout flow logs it and moves on, tests
// inspect it.
type Result struct {
	Success   bool
	MessageID string
	Err       error
}

// Sender delivers a rendered confirmation for a normalized payload.
type Sender interface {
	Send(ctx context.Context, payload EmailPayload) Result
}

func failure(err error) Result {
	return Result{Success: false, Err: err}
}
