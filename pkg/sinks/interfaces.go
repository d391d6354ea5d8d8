package sinks

import "context"

// Sink delivers digest events to a downstream destination (HTTP, SQS, SNS, Pub/Sub).
type Sink interface {
	ID() string
	Type() string
	Deliver(ctx context.Context, evt Event) error
}
