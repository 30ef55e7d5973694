package interfaces

import "context"

// EventPublisher delivers lifecycle events to an outside system. The key
// groups events that must stay ordered, such as all events of one transfer.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}
