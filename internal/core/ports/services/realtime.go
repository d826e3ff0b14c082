package services

import "context"

// ChangeEvent announces that an entity in a collection changed. It carries no
// entity payload: subscribers refetch snapshots through the read API, so the
// feed cannot be used to write around the sanctioned mutators.
type ChangeEvent struct {
	Collection string `json:"collection"` // orders | products | customers | transactions
	EntityID   string `json:"entityID"`
	Action     string `json:"action"` // created | updated | deleted
}

// EventPublisher fans collection-change events out to live subscribers.
// Publishing is best effort: a down broker must never fail the write that
// triggered the event.
type EventPublisher interface {
	Publish(ctx context.Context, event ChangeEvent)
}
