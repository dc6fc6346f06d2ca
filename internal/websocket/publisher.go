package websocket

import (
	"github.com/google/uuid"
)

// EventPublisher publishes change events to connected clients
type EventPublisher interface {
	PublishTransactionEvent(userID uuid.UUID, eventType EventType, payload interface{})
	PublishCategoryEvent(userID uuid.UUID, eventType EventType, payload interface{})
	PublishGoalEvent(userID uuid.UUID, eventType EventType, payload interface{})
}

// PublishTransactionEvent broadcasts a transaction change to the user's clients
func (h *Hub) PublishTransactionEvent(userID uuid.UUID, eventType EventType, payload interface{}) {
	h.publish(userID, EntityTypeTransaction, eventType, payload)
}

// PublishCategoryEvent broadcasts a category change to the user's clients
func (h *Hub) PublishCategoryEvent(userID uuid.UUID, eventType EventType, payload interface{}) {
	h.publish(userID, EntityTypeCategory, eventType, payload)
}

// PublishGoalEvent broadcasts a goal change to the user's clients
func (h *Hub) PublishGoalEvent(userID uuid.UUID, eventType EventType, payload interface{}) {
	h.publish(userID, EntityTypeGoal, eventType, payload)
}

func (h *Hub) publish(userID uuid.UUID, entity EntityType, eventType EventType, payload interface{}) {
	event := NewEvent(eventType, entity, payload)
	h.Broadcast(userID, event)
}

// NoOpPublisher discards all events, used when the hub is disabled
type NoOpPublisher struct{}

func (NoOpPublisher) PublishTransactionEvent(uuid.UUID, EventType, interface{}) {}
func (NoOpPublisher) PublishCategoryEvent(uuid.UUID, EventType, interface{})    {}
func (NoOpPublisher) PublishGoalEvent(uuid.UUID, EventType, interface{})        {}
