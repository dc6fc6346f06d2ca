package websocket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEventType(t *testing.T) {
	tests := []struct {
		eventType EventType
		entity    EntityType
		want      string
	}{
		{EventTypeCreated, EntityTypeTransaction, "transaction.created"},
		{EventTypeUpdated, EntityTypeCategory, "category.updated"},
		{EventTypeDeleted, EntityTypeGoal, "goal.deleted"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			event := NewEvent(tt.eventType, tt.entity, nil)
			assert.Equal(t, tt.want, event.Type)
			assert.Equal(t, tt.entity, event.Entity)
			assert.False(t, event.Timestamp.IsZero())
		})
	}
}

func TestEventToJSON(t *testing.T) {
	event := NewEvent(EventTypeCreated, EntityTypeTransaction, map[string]string{"description": "Coffee"})

	data, err := event.ToJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "transaction.created", decoded["type"])
	assert.Equal(t, "transaction", decoded["entity"])

	payload, ok := decoded["payload"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Coffee", payload["description"])
	assert.NotEmpty(t, decoded["timestamp"])
}
