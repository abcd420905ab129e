// Package domain defines the telemetry event shared by emitters, the Kafka producer and the Loki worker.
package domain

import (
	"encoding/json"
	"time"
)

// Event is a single telemetry record. It is serialized as JSON on the Kafka topic.
type Event struct {
	UserID    string          `json:"userId,omitempty"`
	EventType string          `json:"eventType"`
	Source    string          `json:"source"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// NewEvent returns an event stamped with the current UTC time. metadata is marshaled to JSON;
// a marshal failure leaves Metadata empty.
func NewEvent(userID, eventType, source string, metadata any) *Event {
	e := &Event{
		UserID:    userID,
		EventType: eventType,
		Source:    source,
		CreatedAt: time.Now().UTC(),
	}
	if metadata != nil {
		if raw, err := json.Marshal(metadata); err == nil {
			e.Metadata = raw
		}
	}
	return e
}
