package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventFactory creates events for the distribution domain
type EventFactory struct {
	source string
}

// NewEventFactory creates a new EventFactory for a specific source
func NewEventFactory(source string) *EventFactory {
	return &EventFactory{source: source}
}

// CreateEvent creates a new Event with the given parameters
func (f *EventFactory) CreateEvent(
	ctx context.Context,
	eventType string,
	subject string,
	data interface{},
) *Event {
	return &Event{
		SpecVersion:     "1.0",
		Type:            eventType,
		Source:          f.source,
		Subject:         subject,
		ID:              uuid.New().String(),
		Time:            time.Now().UTC(),
		DataContentType: "application/json",
		Data:            data,
		Extensions:      make(map[string]any),
	}
}

// CreateRunCompletedEvent creates a RunCompleted event
func (f *EventFactory) CreateRunCompletedEvent(ctx context.Context, data RunCompletedData) *Event {
	event := f.CreateEvent(ctx, RunCompleted, "run/"+data.RunID, data)
	event.RunID = data.RunID
	return event
}

// CreateRunFailedEvent creates a RunFailed event
func (f *EventFactory) CreateRunFailedEvent(ctx context.Context, data RunFailedData) *Event {
	return f.CreateEvent(ctx, RunFailed, "run", data)
}

// CreateConfigSavedEvent creates a ConfigSaved event
func (f *EventFactory) CreateConfigSavedEvent(ctx context.Context, data ConfigSavedData) *Event {
	return f.CreateEvent(ctx, ConfigSaved, "config/"+data.Name, data)
}

// WithCorrelation sets correlation tracking on an event
func (e *Event) WithCorrelation(correlationID string) *Event {
	e.CorrelationID = correlationID
	return e
}
