package provisioning

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/go-logr/logr"
)

// Observer defines the interface for structured observability during provisioning.
type Observer interface {
	// Printf emits a free-form progress line.
	Printf(format string, v ...any)

	// Event emits a structured event
	Event(event Event)

	// Progress reports progress for a phase
	Progress(phase string, current, total int)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType         // Type of event
	Phase     string            // Phase name (e.g., "infrastructure", "compute")
	Message   string            // Human-readable message
	Resource  string            // Resource name/ID if applicable
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventPhaseStarted indicates a provisioning phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a provisioning phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a provisioning phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventResourceCreating indicates a resource is being created.
	EventResourceCreating EventType = "resource.creating"
	// EventResourceCreated indicates a resource was created successfully.
	EventResourceCreated EventType = "resource.created"
	// EventResourceExists indicates a resource already exists.
	EventResourceExists EventType = "resource.exists"
	// EventResourceFailed indicates resource creation failed.
	EventResourceFailed EventType = "resource.failed"

	// EventValidationWarning indicates a validation warning.
	EventValidationWarning EventType = "validation.warning"
	// EventValidationError indicates a validation error.
	EventValidationError EventType = "validation.error"

	// EventProgress indicates progress in a long-running operation.
	EventProgress EventType = "progress"
)

// LogObserver implements Observer on top of a logr.Logger.
type LogObserver struct {
	log           logr.Logger
	contextFields map[string]string
}

// NewLogObserver creates an observer writing to log.
func NewLogObserver(log logr.Logger) *LogObserver {
	return &LogObserver{
		log:           log,
		contextFields: make(map[string]string),
	}
}

// Printf implements Observer.
func (o *LogObserver) Printf(format string, v ...any) {
	o.log.WithValues(o.keysAndValues(nil)...).Info(fmt.Sprintf(format, v...))
}

// Event implements Observer.
func (o *LogObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	kv := []any{"event", string(event.Type)}
	if event.Resource != "" {
		kv = append(kv, "resource", event.Resource)
	}
	// The event's phase wins over a phase context field.
	fields := event.Fields
	if event.Phase != "" {
		fields = make(map[string]string, len(event.Fields)+1)
		maps.Copy(fields, event.Fields)
		fields["phase"] = event.Phase
	}
	kv = append(kv, o.keysAndValues(fields)...)

	switch event.Type {
	case EventPhaseFailed, EventResourceFailed, EventValidationError:
		o.log.Error(nil, event.Message, kv...)
	case EventProgress:
		o.log.V(1).Info(event.Message, kv...)
	default:
		o.log.Info(event.Message, kv...)
	}
}

// Progress implements Observer.
func (o *LogObserver) Progress(phase string, current, total int) {
	fields := map[string]string{
		"current": fmt.Sprint(current),
		"total":   fmt.Sprint(total),
	}
	if total > 0 {
		fields["percent"] = fmt.Sprint((current * 100) / total)
	}
	o.Event(Event{Type: EventProgress, Phase: phase, Message: "progress", Fields: fields})
}

// WithFields implements Observer.
func (o *LogObserver) WithFields(fields map[string]string) Observer {
	newFields := make(map[string]string, len(o.contextFields)+len(fields))
	maps.Copy(newFields, o.contextFields)
	maps.Copy(newFields, fields)
	return &LogObserver{log: o.log, contextFields: newFields}
}

// keysAndValues merges event fields over the context fields in stable key order.
func (o *LogObserver) keysAndValues(fields map[string]string) []any {
	merged := make(map[string]string, len(o.contextFields)+len(fields))
	maps.Copy(merged, o.contextFields)
	maps.Copy(merged, fields)

	kv := make([]any, 0, 2*len(merged))
	for _, k := range slices.Sorted(maps.Keys(merged)) {
		kv = append(kv, k, merged[k])
	}
	return kv
}

// Helper functions for common events

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{
		Type:    EventPhaseStarted,
		Phase:   phase,
		Message: "starting",
	})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:    EventPhaseFailed,
		Phase:   phase,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogResourceCreating logs a resource creation start event.
func LogResourceCreating(observer Observer, phase, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceCreating,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("creating %s", resourceType),
		Fields: map[string]string{
			"type": resourceType,
		},
	})
}

// LogResourceCreated logs a successful resource creation event.
func LogResourceCreated(observer Observer, phase, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:     EventResourceCreated,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s created", resourceType),
		Fields: map[string]string{
			"type": resourceType,
			"id":   resourceID,
		},
	})
}

// LogResourceExists logs when a resource already exists.
func LogResourceExists(observer Observer, phase, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:     EventResourceExists,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s already exists", resourceType),
		Fields: map[string]string{
			"type": resourceType,
			"id":   resourceID,
		},
	})
}

// LogValidationWarning logs a non-fatal validation finding.
func LogValidationWarning(observer Observer, field, message string) {
	observer.Event(Event{
		Type:     EventValidationWarning,
		Phase:    "validation",
		Resource: field,
		Message:  message,
	})
}
