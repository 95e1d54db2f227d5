package manipulate

// EventSink is the interface for optional event forwarding, for example into
// an ECS world. When set on a Behavior, every handled manipulation event is
// reported as a ManipulationEvent after it has been applied.
type EventSink interface {
	EmitEvent(event ManipulationEvent)
}

// ManipulationEvent is a flat record of one handled manipulation event.
type ManipulationEvent struct {
	Type      EventType
	ElementID uint32
	SessionID string
	// Delta fields (valid for EventManipulationDelta and EventBoundaryFeedback)
	Delta      Delta
	IsInertial bool
	Transform  Matrix
	// Bounds is the transformed render bounds (valid for inertial deltas and
	// EventBoundaryFeedback).
	Bounds Rect
	// Inertia is valid for EventManipulationInertiaStarting.
	Inertia InertiaParameters
}

// SinkFunc adapts a plain function to EventSink.
type SinkFunc func(ManipulationEvent)

// EmitEvent calls f(event).
func (f SinkFunc) EmitEvent(event ManipulationEvent) { f(event) }
