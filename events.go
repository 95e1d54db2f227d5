package manipulate

// --- Event payloads ---

// StartingEvent is delivered when the input layer detects the start of a
// manipulation. Mode and Container are out-parameters: handlers set them to
// tell the input layer which manipulations to report and which element's
// coordinate space deltas are expressed in.
type StartingEvent struct {
	Source    any
	Mode      ManipulationModes
	Container *Element
	Handled   bool
}

// InertiaStartingEvent is delivered when contact ends and the input layer is
// about to simulate inertia. Handlers fill Inertia with the deceleration
// model the input layer should integrate.
type InertiaStartingEvent struct {
	Source            any
	InitialVelocities Velocities
	Inertia           InertiaParameters
	Handled           bool
}

// Delta is an incremental manipulation. Scale is multiplicative (1 is no
// change), Rotation is in degrees, Translation is in device-independent
// pixels.
type Delta struct {
	Scale       Vec2
	Rotation    float64
	Translation Vec2
}

// IdentityDelta is the delta that changes nothing.
var IdentityDelta = Delta{Scale: Vec2{1, 1}}

// IsIdentity reports whether d changes nothing.
func (d Delta) IsIdentity() bool {
	return d == IdentityDelta
}

// DeltaEvent carries one incremental update, interactive or inertial.
// BoundaryFeedback is supplied by the input layer; it receives the delta
// that carried the element outside its containing rectangle.
type DeltaEvent struct {
	Source           any
	Delta            Delta
	IsInertial       bool
	Handled          bool
	BoundaryFeedback func(Delta)
}

// ReportBoundaryFeedback signals the input layer that inertial motion left
// the containing rectangle. No-op when the input layer supplied no callback.
func (e *DeltaEvent) ReportBoundaryFeedback(d Delta) {
	if e.BoundaryFeedback != nil {
		e.BoundaryFeedback(d)
	}
}

// --- Handler registry ---

type startingHandler struct {
	id uint32
	fn func(*StartingEvent)
}

type inertiaHandler struct {
	id uint32
	fn func(*InertiaStartingEvent)
}

type deltaHandler struct {
	id uint32
	fn func(*DeltaEvent)
}

type handlerRegistry struct {
	starting []startingHandler
	inertia  []inertiaHandler
	delta    []deltaHandler
	nextID   uint32
}

func (r *handlerRegistry) allocID() uint32 {
	r.nextID++
	return r.nextID
}

func (r *handlerRegistry) count() int {
	return len(r.starting) + len(r.inertia) + len(r.delta)
}

// Handle allows removing a registered manipulation handler.
// The zero Handle is valid and Remove on it does nothing.
type Handle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters the handler so it no longer fires. Removing a handler
// that is no longer registered is a no-op.
func (h Handle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventManipulationStarting:
		h.reg.starting = removeHandler(h.reg.starting, func(s startingHandler) bool { return s.id == h.id })
	case EventManipulationInertiaStarting:
		h.reg.inertia = removeHandler(h.reg.inertia, func(s inertiaHandler) bool { return s.id == h.id })
	case EventManipulationDelta:
		h.reg.delta = removeHandler(h.reg.delta, func(s deltaHandler) bool { return s.id == h.id })
	}
}

// removeHandler deletes the first entry matching in place, preserving order.
func removeHandler[T any](s []T, match func(T) bool) []T {
	for i := range s {
		if match(s[i]) {
			var zero T
			copy(s[i:], s[i+1:])
			s[len(s)-1] = zero
			return s[:len(s)-1]
		}
	}
	return s
}
