package manipulate

// Vec2 is a 2D vector used for points, scale factors, translations and
// velocities throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward. Units are device-independent
// pixels.
type Rect struct {
	X, Y, Width, Height float64
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.Right() &&
		y >= r.Y && y <= r.Bottom()
}

// ContainsRect reports whether other lies entirely inside r.
// Shared edges are considered inside.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.Right() <= r.Right() &&
		other.Y >= r.Y && other.Bottom() <= r.Bottom()
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.Right() &&
		r.Right() >= other.X &&
		r.Y <= other.Bottom() &&
		r.Bottom() >= other.Y
}

// ManipulationModes is a bitmask of the manipulations the input layer may
// report. Values can be combined with bitwise OR.
type ManipulationModes uint8

const (
	ModeTranslateX ManipulationModes = 1 << iota // horizontal pan
	ModeTranslateY                               // vertical pan
	ModeRotate                                   // rotation about the pivot
	ModeScale                                    // zoom about the pivot

	ModeNone      ManipulationModes = 0
	ModeTranslate                   = ModeTranslateX | ModeTranslateY
	ModeAll                         = ModeTranslate | ModeRotate | ModeScale
)

// Has reports whether every bit in want is set.
func (m ManipulationModes) Has(want ManipulationModes) bool {
	return m&want == want
}

// EventType identifies a kind of manipulation event.
type EventType uint8

const (
	EventManipulationStarting        EventType = iota // a manipulation is about to begin
	EventManipulationInertiaStarting                  // contact ended; inertia is about to begin
	EventManipulationDelta                            // incremental update, interactive or inertial
	EventBoundaryFeedback                             // inertial motion left the containing rect
	EventDetached                                     // a behavior was detached from its element
)

// String returns a short lowercase name for the event type.
func (t EventType) String() string {
	switch t {
	case EventManipulationStarting:
		return "starting"
	case EventManipulationInertiaStarting:
		return "inertia"
	case EventManipulationDelta:
		return "delta"
	case EventBoundaryFeedback:
		return "boundary"
	case EventDetached:
		return "detached"
	default:
		return "unknown"
	}
}
