package manipulate

// Manipulable is the geometry an event source must expose for a delta to be
// applied to it. Sources that do not implement it are ignored.
type Manipulable interface {
	// RenderSize returns the untransformed width and height.
	RenderSize() (w, h float64)
	// Transform returns the current cumulative transform.
	Transform() Matrix
	// SetTransform replaces the cumulative transform.
	SetTransform(m Matrix)
}

// elementIDCounter is a plain counter. Manipulation is single-threaded.
var elementIDCounter uint32

func nextElementID() uint32 {
	elementIDCounter++
	return elementIDCounter
}

// Element is a manipulable visual. It owns its transform exclusively and
// publishes the three manipulation event kinds to registered handlers.
// The host input layer delivers events through the Dispatch methods; the
// host renderer reads Transform each frame.
type Element struct {
	ID   uint32
	Name string

	// UserData is an arbitrary payload for the host.
	UserData any

	width, height float64
	transform     Matrix

	handlers     handlerRegistry
	disposeHooks []disposeHook
	disposed     bool
}

type disposeHook struct {
	id uint32
	fn func()
}

// NewElement creates an element of the given render size with an identity
// transform.
func NewElement(name string, width, height float64) *Element {
	return &Element{
		ID:        nextElementID(),
		Name:      name,
		width:     width,
		height:    height,
		transform: Identity,
	}
}

// RenderSize returns the untransformed width and height.
func (e *Element) RenderSize() (w, h float64) {
	return e.width, e.height
}

// SetRenderSize changes the untransformed size. The pivot for subsequent
// deltas follows the new size.
func (e *Element) SetRenderSize(w, h float64) {
	e.width = w
	e.height = h
}

// Transform returns the current cumulative transform.
func (e *Element) Transform() Matrix {
	return e.transform
}

// SetTransform replaces the cumulative transform. This is the only mutation
// path for the transform.
func (e *Element) SetTransform(m Matrix) {
	e.transform = m
}

// Bounds returns the element's render bounds mapped through its transform.
func (e *Element) Bounds() Rect {
	return e.transform.TransformRect(Rect{Width: e.width, Height: e.height})
}

// LocalToParent converts a local-space point to parent space.
func (e *Element) LocalToParent(lx, ly float64) (px, py float64) {
	return e.transform.Apply(lx, ly)
}

// ParentToLocal converts a parent-space point to this element's local space.
func (e *Element) ParentToLocal(px, py float64) (lx, ly float64) {
	return e.transform.Invert().Apply(px, py)
}

// HandlerCount returns the number of registered manipulation handlers.
func (e *Element) HandlerCount() int {
	return e.handlers.count()
}

// Dispose detaches every Behavior attached to the element, then removes the
// remaining handlers. A disposed element ignores dispatched events and
// registrations. Calling Dispose again does nothing.
func (e *Element) Dispose() {
	if e.disposed {
		return
	}
	hooks := e.disposeHooks
	e.disposeHooks = nil
	for _, h := range hooks {
		h.fn()
	}
	e.handlers = handlerRegistry{}
	e.disposed = true
}

// onDispose registers fn to run at the start of Dispose and returns a func
// that unregisters it.
func (e *Element) onDispose(fn func()) (remove func()) {
	if e.disposed {
		return func() {}
	}
	id := e.handlers.allocID()
	e.disposeHooks = append(e.disposeHooks, disposeHook{id: id, fn: fn})
	return func() {
		e.disposeHooks = removeHandler(e.disposeHooks, func(h disposeHook) bool { return h.id == id })
	}
}

// IsDisposed reports whether Dispose has been called.
func (e *Element) IsDisposed() bool {
	return e.disposed
}

// --- Registration ---

// OnManipulationStarting registers fn for manipulation-starting events.
func (e *Element) OnManipulationStarting(fn func(*StartingEvent)) Handle {
	if e.disposed {
		return Handle{}
	}
	id := e.handlers.allocID()
	e.handlers.starting = append(e.handlers.starting, startingHandler{id: id, fn: fn})
	return Handle{id: id, reg: &e.handlers, event: EventManipulationStarting}
}

// OnManipulationInertiaStarting registers fn for inertia-starting events.
func (e *Element) OnManipulationInertiaStarting(fn func(*InertiaStartingEvent)) Handle {
	if e.disposed {
		return Handle{}
	}
	id := e.handlers.allocID()
	e.handlers.inertia = append(e.handlers.inertia, inertiaHandler{id: id, fn: fn})
	return Handle{id: id, reg: &e.handlers, event: EventManipulationInertiaStarting}
}

// OnManipulationDelta registers fn for delta events.
func (e *Element) OnManipulationDelta(fn func(*DeltaEvent)) Handle {
	if e.disposed {
		return Handle{}
	}
	id := e.handlers.allocID()
	e.handlers.delta = append(e.handlers.delta, deltaHandler{id: id, fn: fn})
	return Handle{id: id, reg: &e.handlers, event: EventManipulationDelta}
}

// --- Dispatch ---
//
// Handlers run in registration order over a snapshot, so a handler may
// remove itself or others mid-dispatch. A nil Source is set to the element.

// DispatchStarting delivers a manipulation-starting event.
func (e *Element) DispatchStarting(ev *StartingEvent) {
	if e.disposed {
		return
	}
	if ev.Source == nil {
		ev.Source = e
	}
	for _, h := range append([]startingHandler(nil), e.handlers.starting...) {
		h.fn(ev)
	}
}

// DispatchInertiaStarting delivers an inertia-starting event.
func (e *Element) DispatchInertiaStarting(ev *InertiaStartingEvent) {
	if e.disposed {
		return
	}
	if ev.Source == nil {
		ev.Source = e
	}
	for _, h := range append([]inertiaHandler(nil), e.handlers.inertia...) {
		h.fn(ev)
	}
}

// DispatchDelta delivers a delta event.
func (e *Element) DispatchDelta(ev *DeltaEvent) {
	if e.disposed {
		return
	}
	if ev.Source == nil {
		ev.Source = e
	}
	for _, h := range append([]deltaHandler(nil), e.handlers.delta...) {
		h.fn(ev)
	}
}
