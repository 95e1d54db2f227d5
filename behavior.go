package manipulate

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Behavior turns an element's manipulation events into transform updates.
// Attach wires it to an element; the returned Attachment (or Detach) unwires
// it. A single Behavior may be attached to several elements; each keeps its
// own transform.
//
// All methods must be called from the thread that dispatches manipulation
// events.
type Behavior struct {
	policy    DecelerationPolicy
	container ContainerFunc
	// containerSet is true once the host supplied its own container.
	containerSet bool
	command      func()
	sink         EventSink
	logger       *log.Logger
	debug        bool

	attached map[uint32]*Attachment
}

// Option configures a Behavior.
type Option func(*Behavior)

// WithConfig applies the deceleration policy, log level and debug flag of
// cfg. The configured screen becomes the container only when no
// WithContainer or SetContainer has supplied one. An invalid cfg is logged
// and ignored; use ApplyConfig to get the error.
func WithConfig(cfg Config) Option {
	return func(b *Behavior) {
		if err := b.applyConfig(cfg); err != nil {
			b.logger.Warn("config ignored", "err", err)
		}
	}
}

// applyConfig validates cfg and installs it. The behavior keeps sharing its
// logger unless cfg asks for a different level; then it gets its own copy,
// and later SetLogLevel calls no longer reach it.
func (b *Behavior) applyConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	b.policy = cfg.Policy()
	if !b.containerSet {
		b.container = cfg.Container()
	}
	b.debug = cfg.Debug
	if cfg.LogLevel != "" {
		lvl, err := log.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
		}
		if lvl != b.logger.GetLevel() {
			b.logger = b.logger.With()
			b.logger.SetLevel(lvl)
		}
	}
	return nil
}

// WithContainer sets the rectangle inertial motion must stay inside.
func WithContainer(fn ContainerFunc) Option {
	return func(b *Behavior) { b.SetContainer(fn) }
}

// WithCommand sets the callback invoked whenever a manipulation is detected.
func WithCommand(fn func()) Option {
	return func(b *Behavior) { b.command = fn }
}

// WithSink forwards every handled event to sink.
func WithSink(sink EventSink) Option {
	return func(b *Behavior) { b.sink = sink }
}

// WithLogger replaces the package logger for this behavior.
func WithLogger(l *log.Logger) Option {
	return func(b *Behavior) { b.logger = l }
}

// WithDebug enables invariant checks that panic on violation.
func WithDebug(enabled bool) Option {
	return func(b *Behavior) { b.debug = enabled }
}

// NewBehavior creates a behavior with DefaultConfig, modified by opts.
func NewBehavior(opts ...Option) *Behavior {
	cfg := DefaultConfig()
	b := &Behavior{
		policy:    cfg.Policy(),
		container: cfg.Container(),
		logger:    packageLogger(),
		attached:  make(map[uint32]*Attachment),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Policy returns the deceleration policy used for new inertial phases.
func (b *Behavior) Policy() DecelerationPolicy {
	return b.policy
}

// SetPolicy replaces the deceleration policy. Phases already started keep
// the parameters they were given.
func (b *Behavior) SetPolicy(p DecelerationPolicy) {
	b.policy = p
}

// SetContainer replaces the containing rectangle provider. Later configs
// no longer change it; a nil fn returns to the configured screen on the next
// ApplyConfig.
func (b *Behavior) SetContainer(fn ContainerFunc) {
	if fn == nil {
		b.containerSet = false
		return
	}
	b.container = fn
	b.containerSet = true
}

// SetCommand replaces the manipulation-detected callback. nil disables it.
func (b *Behavior) SetCommand(fn func()) {
	b.command = fn
}

// ApplyConfig applies a reloaded config to a behavior that already exists.
// An invalid cfg is rejected with an error wrapping ErrInvalidConfig and the
// behavior is left unchanged.
func (b *Behavior) ApplyConfig(cfg Config) error {
	return b.applyConfig(cfg)
}

// --- Attachment lifecycle ---

// Attachment is the registration of a Behavior on one element. Detach
// removes every handler Attach registered.
type Attachment struct {
	behavior  *Behavior
	element   *Element
	sessionID string
	handles   [3]Handle
	unhook    func()
	detached  bool
}

// SessionID returns the unique id of this attachment, carried in log lines
// and sink records.
func (a *Attachment) SessionID() string {
	return a.sessionID
}

// Element returns the element this attachment is registered on.
func (a *Attachment) Element() *Element {
	return a.element
}

// Detached reports whether Detach has run.
func (a *Attachment) Detached() bool {
	return a.detached
}

// Detach unregisters the three handlers. Calling it again does nothing.
// Disposing the element detaches it too.
func (a *Attachment) Detach() {
	if a == nil || a.detached {
		return
	}
	a.detached = true
	for _, h := range a.handles {
		h.Remove()
	}
	if a.unhook != nil {
		a.unhook()
	}
	if a.behavior.attached[a.element.ID] == a {
		delete(a.behavior.attached, a.element.ID)
	}
	a.behavior.logger.Debug("detached", "element", a.element.Name, "session", a.sessionID)
	a.behavior.emit(a, ManipulationEvent{Type: EventDetached, Transform: a.element.Transform()})
}

// Attach registers handlers for manipulation-starting, inertia-starting and
// delta events on el. Attaching to an element that already has an
// attachment from b replaces it. Returns nil for a nil element.
func (b *Behavior) Attach(el *Element) *Attachment {
	if el == nil {
		return nil
	}
	if b.debug {
		debugCheckDisposed(el, "Attach")
	}
	if prev := b.attached[el.ID]; prev != nil {
		prev.Detach()
	}
	a := &Attachment{
		behavior:  b,
		element:   el,
		sessionID: uuid.NewString(),
	}
	a.handles[0] = el.OnManipulationStarting(a.OnManipulationStarting)
	a.handles[1] = el.OnManipulationInertiaStarting(a.OnManipulationInertiaStarting)
	a.handles[2] = el.OnManipulationDelta(a.OnManipulationDelta)
	a.unhook = el.onDispose(a.Detach)
	b.attached[el.ID] = a
	b.logger.Debug("attached", "element", el.Name, "session", a.sessionID)
	return a
}

// Detach removes b's attachment from el. No-op when b is not attached to el.
func (b *Behavior) Detach(el *Element) {
	if el == nil {
		return
	}
	b.attached[el.ID].Detach()
}

// Attachment returns b's attachment on el, or nil.
func (b *Behavior) Attachment(el *Element) *Attachment {
	if el == nil {
		return nil
	}
	return b.attached[el.ID]
}

// --- Event handlers ---

// OnManipulationStarting allows every manipulation mode and makes the
// attached element the manipulation container, then invokes the command.
func (a *Attachment) OnManipulationStarting(e *StartingEvent) {
	if a.detached {
		return
	}
	b := a.behavior
	e.Mode = ModeAll
	e.Container = a.element
	e.Handled = true
	if b.command != nil {
		b.command()
	}
	b.emit(a, ManipulationEvent{Type: EventManipulationStarting, Transform: a.element.Transform()})
}

// OnManipulationInertiaStarting hands the input layer the deceleration
// model for the phase that follows.
func (a *Attachment) OnManipulationInertiaStarting(e *InertiaStartingEvent) {
	if a.detached {
		return
	}
	b := a.behavior
	e.Inertia = ComputeInertia(e.InitialVelocities, b.policy)
	e.Handled = true
	b.logger.Debug("inertia starting",
		"element", a.element.Name,
		"session", a.sessionID,
		"linear", e.InitialVelocities.Linear,
		"angular", e.InitialVelocities.Angular,
		"expansion", e.InitialVelocities.Expansion)
	b.emit(a, ManipulationEvent{Type: EventManipulationInertiaStarting, Inertia: e.Inertia, Transform: a.element.Transform()})
}

// OnManipulationDelta applies e.Delta to the event source's transform and,
// while coasting, reports boundary feedback when the source leaves the
// containing rectangle. Sources without geometry are ignored.
func (a *Attachment) OnManipulationDelta(e *DeltaEvent) {
	if a.detached {
		return
	}
	b := a.behavior
	src, ok := manipulableSource(e.Source)
	if !ok {
		b.logger.Debug("delta ignored: source has no geometry", "source", describeSource(e.Source))
		return
	}

	res := applyToSource(src, e.Delta, e.IsInertial, b.container)
	if !res.applied {
		b.logger.Warn("delta rejected: result is not a valid transform",
			"source", describeSource(src), "delta", e.Delta)
		return
	}
	if b.debug {
		debugCheckTransform(src, "delta")
	}
	e.Handled = true
	b.emit(a, ManipulationEvent{
		Type:       EventManipulationDelta,
		Delta:      e.Delta,
		IsInertial: e.IsInertial,
		Transform:  res.matrix,
		Bounds:     res.bounds,
	})

	if res.feedback {
		b.logger.Debug("boundary feedback", "source", describeSource(src), "session", a.sessionID, "bounds", res.bounds)
		e.ReportBoundaryFeedback(e.Delta)
		b.emit(a, ManipulationEvent{
			Type:       EventBoundaryFeedback,
			Delta:      e.Delta,
			IsInertial: true,
			Transform:  res.matrix,
			Bounds:     res.bounds,
		})
	}
}

func (b *Behavior) emit(a *Attachment, ev ManipulationEvent) {
	if b.sink == nil {
		return
	}
	ev.ElementID = a.element.ID
	ev.SessionID = a.sessionID
	b.sink.EmitEvent(ev)
}
