package manipulate

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// minCoastExtent keeps the expansion axis from collapsing an element to zero
// size.
const minCoastExtent = 1.0

// coastAxis integrates one signed axis under constant deceleration.
// Displacement under constant deceleration a from speed v is
// D*(1-(1-t/T)^2) with T = v/a and D = v^2/(2a), which is exactly
// ease.OutQuad from 0 to D over T.
type coastAxis struct {
	tween *gween.Tween
	sign  float64
	prev  float32
	done  bool
}

func newCoastAxis(velocity, deceleration float64) coastAxis {
	speed := math.Abs(velocity)
	if speed == 0 || !(deceleration > 0) {
		return coastAxis{done: true}
	}
	duration := speed / deceleration
	distance := speed * speed / (2 * deceleration)
	return coastAxis{
		tween: gween.New(0, float32(distance), float32(duration), ease.OutQuad),
		sign:  math.Copysign(1, velocity),
	}
}

// step advances by dt milliseconds and returns the signed displacement
// covered during the step.
func (a *coastAxis) step(dt float32) float64 {
	if a.done {
		return 0
	}
	cur, finished := a.tween.Update(dt)
	d := cur - a.prev
	a.prev = cur
	a.done = finished
	return a.sign * float64(d)
}

// Coaster plays the input layer's part during an inertial phase: it
// integrates InertiaParameters into per-frame inertial deltas. Hosts that
// have no inertia processor of their own drive one Coaster per phase and
// stop it when the behavior reports boundary feedback.
//
// There is no global coaster manager; hosts call Step or Feed themselves.
type Coaster struct {
	translation coastAxis
	dirX, dirY  float64
	expandX     coastAxis
	expandY     coastAxis
	rotation    coastAxis
	extent      Vec2

	// OnFeedback, when set, observes the delta that triggered boundary
	// feedback during Feed.
	OnFeedback func(Delta)

	stopped bool
	frames  int
}

// NewCoaster creates a coaster for params. extent is the element's current
// visual width and height, used to turn expansion distance into scale
// factors.
func NewCoaster(params InertiaParameters, extent Vec2) *Coaster {
	c := &Coaster{extent: extent}

	v := params.Translation.InitialVelocity
	speed := math.Hypot(v.X, v.Y)
	c.translation = newCoastAxis(speed, params.Translation.DesiredDeceleration)
	if speed > 0 {
		c.dirX, c.dirY = v.X/speed, v.Y/speed
	}

	c.expandX = newCoastAxis(params.Expansion.InitialVelocity.X, params.Expansion.DesiredDeceleration)
	c.expandY = newCoastAxis(params.Expansion.InitialVelocity.Y, params.Expansion.DesiredDeceleration)
	c.rotation = newCoastAxis(params.Rotation.InitialVelocity, params.Rotation.DesiredDeceleration)

	c.extent.X = math.Max(c.extent.X, minCoastExtent)
	c.extent.Y = math.Max(c.extent.Y, minCoastExtent)
	return c
}

// Done reports whether every axis has come to rest or Stop was called.
func (c *Coaster) Done() bool {
	return c.stopped ||
		(c.translation.done && c.expandX.done && c.expandY.done && c.rotation.done)
}

// Stop ends the phase immediately.
func (c *Coaster) Stop() {
	c.stopped = true
}

// Frames returns how many non-empty deltas Step has produced.
func (c *Coaster) Frames() int {
	return c.frames
}

// Step advances the phase by dt milliseconds and returns the delta for that
// frame. ok is false once the phase is over; the delta is then the identity.
func (c *Coaster) Step(dt float32) (d Delta, ok bool) {
	if c.Done() {
		return IdentityDelta, false
	}

	dist := c.translation.step(dt)
	d.Translation = Vec2{dist * c.dirX, dist * c.dirY}
	d.Rotation = c.rotation.step(dt)
	d.Scale = Vec2{
		c.expand(&c.extent.X, c.expandX.step(dt)),
		c.expand(&c.extent.Y, c.expandY.step(dt)),
	}
	c.frames++
	return d, true
}

// expand grows *extent by grow (never below minCoastExtent) and returns the
// scale factor for that growth.
func (c *Coaster) expand(extent *float64, grow float64) float64 {
	next := math.Max(*extent+grow, minCoastExtent)
	f := next / *extent
	*extent = next
	return f
}

// Feed steps the coaster and dispatches the resulting inertial delta to el.
// Boundary feedback from el's handlers stops the coaster. Returns false once
// the phase is over.
func (c *Coaster) Feed(el *Element, dt float32) bool {
	d, ok := c.Step(dt)
	if !ok {
		return false
	}
	el.DispatchDelta(&DeltaEvent{
		Source:     el,
		Delta:      d,
		IsInertial: true,
		BoundaryFeedback: func(fd Delta) {
			c.Stop()
			if c.OnFeedback != nil {
				c.OnFeedback(fd)
			}
		},
	})
	return !c.Done()
}
