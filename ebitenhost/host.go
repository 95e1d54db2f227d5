// Package ebitenhost connects manipulate elements to an Ebitengine game:
// it converts transforms to ebiten.GeoM, reports the primary monitor as the
// containing rectangle, and drives an element from mouse input.
package ebitenhost

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/manipulate"
)

const (
	defaultDragDeadZone = 4.0  // pixels
	wheelZoomStep       = 1.1  // scale factor per wheel notch
	keyRotateStep       = 2.0  // degrees per frame while Q or E is held
	velocitySmoothing   = 0.35 // weight of the newest sample in the release velocity
)

// GeoM converts m to an ebiten.GeoM.
func GeoM(m manipulate.Matrix) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// FromGeoM converts g to a Matrix.
func FromGeoM(g ebiten.GeoM) manipulate.Matrix {
	return manipulate.Matrix{
		g.Element(0, 0), g.Element(1, 0),
		g.Element(0, 1), g.Element(1, 1),
		g.Element(0, 2), g.Element(1, 2),
	}
}

// PrimaryScreen returns a ContainerFunc reporting the size of the monitor
// the game window is on, in device-independent pixels.
func PrimaryScreen() manipulate.ContainerFunc {
	return func() manipulate.Rect {
		w, h := ebiten.Monitor().Size()
		return manipulate.Rect{Width: float64(w), Height: float64(h)}
	}
}

// Window returns a ContainerFunc reporting the current window size.
func Window() manipulate.ContainerFunc {
	return func() manipulate.Rect {
		w, h := ebiten.WindowSize()
		return manipulate.Rect{Width: float64(w), Height: float64(h)}
	}
}

// DrawElement draws img stretched to el's render size under el's transform.
func DrawElement(dst, img *ebiten.Image, el *manipulate.Element, op *ebiten.DrawImageOptions) {
	if op == nil {
		op = &ebiten.DrawImageOptions{}
	}
	w, h := el.RenderSize()
	b := img.Bounds()
	op.GeoM.Reset()
	if b.Dx() > 0 && b.Dy() > 0 {
		op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	}
	op.GeoM.Concat(GeoM(el.Transform()))
	dst.DrawImage(img, op)
}

// --- Input ---

// Input is the per-frame pointer state MouseHost reads. The default reads
// ebiten's mouse and keyboard; tests substitute their own.
type Input interface {
	CursorPosition() (x, y float64)
	Pressed() bool
	Wheel() (dx, dy float64)
	// Rotate returns -1, 0 or +1 for counter-clockwise, none, clockwise.
	Rotate() float64
}

type ebitenInput struct{}

func (ebitenInput) CursorPosition() (float64, float64) {
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y)
}

func (ebitenInput) Pressed() bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

func (ebitenInput) Wheel() (float64, float64) {
	return ebiten.Wheel()
}

func (ebitenInput) Rotate() float64 {
	var r float64
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		r--
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		r++
	}
	return r
}

// ResetPressed reports whether the reset key (R) was pressed this frame.
func ResetPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyR)
}

// --- MouseHost ---

// MouseHost is a minimal input layer for one element: dragging pans, the
// wheel zooms and Q/E rotate, all delivered as manipulation events. On
// release it asks the element for inertia and coasts it with a Coaster
// until the element comes to rest or reports boundary feedback.
type MouseHost struct {
	el    *manipulate.Element
	input Input

	// DragDeadZone is the distance in pixels the pointer must move before
	// a press becomes a manipulation.
	DragDeadZone float64

	// OnFeedback, if set, is called when a coast stops at the container edge.
	OnFeedback func(manipulate.Delta)

	down     bool
	active   bool
	turning  bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	velocity manipulate.Vec2
	angular  float64

	coaster *manipulate.Coaster
}

// NewMouseHost creates a host that drives el from ebiten's mouse and
// keyboard.
func NewMouseHost(el *manipulate.Element) *MouseHost {
	return NewMouseHostWithInput(el, ebitenInput{})
}

// NewMouseHostWithInput creates a host that reads input from in.
func NewMouseHostWithInput(el *manipulate.Element, in Input) *MouseHost {
	return &MouseHost{el: el, input: in, DragDeadZone: defaultDragDeadZone}
}

// Coasting reports whether an inertial phase is running.
func (h *MouseHost) Coasting() bool {
	return h.coaster != nil
}

// Update processes one frame of input. dtMs is the frame time in
// milliseconds; pass 1000/ebiten.TPS() from Game.Update.
func (h *MouseHost) Update(dtMs float64) {
	x, y := h.input.CursorPosition()
	pressed := h.input.Pressed()

	switch {
	case pressed && !h.down:
		h.press(x, y)
	case pressed && h.down:
		h.move(x, y, dtMs)
	case !pressed && h.down:
		h.release()
	}

	h.wheelAndKeys(dtMs)

	if h.coaster != nil && !h.coaster.Feed(h.el, float32(dtMs)) {
		h.coaster = nil
	}
}

func (h *MouseHost) press(x, y float64) {
	lx, ly := h.el.ParentToLocal(x, y)
	w, ht := h.el.RenderSize()
	if !(manipulate.Rect{Width: w, Height: ht}).Contains(lx, ly) {
		return
	}
	// A new touch ends any inertia in flight.
	h.coaster = nil
	h.down = true
	h.active = false
	h.startX, h.startY = x, y
	h.lastX, h.lastY = x, y
	h.velocity = manipulate.Vec2{}
	h.angular = 0
}

func (h *MouseHost) move(x, y, dtMs float64) {
	if !h.active {
		if math.Hypot(x-h.startX, y-h.startY) < h.DragDeadZone {
			return
		}
		h.begin()
	}
	dx, dy := x-h.lastX, y-h.lastY
	h.lastX, h.lastY = x, y
	if dtMs > 0 {
		h.velocity.X += velocitySmoothing * (dx/dtMs - h.velocity.X)
		h.velocity.Y += velocitySmoothing * (dy/dtMs - h.velocity.Y)
	}
	if dx == 0 && dy == 0 {
		return
	}
	h.el.DispatchDelta(&manipulate.DeltaEvent{
		Source: h.el,
		Delta:  manipulate.Delta{Scale: manipulate.Vec2{X: 1, Y: 1}, Translation: manipulate.Vec2{X: dx, Y: dy}},
	})
}

func (h *MouseHost) release() {
	h.down = false
	if !h.active {
		return
	}
	h.active = false
	ev := &manipulate.InertiaStartingEvent{
		Source:            h.el,
		InitialVelocities: manipulate.Velocities{Linear: h.velocity, Angular: h.angular},
	}
	h.el.DispatchInertiaStarting(ev)
	if !ev.Handled {
		return
	}
	b := h.el.Bounds()
	h.coaster = manipulate.NewCoaster(ev.Inertia, manipulate.Vec2{X: b.Width, Y: b.Height})
	h.coaster.OnFeedback = h.OnFeedback
}

// begin dispatches manipulation-starting once per gesture.
func (h *MouseHost) begin() {
	h.active = true
	h.el.DispatchStarting(&manipulate.StartingEvent{Source: h.el})
}

// wheelAndKeys applies zoom and rotation. Outside a drag, a run of
// consecutive wheel or key frames counts as one gesture.
func (h *MouseHost) wheelAndKeys(dtMs float64) {
	_, wy := h.input.Wheel()
	rot := h.input.Rotate() * keyRotateStep
	if wy == 0 && rot == 0 {
		h.turning = false
		if !h.down {
			h.angular = 0
		}
		return
	}
	if !h.active && !h.turning {
		h.coaster = nil
		h.turning = true
		h.el.DispatchStarting(&manipulate.StartingEvent{Source: h.el})
	}
	s := math.Pow(wheelZoomStep, wy)
	if dtMs > 0 {
		h.angular += velocitySmoothing * (rot/dtMs - h.angular)
	}
	h.el.DispatchDelta(&manipulate.DeltaEvent{
		Source: h.el,
		Delta:  manipulate.Delta{Scale: manipulate.Vec2{X: s, Y: s}, Rotation: rot},
	})
}
