package ebitenhost

import (
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/phanxgames/manipulate"
)

const frameMs = 1000.0 / 60

type fakeInput struct {
	x, y    float64
	pressed bool
	wheel   float64
	rotate  float64
}

func (f *fakeInput) CursorPosition() (float64, float64) { return f.x, f.y }
func (f *fakeInput) Pressed() bool                      { return f.pressed }
func (f *fakeInput) Wheel() (float64, float64)          { return 0, f.wheel }
func (f *fakeInput) Rotate() float64                    { return f.rotate }

func newHost(t *testing.T) (*MouseHost, *fakeInput, *manipulate.Element, *int) {
	t.Helper()
	el := manipulate.NewElement("card", 100, 100)
	b := manipulate.NewBehavior(
		manipulate.WithLogger(log.New(io.Discard)),
		manipulate.WithContainer(manipulate.ScreenContainer(1920, 1080)),
	)
	b.Attach(el)
	starts := 0
	el.OnManipulationStarting(func(*manipulate.StartingEvent) { starts++ })
	in := &fakeInput{}
	return NewMouseHostWithInput(el, in), in, el, &starts
}

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// --- GeoM ---

func TestGeoMRoundTrip(t *testing.T) {
	m := manipulate.Identity.ScaleAt(1.5, 0.5, 20, 30).RotateAt(33, 10, 10).Translate(7, -9)
	got := FromGeoM(GeoM(m))
	for i := range m {
		assertNear(t, "element", got[i], m[i])
	}
}

func TestGeoMAppliesLikeMatrix(t *testing.T) {
	m := manipulate.Identity.RotateAt(90, 50, 50).Translate(10, 0)
	g := GeoM(m)
	gx, gy := g.Apply(100, 0)
	mx, my := m.Apply(100, 0)
	assertNear(t, "x", gx, mx)
	assertNear(t, "y", gy, my)
}

// --- MouseHost ---

func TestPressOutsideElementIsIgnored(t *testing.T) {
	h, in, el, starts := newHost(t)
	in.x, in.y, in.pressed = 500, 500, true
	h.Update(frameMs)
	in.x = 600
	h.Update(frameMs)

	if *starts != 0 {
		t.Errorf("starting dispatched %d times", *starts)
	}
	if el.Transform() != manipulate.Identity {
		t.Errorf("transform = %v, want identity", el.Transform())
	}
}

func TestDragWithinDeadZoneDoesNotManipulate(t *testing.T) {
	h, in, el, starts := newHost(t)
	in.x, in.y, in.pressed = 50, 50, true
	h.Update(frameMs)
	in.x = 52
	h.Update(frameMs)
	in.pressed = false
	h.Update(frameMs)

	if *starts != 0 {
		t.Errorf("starting dispatched %d times", *starts)
	}
	if el.Transform() != manipulate.Identity {
		t.Errorf("transform = %v, want identity", el.Transform())
	}
	if h.Coasting() {
		t.Error("a click should not start inertia")
	}
}

func TestDragTranslatesElement(t *testing.T) {
	h, in, el, starts := newHost(t)
	in.x, in.y, in.pressed = 50, 50, true
	h.Update(frameMs)
	in.x, in.y = 60, 50
	h.Update(frameMs)
	in.x, in.y = 70, 55
	h.Update(frameMs)

	if *starts != 1 {
		t.Errorf("starting dispatched %d times, want 1", *starts)
	}
	m := el.Transform()
	assertNear(t, "tx", m[4], 20)
	assertNear(t, "ty", m[5], 5)
}

func TestReleaseCoastsAndComesToRest(t *testing.T) {
	h, in, el, _ := newHost(t)
	in.x, in.y, in.pressed = 50, 50, true
	h.Update(frameMs)
	for i := 0; i < 10; i++ {
		in.x += 5
		h.Update(frameMs)
	}
	releasedAt := el.Transform()[4]
	in.pressed = false
	h.Update(frameMs)
	if !h.Coasting() {
		t.Fatal("release after a drag should start coasting")
	}

	for i := 0; h.Coasting(); i++ {
		if i > 10000 {
			t.Fatal("coaster never came to rest")
		}
		h.Update(frameMs)
	}
	if el.Transform()[4] <= releasedAt {
		t.Errorf("tx = %v, want past %v after coasting", el.Transform()[4], releasedAt)
	}
}

func TestPressStopsCoasting(t *testing.T) {
	h, in, el, _ := newHost(t)
	in.x, in.y, in.pressed = 50, 50, true
	h.Update(frameMs)
	for i := 0; i < 10; i++ {
		in.x += 5
		h.Update(frameMs)
	}
	in.pressed = false
	h.Update(frameMs)

	// Catch the element where it is now.
	cx, cy := el.LocalToParent(50, 50)
	in.x, in.y, in.pressed = cx, cy, true
	h.Update(frameMs)
	if h.Coasting() {
		t.Error("press on the element should stop inertia")
	}
}

func TestWheelZoomsAboutCenter(t *testing.T) {
	h, in, el, starts := newHost(t)
	in.x, in.y = 50, 50
	in.wheel = 1
	h.Update(frameMs)
	h.Update(frameMs)
	in.wheel = 0
	h.Update(frameMs)

	if *starts != 1 {
		t.Errorf("starting dispatched %d times, want 1 per wheel gesture", *starts)
	}
	m := el.Transform()
	want := wheelZoomStep * wheelZoomStep
	assertNear(t, "scale", m[0], want)
	cx, cy := m.Apply(50, 50)
	assertNear(t, "center.x", cx, 50)
	assertNear(t, "center.y", cy, 50)
}

func TestRotateKeysTurnClockwise(t *testing.T) {
	h, in, el, _ := newHost(t)
	in.rotate = 1
	h.Update(frameMs)

	m := el.Transform()
	rad := keyRotateStep * math.Pi / 180
	assertNear(t, "a", m[0], math.Cos(rad))
	assertNear(t, "b", m[1], math.Sin(rad))
}

func TestCoastStopsAtScreenEdge(t *testing.T) {
	h, in, el, _ := newHost(t)
	el.SetTransform(manipulate.Identity.Translate(1800, 0))
	feedback := 0
	h.OnFeedback = func(manipulate.Delta) { feedback++ }

	in.x, in.y, in.pressed = 1850, 50, true
	h.Update(frameMs)
	for i := 0; i < 5; i++ {
		in.x += 15
		h.Update(frameMs)
	}
	in.pressed = false
	h.Update(frameMs)

	for i := 0; h.Coasting(); i++ {
		if i > 10000 {
			t.Fatal("coaster never stopped")
		}
		h.Update(frameMs)
	}
	if feedback != 1 {
		t.Errorf("feedback fired %d times, want 1", feedback)
	}
}
