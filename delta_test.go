package manipulate

import (
	"math"
	"testing"
)

// --- Composition order ---

func TestApplyDeltaOrderMatters(t *testing.T) {
	m := Matrix{1.2, 0.1, -0.1, 0.9, 30, 40}
	center := LiveCenter(m, 100, 100)
	d := Delta{Scale: Vec2{2, 1.5}, Rotation: 30, Translation: Vec2{10, 20}}

	specified := ApplyDelta(m, center, d)
	reordered := m.
		Translate(d.Translation.X, d.Translation.Y).
		ScaleAt(d.Scale.X, d.Scale.Y, center.X, center.Y).
		RotateAt(d.Rotation, center.X, center.Y)

	same := true
	for i := range specified {
		if math.Abs(specified[i]-reordered[i]) > 1e-6 {
			same = false
		}
	}
	if same {
		t.Fatalf("scale→rotate→translate and translate→scale→rotate agree: %v", specified)
	}
}

func TestApplyDeltaMatchesExplicitComposition(t *testing.T) {
	m := Matrix{1, 0, 0, 1, 15, -5}
	c := Vec2{40, 60}
	d := Delta{Scale: Vec2{0.5, 0.5}, Rotation: -45, Translation: Vec2{3, 4}}

	want := m.ScaleAt(0.5, 0.5, 40, 60).RotateAt(-45, 40, 60).Translate(3, 4)
	assertMatrix(t, "composed", ApplyDelta(m, c, d), want)
}

func TestApplyDeltaTranslationNotPivotRelative(t *testing.T) {
	d := Delta{Scale: Vec2{3, 3}, Rotation: 90, Translation: Vec2{7, 9}}
	m := ApplyDelta(Identity, Vec2{0, 0}, d)
	// Origin is the pivot, so it only moves by the raw translation.
	x, y := m.Apply(0, 0)
	assertNear(t, "x", x, 7)
	assertNear(t, "y", y, 9)
}

// --- Pivot ---

func TestScaleAboutLiveCenterKeepsCenterFixed(t *testing.T) {
	const w, h = 100.0, 50.0
	m := Identity
	beforeX, beforeY := m.Apply(50, 25)

	m = ApplyDelta(m, LiveCenter(m, w, h), Delta{Scale: Vec2{2, 2}})
	afterX, afterY := m.Apply(50, 25)

	assertNear(t, "center.x", afterX, beforeX)
	assertNear(t, "center.y", afterY, beforeY)
	assertMatrix(t, "scaled", m, Matrix{2, 0, 0, 2, -50, -25})
}

func TestLiveCenterFollowsPreviousManipulation(t *testing.T) {
	m := Identity.Translate(200, 100)
	c := LiveCenter(m, 100, 50)
	assertNear(t, "center.x", c.X, 250)
	assertNear(t, "center.y", c.Y, 125)

	// Rotating about the live center leaves the visual center in place.
	m = ApplyDelta(m, c, Delta{Scale: Vec2{1, 1}, Rotation: 45})
	x, y := m.Apply(50, 25)
	assertNear(t, "rotated center.x", x, 250)
	assertNear(t, "rotated center.y", y, 125)
}

// --- Zero delta ---

func TestIdentityDeltaLeavesMatrixUnchanged(t *testing.T) {
	matrices := []Matrix{
		Identity,
		{1.5, 0, 0, 1.5, -25, -25},
		Identity.RotateAt(37, 10, 10).ScaleAt(0.3, 2, 5, 5).Translate(100, -40),
	}
	for _, m := range matrices {
		got := ApplyDelta(m, LiveCenter(m, 80, 60), IdentityDelta)
		assertMatrix(t, "identity delta", got, m)
	}
}

func TestDeltaIsIdentity(t *testing.T) {
	if !IdentityDelta.IsIdentity() {
		t.Error("IdentityDelta.IsIdentity() = false")
	}
	if (Delta{}).IsIdentity() {
		t.Error("zero Delta has zero scale and is not the identity")
	}
}

// --- Source guard ---

type fakeGeometry struct {
	w, h float64
	m    Matrix
	sets int
}

func (f *fakeGeometry) RenderSize() (float64, float64) { return f.w, f.h }
func (f *fakeGeometry) Transform() Matrix              { return f.m }
func (f *fakeGeometry) SetTransform(m Matrix)          { f.m = m; f.sets++ }

func TestManipulableSource(t *testing.T) {
	var nilElement *Element
	tests := []struct {
		name   string
		source any
		want   bool
	}{
		{"element", NewElement("e", 10, 10), true},
		{"custom geometry", &fakeGeometry{w: 1, h: 1, m: Identity}, true},
		{"nil", nil, false},
		{"nil element", nilElement, false},
		{"string", "not geometry", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := manipulableSource(tt.source); ok != tt.want {
				t.Errorf("manipulableSource(%T) ok = %v, want %v", tt.source, ok, tt.want)
			}
		})
	}
}

func TestApplyToSourceRejectsDegenerateResult(t *testing.T) {
	src := &fakeGeometry{w: 10, h: 10, m: Identity}
	res := applyToSource(src, Delta{Scale: Vec2{0, 1}}, false, ScreenContainer(100, 100))
	if res.applied {
		t.Fatal("zero scale should not be applied")
	}
	if src.sets != 0 {
		t.Errorf("SetTransform called %d times", src.sets)
	}
	assertMatrix(t, "unchanged", src.m, Identity)
}

func TestApplyToSourceBoundsOnlyWhenInertial(t *testing.T) {
	src := &fakeGeometry{w: 10, h: 10, m: Identity}
	d := Delta{Scale: Vec2{1, 1}, Translation: Vec2{500, 0}}

	res := applyToSource(src, d, false, ScreenContainer(100, 100))
	if res.feedback {
		t.Error("interactive delta should not request feedback")
	}

	res = applyToSource(src, IdentityDelta, true, ScreenContainer(100, 100))
	if !res.feedback {
		t.Error("inertial delta outside container should request feedback")
	}
	assertRect(t, "bounds", res.bounds, Rect{X: 500, Y: 0, Width: 10, Height: 10})
}
