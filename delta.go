package manipulate

// LiveCenter returns the pivot for scale and rotation: the local center
// (w/2, h/2) mapped through m, so repeated manipulations pivot about the
// element's current visual center.
func LiveCenter(m Matrix, w, h float64) Vec2 {
	return m.ApplyVec(Vec2{w / 2, h / 2})
}

// ApplyDelta composes d onto m about center.
//
// Composition order:
//
//	ScaleAt(center) -> RotateAt(center) -> Translate
//
// Scale and rotation share the pre-translation pivot; translation is applied
// last and is never pivot-relative. Reordering changes the visual result.
func ApplyDelta(m Matrix, center Vec2, d Delta) Matrix {
	m = m.ScaleAt(d.Scale.X, d.Scale.Y, center.X, center.Y)
	m = m.RotateAt(d.Rotation, center.X, center.Y)
	return m.Translate(d.Translation.X, d.Translation.Y)
}

// manipulableSource is the identity guard on an event source: it must
// expose geometry and must not be a nil element.
func manipulableSource(source any) (Manipulable, bool) {
	if el, ok := source.(*Element); ok {
		return el, el != nil
	}
	src, ok := source.(Manipulable)
	return src, ok
}

// deltaResult is the outcome of applying one delta to one source.
type deltaResult struct {
	matrix   Matrix
	bounds   Rect
	applied  bool
	feedback bool
}

// applyToSource runs one delta against src: compute the live center,
// compose, write back, and decide boundary feedback. A result that would
// break the transform invariant is not written.
func applyToSource(src Manipulable, d Delta, inertial bool, container ContainerFunc) deltaResult {
	w, h := src.RenderSize()
	m := src.Transform()
	next := ApplyDelta(m, LiveCenter(m, w, h), d)
	if !next.IsValid() {
		return deltaResult{matrix: m}
	}
	src.SetTransform(next)

	res := deltaResult{matrix: next, applied: true}
	if inertial {
		res.bounds = next.TransformRect(Rect{Width: w, Height: h})
		res.feedback = NeedsBoundaryFeedback(container(), res.bounds, true)
	}
	return res
}
