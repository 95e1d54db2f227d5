package manipulate

// ContainerFunc returns the rectangle an element must stay inside while
// coasting. It is called once per inertial delta so it may track a
// resizing window or monitor.
type ContainerFunc func() Rect

// FixedContainer returns a ContainerFunc that always reports r.
func FixedContainer(r Rect) ContainerFunc {
	return func() Rect { return r }
}

// ScreenContainer returns a ContainerFunc for a screen of the given size
// with its origin at (0, 0).
func ScreenContainer(width, height float64) ContainerFunc {
	return FixedContainer(Rect{Width: width, Height: height})
}

// NeedsBoundaryFeedback reports whether shape has left container during
// inertial motion. Interactive motion never needs feedback; the user is
// still holding the element.
func NeedsBoundaryFeedback(container, shape Rect, inertial bool) bool {
	return inertial && !container.ContainsRect(shape)
}
