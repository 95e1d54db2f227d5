package manipulate

import "fmt"

// debugCheckTransform panics with a descriptive message when an element's
// transform breaks the affine invariant. Only called when the behavior is in
// debug mode; release mode relies on applyToSource refusing invalid writes.
func debugCheckTransform(src Manipulable, op string) {
	m := src.Transform()
	if !m.IsValid() {
		panic(fmt.Sprintf("manipulate debug: %s left invalid transform %v on %s", op, m, describeSource(src)))
	}
}

// debugCheckDisposed panics when a disposed element is attached.
func debugCheckDisposed(e *Element, op string) {
	if e.disposed {
		panic(fmt.Sprintf("manipulate debug: %s on disposed element %q (ID was %d)", op, e.Name, e.ID))
	}
}

func describeSource(src any) string {
	if e, ok := src.(*Element); ok {
		return fmt.Sprintf("element %q (ID %d)", e.Name, e.ID)
	}
	return fmt.Sprintf("%T", src)
}
