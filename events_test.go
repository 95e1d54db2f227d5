package manipulate

import "testing"

func TestHandleRemove(t *testing.T) {
	e := NewElement("e", 10, 10)
	calls := 0
	h := e.OnManipulationStarting(func(*StartingEvent) { calls++ })

	e.DispatchStarting(&StartingEvent{})
	h.Remove()
	e.DispatchStarting(&StartingEvent{})

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if e.HandlerCount() != 0 {
		t.Errorf("HandlerCount() = %d, want 0", e.HandlerCount())
	}
}

func TestHandleRemoveTwiceIsNoop(t *testing.T) {
	e := NewElement("e", 10, 10)
	h1 := e.OnManipulationDelta(func(*DeltaEvent) {})
	e.OnManipulationDelta(func(*DeltaEvent) {})

	h1.Remove()
	h1.Remove()
	if e.HandlerCount() != 1 {
		t.Errorf("HandlerCount() = %d, want 1", e.HandlerCount())
	}
}

func TestZeroHandleRemove(t *testing.T) {
	var h Handle
	h.Remove() // must not panic
}

func TestHandleRemoveKeepsOthersInOrder(t *testing.T) {
	e := NewElement("e", 10, 10)
	var order []string
	e.OnManipulationInertiaStarting(func(*InertiaStartingEvent) { order = append(order, "a") })
	hb := e.OnManipulationInertiaStarting(func(*InertiaStartingEvent) { order = append(order, "b") })
	e.OnManipulationInertiaStarting(func(*InertiaStartingEvent) { order = append(order, "c") })

	hb.Remove()
	e.DispatchInertiaStarting(&InertiaStartingEvent{})
	if len(order) != 2 || order[0] != "a" || order[1] != "c" {
		t.Errorf("order = %v, want [a c]", order)
	}
}

func TestRemoveDuringDispatch(t *testing.T) {
	e := NewElement("e", 10, 10)
	var calls []string
	var h Handle
	h = e.OnManipulationDelta(func(*DeltaEvent) {
		calls = append(calls, "self-removing")
		h.Remove()
	})
	e.OnManipulationDelta(func(*DeltaEvent) { calls = append(calls, "other") })

	e.DispatchDelta(&DeltaEvent{Delta: IdentityDelta})
	e.DispatchDelta(&DeltaEvent{Delta: IdentityDelta})

	want := []string{"self-removing", "other", "other"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestReportBoundaryFeedbackWithoutConsumer(t *testing.T) {
	ev := &DeltaEvent{Delta: IdentityDelta}
	ev.ReportBoundaryFeedback(ev.Delta) // must not panic
}
