// Package manipulate turns multi-touch manipulation events into a composed
// 2D affine transform, with inertial deceleration after release and boundary
// feedback that keeps coasting elements on screen.
//
// The host input layer recognizes gestures and delivers already aggregated
// manipulation events; the host renderer draws each [Element] with its
// [Element.Transform]. This package sits between them.
//
// # Quick start
//
//	el := manipulate.NewElement("photo", 400, 300)
//	b := manipulate.NewBehavior(manipulate.WithContainer(
//		manipulate.ScreenContainer(1920, 1080)))
//	att := b.Attach(el)
//	defer att.Detach()
//
//	// From the input layer:
//	el.DispatchStarting(&manipulate.StartingEvent{})
//	el.DispatchDelta(&manipulate.DeltaEvent{
//		Delta: manipulate.Delta{Scale: manipulate.Vec2{X: 1.1, Y: 1.1}},
//	})
//
// # Composition order
//
// Each delta scales, then rotates, about the element's live center (its local
// center mapped through the current transform), then translates. See
// [ApplyDelta].
//
// # Inertia
//
// When contact ends the input layer dispatches an [InertiaStartingEvent] and
// receives [InertiaParameters] built from the configured
// [DecelerationPolicy]. Hosts without an inertia processor can integrate them
// with a [Coaster], which stops as soon as the behavior reports boundary
// feedback.
//
// # Threading
//
// Everything runs on the thread that dispatches events. Nothing blocks and
// no locks are taken. [ConfigWatcher] is the only goroutine; the host polls
// [ConfigWatcher.Latest] each frame and applies what it gets with
// [Behavior.ApplyConfig], which rejects invalid configs and leaves a
// host-supplied container alone.
//
// Adapters live in sub-packages: ebitenhost for [Ebitengine] hosts, and the
// separate ecs module for forwarding events into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package manipulate
