// Package ecs provides ECS adapters for manipulate.
//
// The primary adapter is [NewDonburiSink], which forwards handled
// manipulation events (starting, inertia, delta, boundary feedback, detach)
// into a [Donburi] world as typed events. Subscribe to
// [ManipulationEventType] in your ECS systems to receive them.
//
// Usage:
//
//	b := manipulate.NewBehavior(manipulate.WithSink(ecs.NewDonburiSink(world)))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
