package ecs

import (
	"github.com/phanxgames/manipulate"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ManipulationEventType is the Donburi event type for manipulation events.
// Every record a Behavior emits is published on it: starting, inertia
// starting, each applied delta, boundary feedback and detach. Switch on
// ManipulationEvent.Type and use ElementID or SessionID to find the element.
var ManipulationEventType = events.NewEventType[manipulate.ManipulationEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on ManipulationEventType in emission order and delivered by
// ProcessEvents, normally once per ECS tick.
func NewDonburiSink(world donburi.World) manipulate.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event manipulate.ManipulationEvent) {
	ManipulationEventType.Publish(s.world, event)
}
