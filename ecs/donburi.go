package ecs

import (
	"github.com/phanxgames/grip"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for grip interaction events.
// Subscribe to this in your ECS systems to receive drag, drop and gesture
// events.
var InteractionEventType = events.NewEventType[grip.InteractionEvent]()

type donburiStore struct {
	world  donburi.World
	filter func(grip.InteractionEvent) bool
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) grip.EntityStore {
	return &donburiStore{world: world}
}

// NewFilteredDonburiStore is like NewDonburiStore but only publishes events
// for which keep returns true. Scroll events arrive on every touch move, so
// a filter is the usual way to keep them out of a world that does not need
// them.
func NewFilteredDonburiStore(world donburi.World, keep func(grip.InteractionEvent) bool) grip.EntityStore {
	return &donburiStore{world: world, filter: keep}
}

func (s *donburiStore) EmitEvent(event grip.InteractionEvent) {
	if s.filter != nil && !s.filter(event) {
		return
	}
	InteractionEventType.Publish(s.world, event)
}
