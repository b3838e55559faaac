package solver

import "github.com/akmonengine/joint2d/body"

// EventType identifies the kind of Event in the buffer (adapted from
// feather's trigger.go — collision/trigger pair tracking is dropped since
// this package has no collision detector of its own; what remains is the
// sleep/wake half of that file plus a joint-enabled toggle, the two things
// a joint-only solver can actually observe).
type EventType uint8

const (
	OnSleep EventType = iota
	OnWake
	OnJointEnabled
	OnJointDisabled
)

// Event is implemented by every event this package emits.
type Event interface {
	Type() EventType
}

// SleepEvent fires at the end of the first Step that observes a body's
// IsAtRest() bit having turned true (the same Step, when the world itself
// put the body to sleep).
type SleepEvent struct{ Body *body.Body }

func (e SleepEvent) Type() EventType { return OnSleep }

// WakeEvent fires at the end of the first Step that observes a body's
// IsAtRest() bit having turned false.
type WakeEvent struct{ Body *body.Body }

func (e WakeEvent) Type() EventType { return OnWake }

// JointEnabledEvent fires the step a joint's IsEnabled() turns true (i.e.
// both its bodies became enabled).
type JointEnabledEvent struct{ Joint Joint }

func (e JointEnabledEvent) Type() EventType { return OnJointEnabled }

// JointDisabledEvent fires the step a joint's IsEnabled() turns false.
type JointDisabledEvent struct{ Joint Joint }

func (e JointDisabledEvent) Type() EventType { return OnJointDisabled }

// EventListener is a callback subscribed against one EventType.
type EventListener func(event Event)

// Events buffers sleep/wake and joint-enabled transitions across a Step and
// dispatches them to subscribers at flush, mirroring feather's trigger.go
// Events manager with the collision-pair bookkeeping removed.
type Events struct {
	listeners map[EventType][]EventListener
	buffer    []Event

	sleepStates map[*body.Body]bool
	jointStates map[Joint]bool
}

// NewEvents returns an empty event bus.
func NewEvents() Events {
	return Events{
		listeners:   make(map[EventType][]EventListener),
		buffer:      make([]Event, 0, 64),
		sleepStates: make(map[*body.Body]bool),
		jointStates: make(map[Joint]bool),
	}
}

// Subscribe registers listener for eventType.
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// forgetBody drops tracked sleep state for a body removed from the world.
func (e *Events) forgetBody(b *body.Body) {
	delete(e.sleepStates, b)
}

// forgetJoint drops tracked enabled state for a joint removed from the world.
func (e *Events) forgetJoint(j Joint) {
	delete(e.jointStates, j)
}

// recordSleepStates compares each body's current IsAtRest() against the
// last-seen value and buffers Sleep/Wake transitions.
func (e *Events) recordSleepStates(bodies []*body.Body) {
	for _, b := range bodies {
		was, tracked := e.sleepStates[b]
		now := b.IsAtRest()
		if !tracked {
			e.sleepStates[b] = now
			continue
		}
		if !was && now {
			e.buffer = append(e.buffer, SleepEvent{Body: b})
		} else if was && !now {
			e.buffer = append(e.buffer, WakeEvent{Body: b})
		}
		e.sleepStates[b] = now
	}
}

// recordJointStates compares each joint's current IsEnabled() against the
// last-seen value and buffers Enabled/Disabled transitions.
func (e *Events) recordJointStates(joints []Joint) {
	for _, j := range joints {
		was, tracked := e.jointStates[j]
		now := j.IsEnabled()
		if !tracked {
			e.jointStates[j] = now
			continue
		}
		if !was && now {
			e.buffer = append(e.buffer, JointEnabledEvent{Joint: j})
		} else if was && !now {
			e.buffer = append(e.buffer, JointDisabledEvent{Joint: j})
		}
		e.jointStates[j] = now
	}
}

// flush dispatches every buffered event to its subscribers and clears the
// buffer.
func (e *Events) flush() {
	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
