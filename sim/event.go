// Package sim provides the discrete-event infrastructure that the rest of the
// repository builds on: virtual time, events, an engine that runs them, and
// ports that carry messages between components.
package sim

// VTimeInSec is virtual time in the simulated space, in seconds.
type VTimeInSec float64

// An Event is something that happens at a future virtual time.
type Event interface {
	// Time returns the time at which the event happens.
	Time() VTimeInSec

	// Handler returns the handler that processes the event.
	Handler() Handler

	// IsSecondary tells if the event runs after all primary events scheduled
	// at the same time.
	IsSecondary() bool
}

// A Handler processes events that it scheduled for itself.
type Handler interface {
	Handle(e Event) error
}

// EventBase provides the fields and getters that most events share.
type EventBase struct {
	ID        string
	time      VTimeInSec
	handler   Handler
	secondary bool
}

// NewEventBase creates a new EventBase.
func NewEventBase(t VTimeInSec, handler Handler) *EventBase {
	e := new(EventBase)
	e.ID = GetIDGenerator().Generate()
	e.time = t
	e.handler = handler

	return e
}

// Time returns the time that the event happens.
func (e EventBase) Time() VTimeInSec {
	return e.time
}

// Handler returns the handler that processes the event.
func (e EventBase) Handler() Handler {
	return e.handler
}

// IsSecondary returns true if the event is a secondary event.
func (e EventBase) IsSecondary() bool {
	return e.secondary
}
