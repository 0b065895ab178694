package sim

import "sync"

// TickEvent is the generic event that ticking components use to update their
// state.
type TickEvent struct {
	EventBase
}

// MakeTickEvent creates a new TickEvent.
func MakeTickEvent(handler Handler, time VTimeInSec) TickEvent {
	evt := TickEvent{}
	evt.ID = GetIDGenerator().Generate()
	evt.handler = handler
	evt.time = time

	return evt
}

// A Ticker updates its state with ticks. Tick returns true if any progress is
// made during the tick.
type Ticker interface {
	Tick() bool
}

// A TickScheduler schedules tick events, at most one per cycle.
type TickScheduler struct {
	lock      sync.Mutex
	handler   Handler
	secondary bool

	Freq   Freq
	Engine Engine

	nextTickTime VTimeInSec
}

// NewTickScheduler creates a TickScheduler.
func NewTickScheduler(handler Handler, engine Engine, freq Freq) *TickScheduler {
	return &TickScheduler{
		handler: handler,
		Engine:  engine,
		Freq:    freq,
		// Guarantees the first tick can be scheduled.
		nextTickTime: -1,
	}
}

// NewSecondaryTickScheduler creates a TickScheduler that schedules secondary
// tick events.
func NewSecondaryTickScheduler(
	handler Handler,
	engine Engine,
	freq Freq,
) *TickScheduler {
	s := NewTickScheduler(handler, engine, freq)
	s.secondary = true

	return s
}

// TickNow schedules a tick event at the current tick.
func (t *TickScheduler) TickNow() {
	t.scheduleTick(t.Freq.ThisTick(t.CurrentTime()))
}

// TickLater schedules a tick event at the cycle after the current time.
func (t *TickScheduler) TickLater() {
	t.scheduleTick(t.Freq.NextTick(t.CurrentTime()))
}

func (t *TickScheduler) scheduleTick(time VTimeInSec) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.nextTickTime >= time {
		return
	}

	t.nextTickTime = time
	tick := MakeTickEvent(t.handler, time)
	tick.secondary = t.secondary

	t.Engine.Schedule(tick)
}

// CurrentTime returns the current time of the engine.
func (t *TickScheduler) CurrentTime() VTimeInSec {
	return t.Engine.CurrentTime()
}

// TickingComponent is a component that updates state cycle by cycle. A
// concrete component only needs to provide its Tick function.
type TickingComponent struct {
	*ComponentBase
	*TickScheduler

	ticker Ticker
}

// NewTickingComponent creates a new TickingComponent.
func NewTickingComponent(
	name string,
	engine Engine,
	freq Freq,
	ticker Ticker,
) *TickingComponent {
	tc := new(TickingComponent)
	tc.ComponentBase = NewComponentBase(name)
	tc.TickScheduler = NewTickScheduler(tc, engine, freq)
	tc.ticker = ticker

	return tc
}

// NewSecondaryTickingComponent creates a TickingComponent whose ticks run
// after all same-cycle primary ticks.
func NewSecondaryTickingComponent(
	name string,
	engine Engine,
	freq Freq,
	ticker Ticker,
) *TickingComponent {
	tc := new(TickingComponent)
	tc.ComponentBase = NewComponentBase(name)
	tc.TickScheduler = NewSecondaryTickScheduler(tc, engine, freq)
	tc.ticker = ticker

	return tc
}

// Handle triggers the tick function of the component.
func (c *TickingComponent) Handle(_ Event) error {
	madeProgress := c.ticker.Tick()
	if madeProgress {
		c.TickLater()
	}

	return nil
}

// NotifyRecv starts the component ticking again.
func (c *TickingComponent) NotifyRecv(_ Port) {
	c.TickLater()
}

// NotifyPortFree starts the component ticking again.
func (c *TickingComponent) NotifyPortFree(_ Port) {
	c.TickLater()
}
