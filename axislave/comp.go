package axislave

import (
	"encoding/binary"
	"log"
	"reflect"

	"github.com/sarchlab/axibridge/axi"
	"github.com/sarchlab/axibridge/sim"
)

type readReadyEvent struct {
	*sim.EventBase
}

func newReadReadyEvent(
	time sim.VTimeInSec,
	handler sim.Handler,
) *readReadyEvent {
	return &readReadyEvent{sim.NewEventBase(time, handler)}
}

type writeRspReadyEvent struct {
	*sim.EventBase
}

func newWriteRspReadyEvent(
	time sim.VTimeInSec,
	handler sim.Handler,
) *writeRspReadyEvent {
	return &writeRspReadyEvent{sim.NewEventBase(time, handler)}
}

// readBurst tracks one read burst being serviced.
type readBurst struct {
	attr      axi.BurstAttr
	beatsSent int
	ready     bool
}

// writeBurst tracks one write burst being accumulated.
type writeBurst struct {
	attr      axi.BurstAttr
	beatsRecv int
	rspReady  bool
	rspDue    bool
}

// Comp is a memory-mapped bus slave. It services one read burst and one
// write burst at a time, each after a fixed number of cycles, and leaves
// further address requests in the channel until the current burst retires.
type Comp struct {
	*sim.TickingComponent

	readAddrPort  sim.Port
	readDataPort  sim.Port
	writeAddrPort sim.Port
	writeDataPort sim.Port
	writeRspPort  sim.Port

	readDataDst sim.RemotePort
	writeRspDst sim.RemotePort

	storage *Storage
	latency int

	currentRead  *readBurst
	currentWrite *writeBurst
}

// Storage returns the byte storage behind the slave.
func (c *Comp) Storage() *Storage {
	return c.storage
}

// Handle processes the latency events on top of the regular ticks.
func (c *Comp) Handle(e sim.Event) error {
	switch e := e.(type) {
	case *readReadyEvent:
		return c.handleReadReadyEvent(e)
	case *writeRspReadyEvent:
		return c.handleWriteRspReadyEvent(e)
	case sim.TickEvent:
		return c.TickingComponent.Handle(e)
	default:
		log.Panicf("cannot handle event of type %s", reflect.TypeOf(e))
	}

	return nil
}

func (c *Comp) handleReadReadyEvent(_ *readReadyEvent) error {
	c.currentRead.ready = true
	c.TickLater()

	return nil
}

func (c *Comp) handleWriteRspReadyEvent(_ *writeRspReadyEvent) error {
	c.currentWrite.rspReady = true
	c.TickLater()

	return nil
}

// Tick advances the slave by one cycle.
func (c *Comp) Tick() bool {
	madeProgress := false

	madeProgress = c.sendReadBeat() || madeProgress
	madeProgress = c.acceptReadAddr() || madeProgress
	madeProgress = c.sendWriteRsp() || madeProgress
	madeProgress = c.acceptWriteData() || madeProgress
	madeProgress = c.acceptWriteAddr() || madeProgress

	return madeProgress
}

func (c *Comp) acceptReadAddr() bool {
	if c.currentRead != nil {
		return false
	}

	msg := c.readAddrPort.RetrieveIncoming()
	if msg == nil {
		return false
	}

	req := msg.(*axi.ReadAddrReq)
	c.currentRead = &readBurst{attr: req.BurstAttr}

	readyTime := c.Freq.NCyclesLater(c.latency, c.CurrentTime())
	c.Engine.Schedule(newReadReadyEvent(readyTime, c))

	return true
}

func (c *Comp) sendReadBeat() bool {
	burst := c.currentRead
	if burst == nil || !burst.ready {
		return false
	}

	beatBytes := burst.attr.BeatBytes()
	addr := burst.attr.Addr + uint64(burst.beatsSent)*beatBytes
	word := binary.LittleEndian.Uint32(c.storage.Read(addr, beatBytes))
	last := burst.beatsSent == burst.attr.Beats()-1

	beat := axi.ReadDataBeatBuilder{}.
		WithSrc(c.readDataPort.AsRemote()).
		WithDst(c.readDataDst).
		WithData(word).
		WithLast(last).
		WithResp(axi.RespOkay).
		Build()

	if err := c.readDataPort.Send(beat); err != nil {
		// Ready is low. The beat stays asserted.
		return false
	}

	burst.beatsSent++
	if last {
		c.currentRead = nil
	}

	return true
}

func (c *Comp) acceptWriteAddr() bool {
	if c.currentWrite != nil {
		return false
	}

	msg := c.writeAddrPort.RetrieveIncoming()
	if msg == nil {
		return false
	}

	req := msg.(*axi.WriteAddrReq)
	c.currentWrite = &writeBurst{attr: req.BurstAttr}

	return true
}

func (c *Comp) acceptWriteData() bool {
	msg := c.writeDataPort.PeekIncoming()
	if msg == nil {
		return false
	}

	if c.currentWrite == nil {
		log.Panicf("write data beat arrived before a write address request")
	}

	burst := c.currentWrite
	if burst.rspDue {
		// The burst already saw its final beat. An extra beat violates the
		// beat count the address channel announced.
		log.Panicf("write burst at 0x%x received more than %d beats",
			burst.attr.Addr, burst.attr.Beats())
	}

	c.writeDataPort.RetrieveIncoming()
	beat := msg.(*axi.WriteDataBeat)

	beatBytes := burst.attr.BeatBytes()
	addr := burst.attr.Addr + uint64(burst.beatsRecv)*beatBytes
	word := make([]byte, beatBytes)
	binary.LittleEndian.PutUint32(word, beat.Data)
	c.storage.Write(addr, word)

	burst.beatsRecv++
	last := burst.beatsRecv == burst.attr.Beats()
	if beat.Last != last {
		log.Panicf("beat %d of a %d-beat write burst has last=%t",
			burst.beatsRecv-1, burst.attr.Beats(), beat.Last)
	}

	if last {
		burst.rspDue = true
		readyTime := c.Freq.NCyclesLater(c.latency, c.CurrentTime())
		c.Engine.Schedule(newWriteRspReadyEvent(readyTime, c))
	}

	return true
}

func (c *Comp) sendWriteRsp() bool {
	burst := c.currentWrite
	if burst == nil || !burst.rspReady {
		return false
	}

	rsp := axi.WriteRspBuilder{}.
		WithSrc(c.writeRspPort.AsRemote()).
		WithDst(c.writeRspDst).
		WithResp(axi.RespOkay).
		Build()

	if err := c.writeRspPort.Send(rsp); err != nil {
		return false
	}

	c.currentWrite = nil

	return true
}
