package bridge

import "github.com/sarchlab/axibridge/axi"

type wdState int

const (
	wdIdle wdState = iota
	wdReadLocal
	wdWaitLocal
	wdSend
)

// writeDataEngine drives the write-data channel. Each beat takes a local
// memory read before it can be asserted, and a staged beat stays asserted
// until the remote end accepts it.
type writeDataEngine struct {
	c     *Comp
	state wdState

	staged uint32
}

func (e *writeDataEngine) startBurst() {
	e.state = wdReadLocal
}

func (e *writeDataEngine) reset() {
	e.state = wdIdle
	e.staged = 0
}

func (e *writeDataEngine) Tick() bool {
	switch e.state {
	case wdReadLocal:
		return e.readLocal()
	case wdWaitLocal:
		return e.waitLocal()
	case wdSend:
		return e.sendBeat()
	}

	return false
}

func (e *writeDataEngine) readLocal() bool {
	e.c.memPort.BeginRead(e.c.trans.localIndex)
	e.state = wdWaitLocal

	return true
}

func (e *writeDataEngine) waitLocal() bool {
	if !e.c.memPort.Done() {
		return false
	}

	e.staged = e.c.memPort.Data()
	e.state = wdSend

	return true
}

func (e *writeDataEngine) sendBeat() bool {
	trans := e.c.trans
	last := trans.beatsDone == trans.maxTransfers-1

	beat := axi.WriteDataBeatBuilder{}.
		WithSrc(e.c.writeDataPort.AsRemote()).
		WithDst(e.c.writeDataDst).
		WithData(e.staged).
		WithLast(last).
		Build()

	if err := e.c.writeDataPort.Send(beat); err != nil {
		return false
	}

	trans.beatsDone++
	trans.localIndex++

	if last {
		e.state = wdIdle
		e.c.writeRsp.startBurst()
	} else {
		e.state = wdReadLocal
	}

	return true
}
