package bridge

import (
	"log"
	"reflect"

	"github.com/sarchlab/axibridge/axi"
)

type rdState int

const (
	rdIdle rdState = iota
	rdRecv
	rdCommit
)

// readDataEngine consumes the read-data channel. It accepts one beat, stages
// it, and keeps ready deasserted for one cycle while the staged word is
// committed to local memory.
type readDataEngine struct {
	c     *Comp
	state rdState

	stagedLast bool
}

func (e *readDataEngine) startBurst() {
	e.state = rdRecv
}

func (e *readDataEngine) reset() {
	e.state = rdIdle
	e.stagedLast = false
}

func (e *readDataEngine) Tick() bool {
	switch e.state {
	case rdRecv:
		return e.recvBeat()
	case rdCommit:
		return e.commitBeat()
	}

	return false
}

func (e *readDataEngine) recvBeat() bool {
	msg := e.c.readDataPort.RetrieveIncoming()
	if msg == nil {
		return false
	}

	beat, ok := msg.(*axi.ReadDataBeat)
	if !ok {
		log.Panicf("read data channel carries %s", reflect.TypeOf(msg))
	}

	trans := e.c.trans
	if beat.Last != trans.lastBeatOfBurst() {
		log.Panicf("beat %d of a %d-beat burst has last=%t",
			trans.beatsDone, trans.burstBeats, beat.Last)
	}

	e.stagedLast = beat.Last
	e.c.memPort.BeginWrite(trans.localIndex, beat.Data)
	e.state = rdCommit

	return true
}

func (e *readDataEngine) commitBeat() bool {
	if !e.c.memPort.Done() {
		return false
	}

	trans := e.c.trans
	trans.localIndex++
	trans.beatsDone++

	if !e.stagedLast {
		e.state = rdRecv
		return true
	}

	e.state = rdIdle
	e.c.endBurstTask()
	if trans.endBurst() {
		e.c.addrRead.start()
	} else {
		e.c.finishTransfer()
	}

	return true
}
