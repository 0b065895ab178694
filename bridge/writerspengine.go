package bridge

import (
	"log"
	"reflect"

	"github.com/sarchlab/axibridge/axi"
)

type bState int

const (
	bIdle bState = iota
	bWait
)

// writeRspEngine consumes the write-response channel. One response retires
// one burst. The response code is consumed but not acted on.
type writeRspEngine struct {
	c     *Comp
	state bState
}

func (e *writeRspEngine) startBurst() {
	e.state = bWait
}

func (e *writeRspEngine) reset() {
	e.state = bIdle
}

func (e *writeRspEngine) Tick() bool {
	if e.state != bWait {
		return false
	}

	msg := e.c.writeRspPort.RetrieveIncoming()
	if msg == nil {
		return false
	}

	if _, ok := msg.(*axi.WriteRsp); !ok {
		log.Panicf("write response channel carries %s", reflect.TypeOf(msg))
	}

	e.state = bIdle
	e.c.endBurstTask()

	trans := e.c.trans
	if trans.endBurst() {
		e.c.addrWrite.start()
	} else {
		e.c.finishTransfer()
	}

	return true
}
