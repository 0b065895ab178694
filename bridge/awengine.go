package bridge

import (
	"github.com/sarchlab/axibridge/axi"
)

type awState int

const (
	awIdle awState = iota
	awRequest
)

// addrWriteEngine drives the address-write channel. Accepting a write burst
// also publishes the burst's beat count to the write data engine through
// the transfer registers.
type addrWriteEngine struct {
	c     *Comp
	state awState
}

func (e *addrWriteEngine) start() {
	e.state = awRequest
}

func (e *addrWriteEngine) reset() {
	e.state = awIdle
}

func (e *addrWriteEngine) Tick() bool {
	if e.state != awRequest {
		return false
	}

	trans := e.c.trans
	beats := trans.nextBurstBeats()

	req := axi.WriteAddrReqBuilder{}.
		WithSrc(e.c.writeAddrPort.AsRemote()).
		WithDst(e.c.writeAddrDst).
		WithBurst(trans.burstAttr()).
		Build()

	if err := e.c.writeAddrPort.Send(req); err != nil {
		return false
	}

	trans.beginBurst(beats)
	e.state = awIdle
	e.c.writeData.startBurst()
	e.c.startBurstTask("write")

	return true
}
