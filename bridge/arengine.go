package bridge

import (
	"github.com/sarchlab/axibridge/axi"
)

type arState int

const (
	arIdle arState = iota
	arRequest
)

// addrReadEngine drives the address-read channel. It asserts one read burst
// request at a time and holds it until the remote end accepts it.
type addrReadEngine struct {
	c     *Comp
	state arState
}

func (e *addrReadEngine) start() {
	e.state = arRequest
}

func (e *addrReadEngine) reset() {
	e.state = arIdle
}

func (e *addrReadEngine) Tick() bool {
	if e.state != arRequest {
		return false
	}

	trans := e.c.trans
	beats := trans.nextBurstBeats()

	req := axi.ReadAddrReqBuilder{}.
		WithSrc(e.c.readAddrPort.AsRemote()).
		WithDst(e.c.readAddrDst).
		WithBurst(trans.burstAttr()).
		Build()

	if err := e.c.readAddrPort.Send(req); err != nil {
		// Ready is low. The request stays asserted.
		return false
	}

	// The handshake fires once per burst. Leaving the request state here is
	// what prevents the same burst from being counted twice.
	trans.beginBurst(beats)
	e.state = arIdle
	e.c.readData.startBurst()
	e.c.startBurstTask("read")

	return true
}
