// Package bridge implements a bus bridge that moves arrays between a
// synchronous local memory and an AXI4-style memory-mapped bus. The bridge is
// the bus manager: it issues burst read and write transactions and never
// reorders them.
package bridge

import (
	"reflect"

	"github.com/sarchlab/axibridge/sim"
)

// TransferDirection tells which way a transfer moves data.
type TransferDirection int

// The two transfer directions.
const (
	// TransferRead moves data from the bus into the local memory.
	TransferRead TransferDirection = iota

	// TransferWrite moves data from the local memory onto the bus.
	TransferWrite
)

func (d TransferDirection) String() string {
	if d == TransferRead {
		return "read"
	}

	return "write"
}

// A TransferReq asks the bridge to run one transfer. The bridge answers with
// a GeneralRsp when the transfer completes; the response is the done pulse.
type TransferReq struct {
	sim.MsgMeta

	Direction TransferDirection

	// BaseAddr is the external byte address of the first element.
	BaseAddr uint64

	// ElementCount is the number of elements to move. It equals the depth of
	// the local buffer: one local buffer maps to exactly one external array
	// slice.
	ElementCount int
}

// Meta returns the metadata of the message.
func (r *TransferReq) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// Clone returns a copy of the request with a new ID.
func (r *TransferReq) Clone() sim.Msg {
	cloneMsg := *r
	cloneMsg.ID = sim.GetIDGenerator().Generate()

	return &cloneMsg
}

// GenerateRsp creates the completion response for the request.
func (r *TransferReq) GenerateRsp() sim.Msg {
	return sim.GeneralRspBuilder{}.
		WithSrc(r.Dst).
		WithDst(r.Src).
		WithOriginalReq(r).
		Build()
}

// TransferReqBuilder builds transfer requests.
type TransferReqBuilder struct {
	src, dst     sim.RemotePort
	direction    TransferDirection
	baseAddr     uint64
	elementCount int
}

// MakeTransferReqBuilder creates a new TransferReqBuilder.
func MakeTransferReqBuilder() TransferReqBuilder {
	return TransferReqBuilder{}
}

// WithSrc sets the source port of the request.
func (b TransferReqBuilder) WithSrc(src sim.RemotePort) TransferReqBuilder {
	b.src = src
	return b
}

// WithDst sets the destination port of the request. It should be the control
// port of the bridge.
func (b TransferReqBuilder) WithDst(dst sim.RemotePort) TransferReqBuilder {
	b.dst = dst
	return b
}

// WithDirection sets the direction of the transfer.
func (b TransferReqBuilder) WithDirection(
	d TransferDirection,
) TransferReqBuilder {
	b.direction = d
	return b
}

// WithBaseAddr sets the external byte address of the first element.
func (b TransferReqBuilder) WithBaseAddr(addr uint64) TransferReqBuilder {
	b.baseAddr = addr
	return b
}

// WithElementCount sets the number of elements to move.
func (b TransferReqBuilder) WithElementCount(n int) TransferReqBuilder {
	b.elementCount = n
	return b
}

// Build creates a new TransferReq.
func (b TransferReqBuilder) Build() *TransferReq {
	r := &TransferReq{}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.TrafficClass = reflect.TypeOf(TransferReq{}).String()
	r.Direction = b.direction
	r.BaseAddr = b.baseAddr
	r.ElementCount = b.elementCount

	return r
}

// A ControlMsg controls the bridge. Asserting Reset forces every engine to
// idle and every counter to zero on the next tick, regardless of in-flight
// bursts. Resetting while a transfer is outstanding silently loses that
// transfer's data. Control messages are handled in arrival order: a reset
// queued behind a not-yet-started TransferReq takes effect only after that
// transfer is accepted, and then cancels it.
type ControlMsg struct {
	sim.MsgMeta

	Reset bool
}

// Meta returns the metadata of the message.
func (m *ControlMsg) Meta() *sim.MsgMeta {
	return &m.MsgMeta
}

// Clone returns a copy of the message with a new ID.
func (m *ControlMsg) Clone() sim.Msg {
	cloneMsg := *m
	cloneMsg.ID = sim.GetIDGenerator().Generate()

	return &cloneMsg
}

// GenerateRsp creates the acknowledgment response for the message.
func (m *ControlMsg) GenerateRsp() sim.Msg {
	return sim.GeneralRspBuilder{}.
		WithSrc(m.Dst).
		WithDst(m.Src).
		WithOriginalReq(m).
		Build()
}

// ControlMsgBuilder builds control messages.
type ControlMsgBuilder struct {
	src, dst sim.RemotePort
	reset    bool
}

// MakeControlMsgBuilder creates a new ControlMsgBuilder.
func MakeControlMsgBuilder() ControlMsgBuilder {
	return ControlMsgBuilder{}
}

// WithSrc sets the source port of the message.
func (b ControlMsgBuilder) WithSrc(src sim.RemotePort) ControlMsgBuilder {
	b.src = src
	return b
}

// WithDst sets the destination port of the message.
func (b ControlMsgBuilder) WithDst(dst sim.RemotePort) ControlMsgBuilder {
	b.dst = dst
	return b
}

// ToReset sets the reset bit of the message.
func (b ControlMsgBuilder) ToReset() ControlMsgBuilder {
	b.reset = true
	return b
}

// Build creates a new ControlMsg.
func (b ControlMsgBuilder) Build() *ControlMsg {
	m := &ControlMsg{}
	m.ID = sim.GetIDGenerator().Generate()
	m.Src = b.src
	m.Dst = b.dst
	m.Reset = b.reset

	return m
}
