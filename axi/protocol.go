// Package axi defines the messages exchanged on the five channels of an
// AXI4-style memory-mapped bus: read address (AR), read data (R), write
// address (AW), write data (W), and write response (B).
//
// A message delivered through a port models one VALID/READY rendezvous on the
// corresponding channel: a successful Port.Send is the cycle where VALID and
// READY are both observed high, and a failed send is a cycle where READY is
// low while VALID is held.
package axi

import (
	"github.com/sarchlab/axibridge/sim"
)

// Burst mode encodings of the 2-bit AxBURST field.
const (
	BurstFixed uint8 = 0
	BurstIncr  uint8 = 1
	BurstWrap  uint8 = 2
)

// Response encodings of the 2-bit xRESP field.
const (
	RespOkay   uint8 = 0
	RespExokay uint8 = 1
	RespSlverr uint8 = 2
	RespDecerr uint8 = 3
)

// MaxBurstLen is the largest number of beats a single INCR burst can carry,
// as bounded by the 8-bit AxLEN field.
const MaxBurstLen = 256

// BurstAttr carries the fields of an address-channel request. The same shape
// is used by the read and the write address channels.
type BurstAttr struct {
	// Addr is the byte address of the first beat (AxADDR, 64 bits).
	Addr uint64

	// LenMinusOne is the number of beats in the burst minus one
	// (AxLEN, 8 bits).
	LenMinusOne uint8

	// Size is log2 of the number of bytes per beat (AxSIZE, 3 bits).
	Size uint8

	// Burst is the burst mode (AxBURST, 2 bits).
	Burst uint8

	// TransactionID is the AxID field. This controller only ever issues
	// ID 0: a single outstanding transaction, no reordering.
	TransactionID uint8
}

// Beats returns the number of beats in the burst.
func (a BurstAttr) Beats() int {
	return int(a.LenMinusOne) + 1
}

// BeatBytes returns the number of bytes per beat.
func (a BurstAttr) BeatBytes() uint64 {
	return uint64(1) << a.Size
}

// A ReadAddrReq is one request on the read address channel.
type ReadAddrReq struct {
	sim.MsgMeta
	BurstAttr
}

// Meta returns the metadata of the message.
func (r *ReadAddrReq) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// Clone returns a copy of the request with a new ID.
func (r *ReadAddrReq) Clone() sim.Msg {
	cloneMsg := *r
	cloneMsg.ID = sim.GetIDGenerator().Generate()

	return &cloneMsg
}

// A WriteAddrReq is one request on the write address channel. It has the same
// shape as a ReadAddrReq.
type WriteAddrReq struct {
	sim.MsgMeta
	BurstAttr
}

// Meta returns the metadata of the message.
func (r *WriteAddrReq) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// Clone returns a copy of the request with a new ID.
func (r *WriteAddrReq) Clone() sim.Msg {
	cloneMsg := *r
	cloneMsg.ID = sim.GetIDGenerator().Generate()

	return &cloneMsg
}

// A ReadDataBeat is one beat on the read data channel.
type ReadDataBeat struct {
	sim.MsgMeta

	// Data is the RDATA field (32 bits).
	Data uint32

	// Last marks the final beat of a burst (RLAST).
	Last bool

	// Resp is the RRESP field. It is carried but never checked.
	Resp uint8

	// TransactionID is the RID field, always 0 here.
	TransactionID uint8
}

// Meta returns the metadata of the message.
func (b *ReadDataBeat) Meta() *sim.MsgMeta {
	return &b.MsgMeta
}

// Clone returns a copy of the beat with a new ID.
func (b *ReadDataBeat) Clone() sim.Msg {
	cloneMsg := *b
	cloneMsg.ID = sim.GetIDGenerator().Generate()

	return &cloneMsg
}

// A WriteDataBeat is one beat on the write data channel. The W channel
// carries no transaction ID in AXI4.
type WriteDataBeat struct {
	sim.MsgMeta

	// Data is the WDATA field (32 bits).
	Data uint32

	// Last marks the final beat of a burst (WLAST).
	Last bool
}

// Meta returns the metadata of the message.
func (b *WriteDataBeat) Meta() *sim.MsgMeta {
	return &b.MsgMeta
}

// Clone returns a copy of the beat with a new ID.
func (b *WriteDataBeat) Clone() sim.Msg {
	cloneMsg := *b
	cloneMsg.ID = sim.GetIDGenerator().Generate()

	return &cloneMsg
}

// A WriteRsp is one handshake on the write response channel, completing one
// write burst.
type WriteRsp struct {
	sim.MsgMeta

	// Resp is the BRESP field. It is observed but never validated.
	Resp uint8

	// TransactionID is the BID field, always 0 here.
	TransactionID uint8
}

// Meta returns the metadata of the message.
func (r *WriteRsp) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// Clone returns a copy of the response with a new ID.
func (r *WriteRsp) Clone() sim.Msg {
	cloneMsg := *r
	cloneMsg.ID = sim.GetIDGenerator().Generate()

	return &cloneMsg
}
