package xfer

import (
	"github.com/sarchlab/axibridge/sim"
)

// A JobReq asks the orchestrator to run its kernel once: fetch every source
// buffer from external memory, apply the kernel, and store the result back.
type JobReq struct {
	sim.MsgMeta

	SrcAddrs     []uint64
	DstAddr      uint64
	ElementCount int
}

// Meta returns the meta data of the message.
func (r *JobReq) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// Clone creates a copy of the message with a new ID.
func (r *JobReq) Clone() sim.Msg {
	cloneMsg := *r
	cloneMsg.ID = sim.GetIDGenerator().Generate()
	cloneMsg.SrcAddrs = append([]uint64(nil), r.SrcAddrs...)

	return &cloneMsg
}

// GenerateRsp generates a response to the job request.
func (r *JobReq) GenerateRsp() sim.Msg {
	return sim.GeneralRspBuilder{}.
		WithSrc(r.Dst).
		WithDst(r.Src).
		WithOriginalReq(r).
		Build()
}

// JobReqBuilder can build job requests.
type JobReqBuilder struct {
	src, dst     sim.RemotePort
	srcAddrs     []uint64
	dstAddr      uint64
	elementCount int
}

// MakeJobReqBuilder creates a JobReqBuilder.
func MakeJobReqBuilder() JobReqBuilder {
	return JobReqBuilder{}
}

// WithSrc sets the source of the request.
func (b JobReqBuilder) WithSrc(src sim.RemotePort) JobReqBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the request.
func (b JobReqBuilder) WithDst(dst sim.RemotePort) JobReqBuilder {
	b.dst = dst
	return b
}

// WithSrcAddrs sets the external addresses of the source buffers.
func (b JobReqBuilder) WithSrcAddrs(addrs ...uint64) JobReqBuilder {
	b.srcAddrs = addrs
	return b
}

// WithDstAddr sets the external address the result is stored to.
func (b JobReqBuilder) WithDstAddr(addr uint64) JobReqBuilder {
	b.dstAddr = addr
	return b
}

// WithElementCount sets the number of elements in each buffer.
func (b JobReqBuilder) WithElementCount(n int) JobReqBuilder {
	b.elementCount = n
	return b
}

// Build creates the job request.
func (b JobReqBuilder) Build() *JobReq {
	r := &JobReq{
		SrcAddrs:     b.srcAddrs,
		DstAddr:      b.dstAddr,
		ElementCount: b.elementCount,
	}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst

	return r
}
