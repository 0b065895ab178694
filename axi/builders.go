package axi

import "github.com/sarchlab/axibridge/sim"

// ReadAddrReqBuilder builds read address requests.
type ReadAddrReqBuilder struct {
	src, dst sim.RemotePort
	attr     BurstAttr
}

// WithSrc sets the source port of the request.
func (b ReadAddrReqBuilder) WithSrc(src sim.RemotePort) ReadAddrReqBuilder {
	b.src = src
	return b
}

// WithDst sets the destination port of the request.
func (b ReadAddrReqBuilder) WithDst(dst sim.RemotePort) ReadAddrReqBuilder {
	b.dst = dst
	return b
}

// WithBurst sets the burst attributes of the request.
func (b ReadAddrReqBuilder) WithBurst(attr BurstAttr) ReadAddrReqBuilder {
	b.attr = attr
	return b
}

// Build creates a new ReadAddrReq.
func (b ReadAddrReqBuilder) Build() *ReadAddrReq {
	r := &ReadAddrReq{}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.BurstAttr = b.attr

	return r
}

// WriteAddrReqBuilder builds write address requests.
type WriteAddrReqBuilder struct {
	src, dst sim.RemotePort
	attr     BurstAttr
}

// WithSrc sets the source port of the request.
func (b WriteAddrReqBuilder) WithSrc(src sim.RemotePort) WriteAddrReqBuilder {
	b.src = src
	return b
}

// WithDst sets the destination port of the request.
func (b WriteAddrReqBuilder) WithDst(dst sim.RemotePort) WriteAddrReqBuilder {
	b.dst = dst
	return b
}

// WithBurst sets the burst attributes of the request.
func (b WriteAddrReqBuilder) WithBurst(attr BurstAttr) WriteAddrReqBuilder {
	b.attr = attr
	return b
}

// Build creates a new WriteAddrReq.
func (b WriteAddrReqBuilder) Build() *WriteAddrReq {
	r := &WriteAddrReq{}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.BurstAttr = b.attr

	return r
}

// ReadDataBeatBuilder builds read data beats.
type ReadDataBeatBuilder struct {
	src, dst sim.RemotePort
	data     uint32
	last     bool
	resp     uint8
}

// WithSrc sets the source port of the beat.
func (b ReadDataBeatBuilder) WithSrc(src sim.RemotePort) ReadDataBeatBuilder {
	b.src = src
	return b
}

// WithDst sets the destination port of the beat.
func (b ReadDataBeatBuilder) WithDst(dst sim.RemotePort) ReadDataBeatBuilder {
	b.dst = dst
	return b
}

// WithData sets the data carried by the beat.
func (b ReadDataBeatBuilder) WithData(data uint32) ReadDataBeatBuilder {
	b.data = data
	return b
}

// WithLast marks the beat as the final beat of its burst.
func (b ReadDataBeatBuilder) WithLast(last bool) ReadDataBeatBuilder {
	b.last = last
	return b
}

// WithResp sets the response code of the beat.
func (b ReadDataBeatBuilder) WithResp(resp uint8) ReadDataBeatBuilder {
	b.resp = resp
	return b
}

// Build creates a new ReadDataBeat.
func (b ReadDataBeatBuilder) Build() *ReadDataBeat {
	beat := &ReadDataBeat{}
	beat.ID = sim.GetIDGenerator().Generate()
	beat.Src = b.src
	beat.Dst = b.dst
	beat.Data = b.data
	beat.Last = b.last
	beat.Resp = b.resp

	return beat
}

// WriteDataBeatBuilder builds write data beats.
type WriteDataBeatBuilder struct {
	src, dst sim.RemotePort
	data     uint32
	last     bool
}

// WithSrc sets the source port of the beat.
func (b WriteDataBeatBuilder) WithSrc(src sim.RemotePort) WriteDataBeatBuilder {
	b.src = src
	return b
}

// WithDst sets the destination port of the beat.
func (b WriteDataBeatBuilder) WithDst(dst sim.RemotePort) WriteDataBeatBuilder {
	b.dst = dst
	return b
}

// WithData sets the data carried by the beat.
func (b WriteDataBeatBuilder) WithData(data uint32) WriteDataBeatBuilder {
	b.data = data
	return b
}

// WithLast marks the beat as the final beat of its burst.
func (b WriteDataBeatBuilder) WithLast(last bool) WriteDataBeatBuilder {
	b.last = last
	return b
}

// Build creates a new WriteDataBeat.
func (b WriteDataBeatBuilder) Build() *WriteDataBeat {
	beat := &WriteDataBeat{}
	beat.ID = sim.GetIDGenerator().Generate()
	beat.Src = b.src
	beat.Dst = b.dst
	beat.Data = b.data
	beat.Last = b.last

	return beat
}

// WriteRspBuilder builds write responses.
type WriteRspBuilder struct {
	src, dst sim.RemotePort
	resp     uint8
}

// WithSrc sets the source port of the response.
func (b WriteRspBuilder) WithSrc(src sim.RemotePort) WriteRspBuilder {
	b.src = src
	return b
}

// WithDst sets the destination port of the response.
func (b WriteRspBuilder) WithDst(dst sim.RemotePort) WriteRspBuilder {
	b.dst = dst
	return b
}

// WithResp sets the response code.
func (b WriteRspBuilder) WithResp(resp uint8) WriteRspBuilder {
	b.resp = resp
	return b
}

// Build creates a new WriteRsp.
func (b WriteRspBuilder) Build() *WriteRsp {
	r := &WriteRsp{}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.Resp = b.resp

	return r
}
