package sim

import "reflect"

// A RemotePort is the name of a port, used to address the port from another
// component.
type RemotePort string

// A Msg is a piece of information transferred between components.
type Msg interface {
	Meta() *MsgMeta
	Clone() Msg
}

// MsgMeta is the metadata attached to every message.
type MsgMeta struct {
	ID           string
	Src, Dst     RemotePort
	TrafficClass string
	TrafficBytes int
}

// Rsp is a message that indicates the completion of a request.
type Rsp interface {
	Msg
	GetRspTo() string
}

// GeneralRsp is a plain response that marks the completion of a request.
type GeneralRsp struct {
	MsgMeta

	OriginalReq Msg
}

// Meta returns the metadata of the message.
func (r *GeneralRsp) Meta() *MsgMeta {
	return &r.MsgMeta
}

// Clone returns a copy of the response with a new ID.
func (r *GeneralRsp) Clone() Msg {
	cloneMsg := *r
	cloneMsg.ID = GetIDGenerator().Generate()

	return &cloneMsg
}

// GetRspTo returns the ID of the original request.
func (r *GeneralRsp) GetRspTo() string {
	return r.OriginalReq.Meta().ID
}

// GeneralRspBuilder builds general responses.
type GeneralRspBuilder struct {
	Src, Dst    RemotePort
	OriginalReq Msg
}

// WithSrc sets the source of the response.
func (b GeneralRspBuilder) WithSrc(src RemotePort) GeneralRspBuilder {
	b.Src = src
	return b
}

// WithDst sets the destination of the response.
func (b GeneralRspBuilder) WithDst(dst RemotePort) GeneralRspBuilder {
	b.Dst = dst
	return b
}

// WithOriginalReq sets the request that the response completes.
func (b GeneralRspBuilder) WithOriginalReq(req Msg) GeneralRspBuilder {
	b.OriginalReq = req
	return b
}

// Build creates a new GeneralRsp.
func (b GeneralRspBuilder) Build() *GeneralRsp {
	return &GeneralRsp{
		MsgMeta: MsgMeta{
			ID:           GetIDGenerator().Generate(),
			Src:          b.Src,
			Dst:          b.Dst,
			TrafficClass: reflect.TypeOf(GeneralRsp{}).String(),
		},
		OriginalReq: b.OriginalReq,
	}
}
