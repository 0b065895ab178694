package xfer

import (
	"encoding/binary"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/axibridge/axislave"
	"github.com/sarchlab/axibridge/bridge"
	"github.com/sarchlab/axibridge/localmem"
	"github.com/sarchlab/axibridge/sim"
	"github.com/sarchlab/axibridge/sim/directconnection"
)

// jobAgent sends a list of job requests, one at a time, and records every
// response it gets back.
type jobAgent struct {
	*sim.TickingComponent

	ctrlPort sim.Port

	toSend   []sim.Msg
	received []sim.Msg
}

func newJobAgent(engine sim.Engine) *jobAgent {
	a := &jobAgent{}
	a.TickingComponent = sim.NewTickingComponent(
		"Agent", engine, 1*sim.GHz, a)

	a.ctrlPort = sim.NewPort(a, 4, 4, "Agent.CtrlPort")
	a.AddPort("Ctrl", a.ctrlPort)

	return a
}

func (a *jobAgent) Tick() bool {
	madeProgress := false

	if len(a.toSend) > 0 {
		if err := a.ctrlPort.Send(a.toSend[0]); err == nil {
			a.toSend = a.toSend[1:]
			madeProgress = true
		}
	}

	if msg := a.ctrlPort.RetrieveIncoming(); msg != nil {
		a.received = append(a.received, msg)
		madeProgress = true
	}

	return madeProgress
}

var _ = Describe("Orchestrator", func() {
	var (
		engine  sim.Engine
		storage *axislave.Storage
		orch    *Comp
		agent   *jobAgent
	)

	const (
		addrA   = 0x1000
		addrB   = 0x5000
		addrOut = 0x9000
		length  = 20
	)

	buildLane := func(
		conn *directconnection.Comp,
		mem *localmem.Memory,
		name string,
	) *bridge.Comp {
		bridgeName := fmt.Sprintf("Bridge%s", name)

		slave := axislave.MakeBuilder().
			WithEngine(engine).
			WithStorage(storage).
			WithLatency(5).
			WithReadDataDst(sim.RemotePort(bridgeName + ".ReadData")).
			WithWriteRspDst(sim.RemotePort(bridgeName + ".WriteRsp")).
			Build(fmt.Sprintf("Slave%s", name))

		brg := bridge.MakeBuilder().
			WithEngine(engine).
			WithLocalMemory(mem).
			WithMaxBurstLen(8).
			WithReadAddrDst(slave.GetPortByName("ReadAddr").AsRemote()).
			WithWriteAddrDst(slave.GetPortByName("WriteAddr").AsRemote()).
			WithWriteDataDst(slave.GetPortByName("WriteData").AsRemote()).
			Build(bridgeName)

		for _, p := range slave.Ports() {
			conn.PlugIn(p)
		}
		for _, p := range brg.Ports() {
			conn.PlugIn(p)
		}

		return brg
	}

	seedWord := func(addr uint64, w uint32) {
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, w)
		storage.Write(addr, buf)
	}

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		storage = axislave.NewStorage(1 << 20)

		conn := directconnection.MakeBuilder().
			WithEngine(engine).
			WithFreq(1 * sim.GHz).
			Build("Conn")

		memA := localmem.New("MemA", length)
		memB := localmem.New("MemB", length)
		memOut := localmem.New("MemOut", length)

		bridgeA := buildLane(conn, memA, "A")
		bridgeB := buildLane(conn, memB, "B")
		bridgeOut := buildLane(conn, memOut, "Out")

		orch = MakeBuilder().
			WithEngine(engine).
			WithKernel(VectorAdd{}).
			WithSrcBridge(bridgeA.CtrlPort().AsRemote(), memA).
			WithSrcBridge(bridgeB.CtrlPort().AsRemote(), memB).
			WithDstBridge(bridgeOut.CtrlPort().AsRemote(), memOut).
			Build("Orchestrator")
		conn.PlugIn(orch.CtrlPort())

		agent = newJobAgent(engine)
		conn.PlugIn(agent.ctrlPort)
	})

	It("should add two vectors end to end", func() {
		for i := 0; i < length; i++ {
			seedWord(addrA+uint64(4*i), uint32(i))
			seedWord(addrB+uint64(4*i), uint32(10*i))
		}

		job := MakeJobReqBuilder().
			WithSrc(agent.ctrlPort.AsRemote()).
			WithDst(orch.CtrlPort().AsRemote()).
			WithSrcAddrs(addrA, addrB).
			WithDstAddr(addrOut).
			WithElementCount(length).
			Build()
		agent.toSend = []sim.Msg{job}

		agent.TickLater()
		Expect(engine.Run()).To(Succeed())

		Expect(agent.received).To(HaveLen(1))
		Expect(agent.received[0].(sim.Rsp).GetRspTo()).To(Equal(job.ID))

		for i := 0; i < length; i++ {
			got := binary.LittleEndian.Uint32(
				storage.Read(addrOut+uint64(4*i), 4))
			Expect(got).To(Equal(uint32(11 * i)))
		}
	})

	It("should run jobs back to back in request order", func() {
		const addrOut2 = 0xC000

		for i := 0; i < length; i++ {
			seedWord(addrA+uint64(4*i), uint32(i))
			seedWord(addrB+uint64(4*i), uint32(10*i))
		}

		makeJob := func(dst uint64) *JobReq {
			return MakeJobReqBuilder().
				WithSrc(agent.ctrlPort.AsRemote()).
				WithDst(orch.CtrlPort().AsRemote()).
				WithSrcAddrs(addrA, addrB).
				WithDstAddr(dst).
				WithElementCount(length).
				Build()
		}

		first := makeJob(addrOut)
		second := makeJob(addrOut2)
		agent.toSend = []sim.Msg{first, second}

		agent.TickLater()
		Expect(engine.Run()).To(Succeed())

		Expect(agent.received).To(HaveLen(2))
		Expect(agent.received[0].(sim.Rsp).GetRspTo()).To(Equal(first.ID))
		Expect(agent.received[1].(sim.Rsp).GetRspTo()).To(Equal(second.ID))

		for _, base := range []uint64{addrOut, addrOut2} {
			for i := 0; i < length; i++ {
				got := binary.LittleEndian.Uint32(
					storage.Read(base+uint64(4*i), 4))
				Expect(got).To(Equal(uint32(11 * i)))
			}
		}
	})
})
