package bridge

import (
	"encoding/binary"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/axibridge/axi"
	"github.com/sarchlab/axibridge/axislave"
	"github.com/sarchlab/axibridge/localmem"
	"github.com/sarchlab/axibridge/sim"
	"github.com/sarchlab/axibridge/sim/directconnection"
)

// testAgent sends a list of control messages to the bridge, one at a time,
// and records every response it gets back.
type testAgent struct {
	*sim.TickingComponent

	ctrlPort sim.Port

	toSend   []sim.Msg
	received []sim.Msg
}

func newTestAgent(engine sim.Engine) *testAgent {
	a := &testAgent{}
	a.TickingComponent = sim.NewTickingComponent(
		"Agent", engine, 1*sim.GHz, a)

	a.ctrlPort = sim.NewPort(a, 4, 4, "Agent.CtrlPort")
	a.AddPort("Ctrl", a.ctrlPort)

	return a
}

func (a *testAgent) Tick() bool {
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

// msgCounter counts the messages of one type sent through a port.
type msgCounter struct {
	count int
	match func(sim.Msg) bool
}

func (h *msgCounter) Func(ctx sim.HookCtx) {
	if ctx.Pos != sim.HookPosPortMsgSend {
		return
	}

	if h.match(ctx.Item.(sim.Msg)) {
		h.count++
	}
}

var _ = Describe("Bridge and slave", func() {
	var (
		engine sim.Engine
		mem    *localmem.Memory
		slave  *axislave.Comp
		brg    *Comp
		agent  *testAgent
	)

	buildSystem := func(depth, latency, maxBurstLen int) {
		engine = sim.NewSerialEngine()

		conn := directconnection.MakeBuilder().
			WithEngine(engine).
			WithFreq(1 * sim.GHz).
			Build("Conn")

		mem = localmem.New("Mem", depth)

		slave = axislave.MakeBuilder().
			WithEngine(engine).
			WithLatency(latency).
			WithReadDataDst("Bridge.ReadData").
			WithWriteRspDst("Bridge.WriteRsp").
			Build("Slave")

		brg = MakeBuilder().
			WithEngine(engine).
			WithLocalMemory(mem).
			WithMaxBurstLen(maxBurstLen).
			WithReadAddrDst(slave.GetPortByName("ReadAddr").AsRemote()).
			WithWriteAddrDst(slave.GetPortByName("WriteAddr").AsRemote()).
			WithWriteDataDst(slave.GetPortByName("WriteData").AsRemote()).
			Build("Bridge")

		agent = newTestAgent(engine)

		for _, p := range slave.Ports() {
			conn.PlugIn(p)
		}
		for _, p := range brg.Ports() {
			conn.PlugIn(p)
		}
		conn.PlugIn(agent.ctrlPort)
	}

	seedExternal := func(baseAddr uint64, words []uint32) {
		buf := make([]byte, 4)
		for i, w := range words {
			binary.LittleEndian.PutUint32(buf, w)
			slave.Storage().Write(baseAddr+uint64(4*i), buf)
		}
	}

	externalWord := func(addr uint64) uint32 {
		return binary.LittleEndian.Uint32(slave.Storage().Read(addr, 4))
	}

	readReq := func(baseAddr uint64, count int) *TransferReq {
		return MakeTransferReqBuilder().
			WithSrc(agent.ctrlPort.AsRemote()).
			WithDst(brg.CtrlPort().AsRemote()).
			WithDirection(TransferRead).
			WithBaseAddr(baseAddr).
			WithElementCount(count).
			Build()
	}

	writeReq := func(baseAddr uint64, count int) *TransferReq {
		return MakeTransferReqBuilder().
			WithSrc(agent.ctrlPort.AsRemote()).
			WithDst(brg.CtrlPort().AsRemote()).
			WithDirection(TransferWrite).
			WithBaseAddr(baseAddr).
			WithElementCount(count).
			Build()
	}

	run := func() {
		agent.TickLater()
		Expect(engine.Run()).To(Succeed())
	}

	It("should fetch a buffer that fits in one burst", func() {
		buildSystem(8, 10, 256)

		words := []uint32{10, 11, 12, 13, 14, 15, 16, 17}
		seedExternal(0x1000, words)

		agent.toSend = []sim.Msg{readReq(0x1000, 8)}
		run()

		Expect(agent.received).To(HaveLen(1))
		Expect(mem.Words()).To(Equal(words))
	})

	It("should split a long fetch into full and partial bursts", func() {
		buildSystem(10, 4, 4)

		words := make([]uint32, 10)
		for i := range words {
			words[i] = uint32(100 + i)
		}
		seedExternal(0x2000, words)

		counter := &msgCounter{match: func(msg sim.Msg) bool {
			_, ok := msg.(*axi.ReadAddrReq)
			return ok
		}}
		brg.GetPortByName("ReadAddr").AcceptHook(counter)

		agent.toSend = []sim.Msg{readReq(0x2000, 10)}
		run()

		Expect(agent.received).To(HaveLen(1))
		Expect(counter.count).To(Equal(3))
		Expect(mem.Words()).To(Equal(words))
	})

	It("should store a buffer that fits in one burst", func() {
		buildSystem(8, 10, 256)

		for i := 0; i < 8; i++ {
			mem.Write(i, uint32(20+i))
		}

		agent.toSend = []sim.Msg{writeReq(0x1000, 8)}
		run()

		Expect(agent.received).To(HaveLen(1))
		for i := 0; i < 8; i++ {
			Expect(externalWord(0x1000 + uint64(4*i))).
				To(Equal(uint32(20 + i)))
		}
	})

	It("should split a long store and collect one response per burst", func() {
		buildSystem(9, 3, 4)

		for i := 0; i < 9; i++ {
			mem.Write(i, uint32(7*i))
		}

		counter := &msgCounter{match: func(msg sim.Msg) bool {
			_, ok := msg.(*axi.WriteAddrReq)
			return ok
		}}
		brg.GetPortByName("WriteAddr").AcceptHook(counter)

		agent.toSend = []sim.Msg{writeReq(0x3000, 9)}
		run()

		Expect(agent.received).To(HaveLen(1))
		Expect(counter.count).To(Equal(3))
		for i := 0; i < 9; i++ {
			Expect(externalWord(0x3000 + uint64(4*i))).
				To(Equal(uint32(7 * i)))
		}
	})

	It("should run transfers back to back in request order", func() {
		buildSystem(4, 5, 256)

		seedExternal(0x1000, []uint32{1, 2, 3, 4})

		first := readReq(0x1000, 4)
		second := writeReq(0x4000, 4)
		agent.toSend = []sim.Msg{first, second}
		run()

		Expect(agent.received).To(HaveLen(2))
		Expect(agent.received[0].(sim.Rsp).GetRspTo()).
			To(Equal(first.ID))
		Expect(agent.received[1].(sim.Rsp).GetRspTo()).
			To(Equal(second.ID))
		for i := 0; i < 4; i++ {
			Expect(externalWord(0x4000 + uint64(4*i))).
				To(Equal(uint32(i + 1)))
		}
	})

	It("should apply a queued reset in request order", func() {
		buildSystem(8, 20, 256)

		words := []uint32{1, 2, 3, 4, 5, 6, 7, 8}
		seedExternal(0x1000, words)

		first := readReq(0x1000, 8)
		second := readReq(0x2000, 8)
		reset := MakeControlMsgBuilder().
			WithSrc(agent.ctrlPort.AsRemote()).
			WithDst(brg.CtrlPort().AsRemote()).
			ToReset().
			Build()

		agent.toSend = []sim.Msg{first, second, reset}
		run()

		// The reset waits behind the queued transfer, then cancels it.
		rspTos := []string{}
		for _, msg := range agent.received {
			rspTos = append(rspTos, msg.(sim.Rsp).GetRspTo())
		}
		Expect(rspTos[0]).To(Equal(first.ID))
		Expect(rspTos).To(ContainElement(reset.ID))
		Expect(rspTos).NotTo(ContainElement(second.ID))
		Expect(mem.Words()).To(Equal(words))
	})

	It("should produce the same result and timing on every run", func() {
		words := []uint32{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8}

		runOnce := func() ([]uint32, sim.VTimeInSec) {
			buildSystem(12, 7, 4)
			seedExternal(0x5000, words)
			agent.toSend = []sim.Msg{readReq(0x5000, 12)}
			run()

			return mem.Words(), engine.CurrentTime()
		}

		firstWords, firstTime := runOnce()
		secondWords, secondTime := runOnce()

		Expect(firstWords).To(Equal(words))
		Expect(secondWords).To(Equal(firstWords))
		Expect(secondTime).To(Equal(firstTime))
	})

	It("should finish a fetch in cycles proportional to its length", func() {
		const depth = 64
		buildSystem(depth, 10, 16)

		words := make([]uint32, depth)
		for i := range words {
			words[i] = uint32(i * i)
		}
		seedExternal(0x6000, words)

		agent.toSend = []sim.Msg{readReq(0x6000, depth)}
		run()

		Expect(mem.Words()).To(Equal(words))

		cycles := (1 * sim.GHz).Cycle(engine.CurrentTime())
		Expect(cycles).To(BeNumerically("<=", uint64(16*depth+100)))
	})

	It("should drop an in-flight transfer on reset", func() {
		buildSystem(8, 50, 256)

		seedExternal(0x1000, []uint32{1, 2, 3, 4, 5, 6, 7, 8})

		doomed := readReq(0x1000, 8)
		reset := MakeControlMsgBuilder().
			WithSrc(agent.ctrlPort.AsRemote()).
			WithDst(brg.CtrlPort().AsRemote()).
			ToReset().
			Build()
		retry := readReq(0x1000, 8)

		agent.toSend = []sim.Msg{doomed, reset, retry}
		run()

		rspTos := []string{}
		for _, msg := range agent.received {
			rspTos = append(rspTos, msg.(sim.Rsp).GetRspTo())
		}
		Expect(rspTos).NotTo(ContainElement(doomed.ID))
		Expect(rspTos).To(ContainElement(reset.ID))
		Expect(rspTos).To(ContainElement(retry.ID))
		Expect(mem.Words()).
			To(Equal([]uint32{1, 2, 3, 4, 5, 6, 7, 8}))
	})
})
