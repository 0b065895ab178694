package bridge

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/axibridge/axi"
	"github.com/sarchlab/axibridge/localmem"
	"github.com/sarchlab/axibridge/sim"
)

var _ = Describe("Bridge", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *MockEngine
		mem      *localmem.Memory
		c        *Comp
	)

	newReadReq := func(count int) *TransferReq {
		return MakeTransferReqBuilder().
			WithSrc("Agent.CtrlPort").
			WithDst("Bridge.CtrlPort").
			WithDirection(TransferRead).
			WithBaseAddr(0x1000).
			WithElementCount(count).
			Build()
	}

	newWriteReq := func(count int) *TransferReq {
		return MakeTransferReqBuilder().
			WithSrc("Agent.CtrlPort").
			WithDst("Bridge.CtrlPort").
			WithDirection(TransferWrite).
			WithBaseAddr(0x1000).
			WithElementCount(count).
			Build()
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = NewMockEngine(mockCtrl)

		mem = localmem.New("Mem", 16)
		c = MakeBuilder().
			WithEngine(engine).
			WithLocalMemory(mem).
			WithReadAddrDst("Slave.ReadAddr").
			WithWriteAddrDst("Slave.WriteAddr").
			WithWriteDataDst("Slave.WriteData").
			Build("Bridge")
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	Context("address read engine", func() {
		var readAddrPort *MockPort

		BeforeEach(func() {
			readAddrPort = NewMockPort(mockCtrl)
			readAddrPort.EXPECT().
				AsRemote().
				Return(sim.RemotePort("Bridge.ReadAddr")).
				AnyTimes()
			c.readAddrPort = readAddrPort

			c.trans = newTransfer(newReadReq(8), elemBytes, 256)
			c.addrRead.start()
		})

		It("should hold the request while ready is low", func() {
			readAddrPort.EXPECT().
				Send(gomock.Any()).
				Return(sim.NewSendError())

			madeProgress := c.addrRead.Tick()

			Expect(madeProgress).To(BeFalse())
			Expect(c.addrRead.state).To(Equal(arRequest))
			Expect(c.trans.txnCount).To(Equal(0))
		})

		It("should count the burst once on the handshake", func() {
			var sent *axi.ReadAddrReq
			readAddrPort.EXPECT().
				Send(gomock.Any()).
				Do(func(msg sim.Msg) {
					sent = msg.(*axi.ReadAddrReq)
				}).
				Return(nil)

			madeProgress := c.addrRead.Tick()

			Expect(madeProgress).To(BeTrue())
			Expect(c.addrRead.state).To(Equal(arIdle))
			Expect(c.trans.txnCount).To(Equal(1))
			Expect(c.readData.state).To(Equal(rdRecv))
			Expect(sent.Addr).To(Equal(uint64(0x1000)))
			Expect(sent.LenMinusOne).To(Equal(uint8(7)))
			Expect(sent.Size).To(Equal(uint8(2)))
			Expect(sent.Burst).To(Equal(axi.BurstIncr))
		})
	})

	Context("read data engine", func() {
		var readDataPort *MockPort

		beat := func(data uint32, last bool) *axi.ReadDataBeat {
			return axi.ReadDataBeatBuilder{}.
				WithSrc("Slave.ReadData").
				WithDst("Bridge.ReadData").
				WithData(data).
				WithLast(last).
				Build()
		}

		BeforeEach(func() {
			readDataPort = NewMockPort(mockCtrl)
			c.readDataPort = readDataPort

			c.trans = newTransfer(newReadReq(2), elemBytes, 256)
			c.trans.beginBurst(2)
			c.readData.startBurst()
		})

		It("should stage a beat and deassert ready for the commit", func() {
			readDataPort.EXPECT().
				RetrieveIncoming().
				Return(beat(42, false))

			madeProgress := c.readData.Tick()

			Expect(madeProgress).To(BeTrue())
			Expect(c.readData.state).To(Equal(rdCommit))
			Expect(c.memPort.Busy()).To(BeTrue())
		})

		It("should commit the staged beat after one memory cycle", func() {
			readDataPort.EXPECT().
				RetrieveIncoming().
				Return(beat(42, false))

			c.readData.Tick()
			c.memPort.Tick()

			madeProgress := c.readData.Tick()

			Expect(madeProgress).To(BeTrue())
			Expect(c.readData.state).To(Equal(rdRecv))
			Expect(mem.Read(0)).To(Equal(uint32(42)))
			Expect(c.trans.localIndex).To(Equal(1))
			Expect(c.trans.beatsDone).To(Equal(1))
		})

		It("should finish the transfer after the final beat", func() {
			readDataPort.EXPECT().
				RetrieveIncoming().
				Return(beat(1, false))
			c.readData.Tick()
			c.memPort.Tick()
			c.readData.Tick()

			readDataPort.EXPECT().
				RetrieveIncoming().
				Return(beat(2, true))
			c.readData.Tick()
			c.memPort.Tick()
			c.readData.Tick()

			Expect(c.readData.state).To(Equal(rdIdle))
			Expect(c.trans).To(BeNil())
			Expect(c.doneRsp).NotTo(BeNil())
			Expect(mem.Read(1)).To(Equal(uint32(2)))
		})
	})

	Context("write data engine", func() {
		var writeDataPort *MockPort

		BeforeEach(func() {
			writeDataPort = NewMockPort(mockCtrl)
			writeDataPort.EXPECT().
				AsRemote().
				Return(sim.RemotePort("Bridge.WriteData")).
				AnyTimes()
			c.writeDataPort = writeDataPort

			mem.Write(0, 7)
			mem.Write(1, 9)

			c.trans = newTransfer(newWriteReq(2), elemBytes, 256)
			c.trans.beginBurst(2)
			c.writeData.startBurst()
		})

		It("should read the local word before asserting the beat", func() {
			c.writeData.Tick()
			Expect(c.writeData.state).To(Equal(wdWaitLocal))

			c.memPort.Tick()
			c.writeData.Tick()
			Expect(c.writeData.state).To(Equal(wdSend))
			Expect(c.writeData.staged).To(Equal(uint32(7)))
		})

		It("should hold the beat while ready is low", func() {
			c.writeData.Tick()
			c.memPort.Tick()
			c.writeData.Tick()

			writeDataPort.EXPECT().
				Send(gomock.Any()).
				Return(sim.NewSendError())

			madeProgress := c.writeData.Tick()

			Expect(madeProgress).To(BeFalse())
			Expect(c.writeData.state).To(Equal(wdSend))
			Expect(c.trans.beatsDone).To(Equal(0))
		})

		It("should mark the final beat and arm the response engine", func() {
			var beats []*axi.WriteDataBeat
			writeDataPort.EXPECT().
				Send(gomock.Any()).
				Do(func(msg sim.Msg) {
					beats = append(beats, msg.(*axi.WriteDataBeat))
				}).
				Return(nil).
				Times(2)

			for i := 0; i < 2; i++ {
				c.writeData.Tick()
				c.memPort.Tick()
				c.writeData.Tick()
				c.writeData.Tick()
			}

			Expect(beats).To(HaveLen(2))
			Expect(beats[0].Data).To(Equal(uint32(7)))
			Expect(beats[0].Last).To(BeFalse())
			Expect(beats[1].Data).To(Equal(uint32(9)))
			Expect(beats[1].Last).To(BeTrue())
			Expect(c.writeData.state).To(Equal(wdIdle))
			Expect(c.writeRsp.state).To(Equal(bWait))
		})
	})

	Context("write response engine", func() {
		var writeRspPort *MockPort

		BeforeEach(func() {
			writeRspPort = NewMockPort(mockCtrl)
			c.writeRspPort = writeRspPort
		})

		It("should retire the burst on a response", func() {
			c.trans = newTransfer(newWriteReq(2), elemBytes, 256)
			c.trans.beginBurst(2)
			c.trans.beatsDone = 2
			c.writeRsp.startBurst()

			rsp := axi.WriteRspBuilder{}.
				WithSrc("Slave.WriteRsp").
				WithDst("Bridge.WriteRsp").
				WithResp(axi.RespOkay).
				Build()
			writeRspPort.EXPECT().RetrieveIncoming().Return(rsp)

			madeProgress := c.writeRsp.Tick()

			Expect(madeProgress).To(BeTrue())
			Expect(c.writeRsp.state).To(Equal(bIdle))
			Expect(c.trans).To(BeNil())
			Expect(c.doneRsp).NotTo(BeNil())
		})

		It("should issue the next burst when more bursts remain", func() {
			c.trans = newTransfer(newWriteReq(300), elemBytes, 256)
			c.trans.beginBurst(256)
			c.trans.beatsDone = 256
			c.writeRsp.startBurst()

			rsp := axi.WriteRspBuilder{}.
				WithSrc("Slave.WriteRsp").
				WithDst("Bridge.WriteRsp").
				Build()
			writeRspPort.EXPECT().RetrieveIncoming().Return(rsp)

			c.writeRsp.Tick()

			Expect(c.trans).NotTo(BeNil())
			Expect(c.trans.busAddr).To(
				Equal(uint64(0x1000 + 256*elemBytes)))
			Expect(c.addrWrite.state).To(Equal(awRequest))
		})
	})

	Context("reset", func() {
		It("should force every engine back to idle", func() {
			c.trans = newTransfer(newReadReq(8), elemBytes, 256)
			c.addrRead.start()
			c.readData.startBurst()
			c.memPort.BeginWrite(0, 1)

			c.applyReset()

			Expect(c.trans).To(BeNil())
			Expect(c.addrRead.state).To(Equal(arIdle))
			Expect(c.readData.state).To(Equal(rdIdle))
			Expect(c.addrWrite.state).To(Equal(awIdle))
			Expect(c.writeData.state).To(Equal(wdIdle))
			Expect(c.writeRsp.state).To(Equal(bIdle))
			Expect(c.memPort.Busy()).To(BeFalse())
		})
	})
})
