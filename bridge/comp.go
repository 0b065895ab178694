package bridge

import (
	"fmt"
	"log"
	"reflect"

	"github.com/sarchlab/axibridge/localmem"
	"github.com/sarchlab/axibridge/sim"
	"github.com/sarchlab/axibridge/tracing"
)

// Comp is the bridge component. It owns one channel engine per bus channel
// and moves one local buffer per transfer. The read pair (address read, read
// data) and the write triple (address write, write data, write response)
// never run at the same time: a transfer is either a read or a write.
type Comp struct {
	*sim.TickingComponent

	ctrlPort      sim.Port
	readAddrPort  sim.Port
	readDataPort  sim.Port
	writeAddrPort sim.Port
	writeDataPort sim.Port
	writeRspPort  sim.Port

	// Static channel wiring: the remote ends of the manager-driven channels.
	readAddrDst  sim.RemotePort
	writeAddrDst sim.RemotePort
	writeDataDst sim.RemotePort

	memPort     *localmem.AccessPort
	elemBytes   uint64
	maxBurstLen int

	trans *transfer

	addrRead  addrReadEngine
	readData  readDataEngine
	addrWrite addrWriteEngine
	writeData writeDataEngine
	writeRsp  writeRspEngine

	doneRsp sim.Msg
	ctrlRsp sim.Msg
}

// CtrlPort returns the port that accepts transfer requests and control
// messages.
func (c *Comp) CtrlPort() sim.Port {
	return c.ctrlPort
}

// Tick advances every engine by one cycle.
func (c *Comp) Tick() bool {
	madeProgress := false

	madeProgress = c.memPort.Tick() || madeProgress
	madeProgress = c.respondCompleted() || madeProgress
	madeProgress = c.writeRsp.Tick() || madeProgress
	madeProgress = c.writeData.Tick() || madeProgress
	madeProgress = c.addrWrite.Tick() || madeProgress
	madeProgress = c.readData.Tick() || madeProgress
	madeProgress = c.addrRead.Tick() || madeProgress
	madeProgress = c.processCtrl() || madeProgress

	return madeProgress
}

// processCtrl accepts new transfer requests and control messages. A transfer
// request stays queued while another transfer is in flight.
func (c *Comp) processCtrl() bool {
	msg := c.ctrlPort.PeekIncoming()
	if msg == nil {
		return false
	}

	switch msg := msg.(type) {
	case *TransferReq:
		return c.startTransfer(msg)
	case *ControlMsg:
		c.ctrlPort.RetrieveIncoming()
		return c.processControlMsg(msg)
	default:
		log.Panicf("cannot process request of type %s", reflect.TypeOf(msg))
	}

	return false
}

func (c *Comp) startTransfer(req *TransferReq) bool {
	if c.trans != nil || c.doneRsp != nil {
		return false
	}

	c.ctrlPort.RetrieveIncoming()

	c.trans = newTransfer(req, c.elemBytes, c.maxBurstLen)

	switch req.Direction {
	case TransferRead:
		c.addrRead.start()
	case TransferWrite:
		c.addrWrite.start()
	}

	tracing.TraceReqReceive(req, c)

	return true
}

func (c *Comp) processControlMsg(msg *ControlMsg) bool {
	if msg.Reset {
		c.applyReset()
	}

	c.ctrlRsp = msg.GenerateRsp()

	return true
}

// applyReset forces every engine to idle and every counter to zero,
// regardless of in-flight handshakes. A reset during an outstanding transfer
// silently loses that transfer.
func (c *Comp) applyReset() {
	c.trans = nil
	c.doneRsp = nil

	c.addrRead.reset()
	c.readData.reset()
	c.addrWrite.reset()
	c.writeData.reset()
	c.writeRsp.reset()

	c.memPort.Reset()
}

// startBurstTask opens a trace task for the in-flight burst. It must run
// after the burst is counted so that the task ID carries the burst number.
func (c *Comp) startBurstTask(what string) {
	tracing.StartTask(
		c.burstTaskID(),
		tracing.MsgIDAtReceiver(c.trans.req, c),
		c,
		"burst",
		what,
		nil,
	)
}

// endBurstTask closes the trace task of the in-flight burst.
func (c *Comp) endBurstTask() {
	tracing.EndTask(c.burstTaskID(), c)
}

func (c *Comp) burstTaskID() string {
	return fmt.Sprintf("%s_burst_%d", c.trans.req.ID, c.trans.txnCount)
}

// finishTransfer stages the done pulse for the completed transfer.
func (c *Comp) finishTransfer() {
	tracing.TraceReqComplete(c.trans.req, c)

	c.doneRsp = c.trans.req.GenerateRsp()
	c.trans = nil
}

// respondCompleted sends the pending done pulse and reset acknowledgment.
func (c *Comp) respondCompleted() bool {
	madeProgress := false

	if c.doneRsp != nil {
		if err := c.ctrlPort.Send(c.doneRsp); err == nil {
			c.doneRsp = nil
			madeProgress = true
		}
	}

	if c.ctrlRsp != nil {
		if err := c.ctrlPort.Send(c.ctrlRsp); err == nil {
			c.ctrlRsp = nil
			madeProgress = true
		}
	}

	return madeProgress
}
