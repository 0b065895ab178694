package xfer

import (
	"log"
	"reflect"

	"github.com/sarchlab/axibridge/bridge"
	"github.com/sarchlab/axibridge/localmem"
	"github.com/sarchlab/axibridge/sim"
	"github.com/sarchlab/axibridge/tracing"
)

type xferState int

const (
	xIdle xferState = iota
	xFetch
	xCompute
	xStore
	xRespond
)

// Comp orchestrates one kernel run at a time. It fetches every source buffer
// through its own bridge, runs the kernel over the local copies, and stores
// the result buffer back through the destination bridge. The fetches are the
// only phase that runs concurrently.
type Comp struct {
	*sim.TickingComponent

	ctrlPort sim.Port

	kernel           Kernel
	cyclesPerElement int

	srcBridges []sim.RemotePort
	srcMems    []*localmem.Memory
	dstBridge  sim.RemotePort
	dstMem     *localmem.Memory

	state       xferState
	job         *JobReq
	queuedJob   *JobReq
	fetchSent   []bool
	pendingDone int
	storeSent   bool
	computeLeft int
	jobRsp      sim.Msg
}

// CtrlPort returns the port that accepts job requests.
func (c *Comp) CtrlPort() sim.Port {
	return c.ctrlPort
}

// Tick advances the orchestrator by one cycle.
func (c *Comp) Tick() bool {
	switch c.state {
	case xIdle:
		return c.acceptJob()
	case xFetch:
		return c.doFetch()
	case xCompute:
		return c.doCompute()
	case xStore:
		return c.doStore()
	case xRespond:
		return c.respond()
	}

	return false
}

func (c *Comp) acceptJob() bool {
	if c.queuedJob != nil {
		job := c.queuedJob
		c.queuedJob = nil
		c.startJob(job)

		return true
	}

	msg := c.ctrlPort.RetrieveIncoming()
	if msg == nil {
		return false
	}

	job, ok := msg.(*JobReq)
	if !ok {
		log.Panicf("cannot process request of type %s", reflect.TypeOf(msg))
	}

	c.startJob(job)

	return true
}

func (c *Comp) startJob(job *JobReq) {
	if len(job.SrcAddrs) != c.kernel.NumInputs() {
		log.Panicf("kernel takes %d inputs, job provides %d",
			c.kernel.NumInputs(), len(job.SrcAddrs))
	}

	c.job = job
	c.state = xFetch
	c.fetchSent = make([]bool, len(c.srcBridges))
	c.pendingDone = len(c.srcBridges)

	tracing.TraceReqReceive(job, c)
}

func (c *Comp) doFetch() bool {
	madeProgress := false

	for i, sent := range c.fetchSent {
		if sent {
			continue
		}

		req := bridge.MakeTransferReqBuilder().
			WithSrc(c.ctrlPort.AsRemote()).
			WithDst(c.srcBridges[i]).
			WithDirection(bridge.TransferRead).
			WithBaseAddr(c.job.SrcAddrs[i]).
			WithElementCount(c.job.ElementCount).
			Build()

		if err := c.ctrlPort.Send(req); err == nil {
			c.fetchSent[i] = true
			madeProgress = true
		}
	}

	madeProgress = c.collectDonePulses() || madeProgress

	if c.pendingDone == 0 {
		c.state = xCompute
		c.computeLeft = c.job.ElementCount * c.cyclesPerElement
		madeProgress = true
	}

	return madeProgress
}

func (c *Comp) collectDonePulses() bool {
	madeProgress := false

	for {
		msg := c.ctrlPort.PeekIncoming()
		if msg == nil {
			break
		}

		switch msg := msg.(type) {
		case *sim.GeneralRsp:
			c.ctrlPort.RetrieveIncoming()
			c.pendingDone--
			madeProgress = true
		case *JobReq:
			// The next job is staged aside so the done pulses behind it
			// can still drain. One job can wait; further requests stay
			// in the channel.
			if c.queuedJob != nil {
				return madeProgress
			}

			c.ctrlPort.RetrieveIncoming()
			c.queuedJob = msg
			madeProgress = true
		default:
			log.Panicf("cannot process request of type %s",
				reflect.TypeOf(msg))
		}
	}

	return madeProgress
}

func (c *Comp) doCompute() bool {
	c.computeLeft--
	if c.computeLeft > 0 {
		return true
	}

	n := c.job.ElementCount
	inputs := make([][]uint32, len(c.srcMems))
	for i, mem := range c.srcMems {
		inputs[i] = mem.Words()[:n]
	}

	out := c.kernel.Apply(inputs)
	for i, word := range out {
		c.dstMem.Write(i, word)
	}

	c.state = xStore
	c.storeSent = false
	c.pendingDone = 1

	return true
}

func (c *Comp) doStore() bool {
	madeProgress := false

	if !c.storeSent {
		req := bridge.MakeTransferReqBuilder().
			WithSrc(c.ctrlPort.AsRemote()).
			WithDst(c.dstBridge).
			WithDirection(bridge.TransferWrite).
			WithBaseAddr(c.job.DstAddr).
			WithElementCount(c.job.ElementCount).
			Build()

		if err := c.ctrlPort.Send(req); err == nil {
			c.storeSent = true
			madeProgress = true
		}
	}

	madeProgress = c.collectDonePulses() || madeProgress

	if c.storeSent && c.pendingDone == 0 {
		c.state = xRespond
		c.jobRsp = c.job.GenerateRsp()
		madeProgress = true
	}

	return madeProgress
}

func (c *Comp) respond() bool {
	if err := c.ctrlPort.Send(c.jobRsp); err != nil {
		return false
	}

	tracing.TraceReqComplete(c.job, c)

	c.state = xIdle
	c.job = nil
	c.jobRsp = nil

	return true
}
