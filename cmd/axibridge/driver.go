package main

import (
	"github.com/sarchlab/axibridge/sim"
	"github.com/sarchlab/axibridge/xfer"
)

// driver injects one job request at the start of the simulation and waits
// for its response. The simulation drains once the response arrives.
type driver struct {
	*sim.TickingComponent

	ctrlPort sim.Port
	dst      sim.RemotePort

	srcAddrs []uint64
	dstAddr  uint64
	length   int

	sent bool
	done bool
}

func newDriver(engine sim.Engine, name string) *driver {
	d := &driver{}
	d.TickingComponent = sim.NewTickingComponent(name, engine, 1*sim.GHz, d)

	d.ctrlPort = sim.NewPort(d, 1, 1, name+".CtrlPort")
	d.AddPort("Ctrl", d.ctrlPort)

	return d
}

func (d *driver) Tick() bool {
	if !d.sent {
		return d.sendJob()
	}

	if d.done {
		return false
	}

	rsp := d.ctrlPort.RetrieveIncoming()
	if rsp == nil {
		return false
	}

	d.done = true

	return true
}

func (d *driver) sendJob() bool {
	job := xfer.MakeJobReqBuilder().
		WithSrc(d.ctrlPort.AsRemote()).
		WithDst(d.dst).
		WithSrcAddrs(d.srcAddrs...).
		WithDstAddr(d.dstAddr).
		WithElementCount(d.length).
		Build()

	if err := d.ctrlPort.Send(job); err != nil {
		return false
	}

	d.sent = true

	return true
}
