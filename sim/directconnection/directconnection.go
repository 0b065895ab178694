// Package directconnection provides a connection that delivers messages to
// their destination within the same cycle.
package directconnection

import (
	"github.com/sarchlab/axibridge/sim"
)

// Comp is a connection that directly links ports without latency.
type Comp struct {
	*sim.TickingComponent

	ports      []sim.Port
	portByName map[sim.RemotePort]sim.Port
	nextPortID int
}

// PlugIn connects a port to this connection.
func (c *Comp) PlugIn(port sim.Port) {
	c.Lock()
	defer c.Unlock()

	c.ports = append(c.ports, port)
	c.portByName[port.AsRemote()] = port

	port.SetConnection(c)
}

// Unplug removes a port from this connection.
func (c *Comp) Unplug(_ sim.Port) {
	panic("not implemented")
}

// NotifyAvailable is called by a port to notify that the port can accept
// deliveries again.
func (c *Comp) NotifyAvailable(p sim.Port) {
	for _, port := range c.ports {
		if port == p {
			continue
		}

		port.NotifyAvailable()
	}

	c.TickNow()
}

// NotifySend is called by a port to notify that the port has outgoing
// messages.
func (c *Comp) NotifySend() {
	c.TickNow()
}

// Tick moves outgoing messages to the incoming buffers of their destinations.
func (c *Comp) Tick() bool {
	madeProgress := false

	for i := 0; i < len(c.ports); i++ {
		portID := (i + c.nextPortID) % len(c.ports)
		madeProgress = c.forwardMany(c.ports[portID]) || madeProgress
	}

	c.nextPortID = (c.nextPortID + 1) % len(c.ports)

	return madeProgress
}

func (c *Comp) forwardMany(port sim.Port) bool {
	madeProgress := false

	for {
		head := port.PeekOutgoing()
		if head == nil {
			break
		}

		dst, found := c.portByName[head.Meta().Dst]
		if !found {
			panic("dst port " + string(head.Meta().Dst) +
				" is not plugged into connection " + c.Name())
		}

		if err := dst.Deliver(head); err != nil {
			break
		}

		port.RetrieveOutgoing()
		madeProgress = true
	}

	return madeProgress
}
