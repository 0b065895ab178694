package bridge

import (
	"github.com/sarchlab/axibridge/axi"
	"github.com/sarchlab/axibridge/localmem"
	"github.com/sarchlab/axibridge/sim"
)

// elemBytes is the number of bytes per beat. The bridge moves one 32-bit
// local memory word per beat.
const elemBytes = 4

// Builder builds bridge components.
type Builder struct {
	engine      sim.Engine
	freq        sim.Freq
	mem         *localmem.Memory
	maxBurstLen int

	readAddrDst  sim.RemotePort
	writeAddrDst sim.RemotePort
	writeDataDst sim.RemotePort
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq:        1 * sim.GHz,
		maxBurstLen: axi.MaxBurstLen,
	}
}

// WithEngine sets the event engine that drives the bridge.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the bridge.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithLocalMemory sets the local memory the bridge moves data in and out of.
func (b Builder) WithLocalMemory(mem *localmem.Memory) Builder {
	b.mem = mem
	return b
}

// WithMaxBurstLen caps the number of beats per burst. The default is the
// protocol maximum of 256.
func (b Builder) WithMaxBurstLen(n int) Builder {
	b.maxBurstLen = n
	return b
}

// WithReadAddrDst sets the remote end of the address-read channel.
func (b Builder) WithReadAddrDst(dst sim.RemotePort) Builder {
	b.readAddrDst = dst
	return b
}

// WithWriteAddrDst sets the remote end of the address-write channel.
func (b Builder) WithWriteAddrDst(dst sim.RemotePort) Builder {
	b.writeAddrDst = dst
	return b
}

// WithWriteDataDst sets the remote end of the write-data channel.
func (b Builder) WithWriteDataDst(dst sim.RemotePort) Builder {
	b.writeDataDst = dst
	return b
}

// Build creates a bridge component with the given name.
func (b Builder) Build(name string) *Comp {
	c := &Comp{
		readAddrDst:  b.readAddrDst,
		writeAddrDst: b.writeAddrDst,
		writeDataDst: b.writeDataDst,
		memPort:      b.mem.Port(),
		elemBytes:    elemBytes,
		maxBurstLen:  b.maxBurstLen,
	}
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)

	b.createPorts(c, name)

	c.addrRead.c = c
	c.readData.c = c
	c.addrWrite.c = c
	c.writeData.c = c
	c.writeRsp.c = c

	return c
}

func (b Builder) createPorts(c *Comp, name string) {
	c.ctrlPort = sim.NewPort(c, 4, 4, name+".CtrlPort")
	c.AddPort("Ctrl", c.ctrlPort)

	c.readAddrPort = sim.NewPort(c, 1, 1, name+".ReadAddr")
	c.AddPort("ReadAddr", c.readAddrPort)

	// Capacity one on the data channel keeps ready strict: at most one beat
	// is accepted ahead of the commit.
	c.readDataPort = sim.NewPort(c, 1, 1, name+".ReadData")
	c.AddPort("ReadData", c.readDataPort)

	c.writeAddrPort = sim.NewPort(c, 1, 1, name+".WriteAddr")
	c.AddPort("WriteAddr", c.writeAddrPort)

	c.writeDataPort = sim.NewPort(c, 1, 1, name+".WriteData")
	c.AddPort("WriteData", c.writeDataPort)

	c.writeRspPort = sim.NewPort(c, 1, 1, name+".WriteRsp")
	c.AddPort("WriteRsp", c.writeRspPort)
}
