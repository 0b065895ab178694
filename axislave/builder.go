package axislave

import (
	"github.com/sarchlab/axibridge/sim"
)

// Builder builds bus slave components.
type Builder struct {
	engine   sim.Engine
	freq     sim.Freq
	capacity uint64
	latency  int
	storage  *Storage

	readDataDst sim.RemotePort
	writeRspDst sim.RemotePort
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq:     1 * sim.GHz,
		capacity: 1 << 20,
		latency:  10,
	}
}

// WithEngine sets the event engine that drives the slave.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the slave.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithCapacity sets the capacity of the storage in bytes.
func (b Builder) WithCapacity(capacity uint64) Builder {
	b.capacity = capacity
	return b
}

// WithLatency sets the number of cycles between accepting a burst and the
// first beat of its reply.
func (b Builder) WithLatency(latency int) Builder {
	b.latency = latency
	return b
}

// WithStorage shares an existing storage with the slave. Multiple slaves
// built with the same storage act as independent channels into one memory.
func (b Builder) WithStorage(storage *Storage) Builder {
	b.storage = storage
	return b
}

// WithReadDataDst sets the port the read data beats are sent to.
func (b Builder) WithReadDataDst(dst sim.RemotePort) Builder {
	b.readDataDst = dst
	return b
}

// WithWriteRspDst sets the port the write responses are sent to.
func (b Builder) WithWriteRspDst(dst sim.RemotePort) Builder {
	b.writeRspDst = dst
	return b
}

// Build creates a slave component with the given name.
func (b Builder) Build(name string) *Comp {
	storage := b.storage
	if storage == nil {
		storage = NewStorage(b.capacity)
	}

	c := &Comp{
		readDataDst: b.readDataDst,
		writeRspDst: b.writeRspDst,
		storage:     storage,
		latency:     b.latency,
	}
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)

	c.readAddrPort = sim.NewPort(c, 1, 1, name+".ReadAddr")
	c.AddPort("ReadAddr", c.readAddrPort)

	c.readDataPort = sim.NewPort(c, 1, 1, name+".ReadData")
	c.AddPort("ReadData", c.readDataPort)

	c.writeAddrPort = sim.NewPort(c, 1, 1, name+".WriteAddr")
	c.AddPort("WriteAddr", c.writeAddrPort)

	c.writeDataPort = sim.NewPort(c, 1, 1, name+".WriteData")
	c.AddPort("WriteData", c.writeDataPort)

	c.writeRspPort = sim.NewPort(c, 1, 1, name+".WriteRsp")
	c.AddPort("WriteRsp", c.writeRspPort)

	return c
}
