package xfer

import (
	"github.com/sarchlab/axibridge/localmem"
	"github.com/sarchlab/axibridge/sim"
)

// Builder builds orchestrator components.
type Builder struct {
	engine           sim.Engine
	freq             sim.Freq
	kernel           Kernel
	cyclesPerElement int

	srcBridges []sim.RemotePort
	srcMems    []*localmem.Memory
	dstBridge  sim.RemotePort
	dstMem     *localmem.Memory
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq:             1 * sim.GHz,
		cyclesPerElement: 1,
	}
}

// WithEngine sets the event engine that drives the orchestrator.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the orchestrator.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithKernel sets the kernel the orchestrator runs.
func (b Builder) WithKernel(kernel Kernel) Builder {
	b.kernel = kernel
	return b
}

// WithCyclesPerElement sets the modeled compute time per element.
func (b Builder) WithCyclesPerElement(n int) Builder {
	b.cyclesPerElement = n
	return b
}

// WithSrcBridge adds a source buffer: the control port of the bridge that
// fetches it and the local memory the bridge fills.
func (b Builder) WithSrcBridge(
	ctrl sim.RemotePort,
	mem *localmem.Memory,
) Builder {
	b.srcBridges = append(b.srcBridges, ctrl)
	b.srcMems = append(b.srcMems, mem)
	return b
}

// WithDstBridge sets the bridge that stores the result buffer and the local
// memory it drains.
func (b Builder) WithDstBridge(
	ctrl sim.RemotePort,
	mem *localmem.Memory,
) Builder {
	b.dstBridge = ctrl
	b.dstMem = mem
	return b
}

// Build creates an orchestrator component with the given name.
func (b Builder) Build(name string) *Comp {
	c := &Comp{
		kernel:           b.kernel,
		cyclesPerElement: b.cyclesPerElement,
		srcBridges:       b.srcBridges,
		srcMems:          b.srcMems,
		dstBridge:        b.dstBridge,
		dstMem:           b.dstMem,
	}
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)

	c.ctrlPort = sim.NewPort(c, 4, 4, name+".CtrlPort")
	c.AddPort("Ctrl", c.ctrlPort)

	return c
}
