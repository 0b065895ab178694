package localmem

import "log"

// An AccessPort is the single synchronous port of a Memory. At most one
// access can be in flight: starting an access while another is pending is a
// violation of the single-port discipline and panics.
//
// Timing: an access begun on cycle t is performed when the port ticks on
// cycle t+1, which is also when Done reports true. Done holds for exactly one
// tick.
type AccessPort struct {
	mem *Memory

	pending bool
	isWrite bool
	index   int
	wdata   uint32

	done  bool
	rdata uint32
}

// Port returns the single access port of the memory. Calling Port again
// returns a new port view on the same storage; the time-multiplexing of the
// physical port across users is the caller's responsibility.
func (m *Memory) Port() *AccessPort {
	return &AccessPort{mem: m}
}

// BeginRead starts a read of the word at the given index.
func (p *AccessPort) BeginRead(index int) {
	p.beginAccess(index, false, 0)
}

// BeginWrite starts a write of the given word at the given index.
func (p *AccessPort) BeginWrite(index int, data uint32) {
	p.beginAccess(index, true, data)
}

func (p *AccessPort) beginAccess(index int, isWrite bool, data uint32) {
	if p.pending {
		log.Panicf("memory %s: second access started while one is pending",
			p.mem.Name())
	}

	p.pending = true
	p.isWrite = isWrite
	p.index = index
	p.wdata = data
	p.done = false
}

// Tick advances the port by one cycle, performing a pending access. It
// returns true if an access completed this cycle.
func (p *AccessPort) Tick() bool {
	p.done = false

	if !p.pending {
		return false
	}

	if p.isWrite {
		p.mem.Write(p.index, p.wdata)
	} else {
		p.rdata = p.mem.Read(p.index)
	}

	p.pending = false
	p.done = true

	return true
}

// Done reports whether an access completed on the current cycle.
func (p *AccessPort) Done() bool {
	return p.done
}

// Data returns the word returned by the most recent completed read.
func (p *AccessPort) Data() uint32 {
	return p.rdata
}

// Busy reports whether an access is pending.
func (p *AccessPort) Busy() bool {
	return p.pending
}

// Reset drops any pending access and clears the done pulse.
func (p *AccessPort) Reset() {
	p.pending = false
	p.done = false
}
