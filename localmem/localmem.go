// Package localmem models a synchronous, single-port, word-addressed local
// memory. An access started on one cycle completes with a done pulse on the
// next cycle.
package localmem

import "log"

// A Memory is the backing storage of a local buffer: a fixed number of 32-bit
// words addressed by index.
type Memory struct {
	name  string
	words []uint32
}

// New creates a Memory with the given depth.
func New(name string, depth int) *Memory {
	if depth <= 0 {
		log.Panicf("memory %s must have a positive depth", name)
	}

	return &Memory{
		name:  name,
		words: make([]uint32, depth),
	}
}

// Name returns the name of the memory.
func (m *Memory) Name() string {
	return m.name
}

// Depth returns the number of words the memory holds.
func (m *Memory) Depth() int {
	return len(m.words)
}

// Read returns the word at the given index.
func (m *Memory) Read(index int) uint32 {
	m.indexMustBeInBound(index)

	return m.words[index]
}

// Write stores a word at the given index.
func (m *Memory) Write(index int, data uint32) {
	m.indexMustBeInBound(index)

	m.words[index] = data
}

// Words returns a copy of the memory contents.
func (m *Memory) Words() []uint32 {
	cp := make([]uint32, len(m.words))
	copy(cp, m.words)

	return cp
}

func (m *Memory) indexMustBeInBound(index int) {
	if index < 0 || index >= len(m.words) {
		log.Panicf("memory %s access at index %d exceeds depth %d",
			m.name, index, len(m.words))
	}
}
