package xfer

import "log"

// A Kernel is the computation the orchestrator applies once all source
// buffers are resident in local memory.
type Kernel interface {
	// Apply computes the output buffer from the input buffers. Every input
	// has the same length and the output must match it.
	Apply(inputs [][]uint32) []uint32

	// NumInputs returns the number of source buffers the kernel consumes.
	NumInputs() int
}

// VectorAdd adds two vectors element by element.
type VectorAdd struct{}

// NumInputs returns 2.
func (VectorAdd) NumInputs() int {
	return 2
}

// Apply adds the two input vectors.
func (VectorAdd) Apply(inputs [][]uint32) []uint32 {
	if len(inputs) != 2 {
		log.Panicf("vector add takes 2 inputs, not %d", len(inputs))
	}

	a, b := inputs[0], inputs[1]
	out := make([]uint32, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}

	return out
}
