// Package tracing collects task traces from the simulated components.
package tracing

import "github.com/sarchlab/axibridge/sim"

// A Task is a piece of work that a component performs over a time span.
// Requests in flight, bursts, and data beats are all recorded as tasks.
type Task struct {
	ID        string         `json:"id"`
	ParentID  string         `json:"parent_id"`
	Kind      string         `json:"kind"`
	What      string         `json:"what"`
	Where     string         `json:"where"`
	StartTime sim.VTimeInSec `json:"start_time"`
	EndTime   sim.VTimeInSec `json:"end_time"`
	Detail    interface{}    `json:"-"`
}

// A Tracer can collect task traces.
type Tracer interface {
	StartTask(task Task)
	EndTask(task Task)
}
