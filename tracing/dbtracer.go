package tracing

import (
	"log"

	"github.com/sarchlab/axibridge/datarecording"
	"github.com/sarchlab/axibridge/sim"
)

// taskRow is the flattened task format stored in the database.
type taskRow struct {
	ID        string
	ParentID  string
	Kind      string
	What      string
	Location  string
	StartTime float64
	EndTime   float64
}

// A DBTracer stores tasks in a database through a DataRecorder. Tasks are
// written when they end.
type DBTracer struct {
	timeTeller sim.TimeTeller
	recorder   datarecording.DataRecorder

	tracingTasks map[string]Task
}

// NewDBTracer creates a DBTracer.
func NewDBTracer(
	timeTeller sim.TimeTeller,
	recorder datarecording.DataRecorder,
) *DBTracer {
	t := &DBTracer{
		timeTeller:   timeTeller,
		recorder:     recorder,
		tracingTasks: make(map[string]Task),
	}

	recorder.CreateTable("trace", taskRow{})

	return t
}

// StartTask records the start of a task.
func (t *DBTracer) StartTask(task Task) {
	task.StartTime = t.timeTeller.CurrentTime()

	if task.ID == "" {
		log.Panic("task ID must not be empty")
	}

	t.tracingTasks[task.ID] = task
}

// EndTask records the end of a task and writes it out.
func (t *DBTracer) EndTask(task Task) {
	originalTask, ok := t.tracingTasks[task.ID]
	if !ok {
		return
	}

	originalTask.EndTime = t.timeTeller.CurrentTime()
	delete(t.tracingTasks, task.ID)

	t.recorder.InsertData("trace", taskRow{
		ID:        originalTask.ID,
		ParentID:  originalTask.ParentID,
		Kind:      originalTask.Kind,
		What:      originalTask.What,
		Location:  originalTask.Where,
		StartTime: float64(originalTask.StartTime),
		EndTime:   float64(originalTask.EndTime),
	})
}
