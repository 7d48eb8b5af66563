package datarecording

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

const execTimeFormat = "2006-01-02 15:04:05.000000000"

// execInfo is one property of a program execution.
type execInfo struct {
	Property string
	Value    string
}

// ExecRecorder records how and when the simulator was invoked, together with
// any extra properties of the run.
type ExecRecorder struct {
	tablename string
	recorder  DataRecorder
	entries   []execInfo
}

// NewExecRecorder creates an ExecRecorder writing into the exec_info table of
// recorder.
func NewExecRecorder(recorder DataRecorder) *ExecRecorder {
	e := &ExecRecorder{
		tablename: "exec_info",
		recorder:  recorder,
	}

	e.recorder.CreateTable(e.tablename, execInfo{})

	return e
}

// Start logs the start time, the command line and the working directory.
func (e *ExecRecorder) Start() {
	e.Add("Start Time", time.Now().Format(execTimeFormat))
	e.Add("Command", strings.Join(os.Args, " "))

	if ex, err := os.Executable(); err == nil {
		e.Add("Working Directory", filepath.Dir(ex))
	}
}

// Add records an arbitrary property of the run.
func (e *ExecRecorder) Add(property, value string) {
	e.entries = append(e.entries, execInfo{property, value})
}

// End writes the collected properties along with the end time.
func (e *ExecRecorder) End() {
	for _, entry := range e.entries {
		e.recorder.InsertData(e.tablename, entry)
	}

	endValue := time.Now().Format(execTimeFormat)
	e.recorder.InsertData(e.tablename, execInfo{"End Time", endValue})

	e.entries = nil

	e.recorder.Flush()
}
