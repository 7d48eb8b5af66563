package harness

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// WorkspaceEnv names the environment variable that holds the root of the
// test program tree.
const WorkspaceEnv = "WORKSPACE"

// Errors returned by Program.CheckCycles.
var (
	ErrTooFewCycles  = errors.New("finished in fewer cycles than expected")
	ErrTooManyCycles = errors.New("took more cycles than expected")
)

// Program describes a test program and the cycle counts it is expected to
// finish within.
type Program struct {
	Name          string
	MinCycles     uint64
	MaxCycles     uint64
	TimeoutCycles uint64
}

var programs = map[string]Program{
	"add":         {"add", 10, 1000, 10000},
	"subtract":    {"subtract", 10, 1000, 10000},
	"gcd":         {"gcd", 100, 50000, 100000},
	"fibonacci":   {"fibonacci", 10, 5000, 10000},
	"bitops":      {"bitops", 10, 10000, 100000},
	"multiply":    {"multiply", 10, 20000, 100000},
	"strlen":      {"strlen", 10, 20000, 100000},
	"memcpy":      {"memcpy", 10, 25000, 100000},
	"bubble_sort": {"bubble_sort", 10, 20000, 100000},
	"factorial":   {"factorial", 10, 20000, 100000},
	"prime":       {"prime", 10, 70000, 200000},
}

// LookupProgram returns a registered program.
func LookupProgram(name string) (Program, bool) {
	p, ok := programs[name]
	return p, ok
}

// RegisterProgram adds or replaces a program.
func RegisterProgram(p Program) {
	programs[p.Name] = p
}

// ProgramNames lists the registered programs in alphabetical order.
func ProgramNames() []string {
	names := make([]string, 0, len(programs))
	for name := range programs {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// ProgramPath returns $WORKSPACE/test/<name>/<name>.ini. The current
// directory is used when WORKSPACE is not set.
func ProgramPath(name string) string {
	workspace := os.Getenv(WorkspaceEnv)
	if workspace == "" {
		workspace = "."
	}

	return filepath.Join(workspace, "test", name, name+".ini")
}

// Path returns the image file of the program.
func (p Program) Path() string {
	return ProgramPath(p.Name)
}

// CheckCycles verifies a cycle count against the expected range. MaxCycles is
// exclusive.
func (p Program) CheckCycles(cycles uint64) error {
	if cycles < p.MinCycles {
		return fmt.Errorf("%s: %d < %d: %w",
			p.Name, cycles, p.MinCycles, ErrTooFewCycles)
	}

	if p.MaxCycles > 0 && cycles >= p.MaxCycles {
		return fmt.Errorf("%s: %d >= %d: %w",
			p.Name, cycles, p.MaxCycles, ErrTooManyCycles)
	}

	return nil
}

// RunProgram loads the program from the workspace and runs it with its
// timeout as the cycle budget.
func (r *Runner) RunProgram(p Program) (Result, error) {
	if err := r.LoadProgram(p.Path()); err != nil {
		return Result{}, err
	}

	return r.Run(p.TimeoutCycles), nil
}
