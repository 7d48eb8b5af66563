package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/browser"
	"github.com/rs/xid"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/cosim/datarecording"
	"github.com/sarchlab/cosim/dut/rv32"
	"github.com/sarchlab/cosim/harness"
	"github.com/sarchlab/cosim/mem/memfsm"
	"github.com/sarchlab/cosim/monitoring"
	"github.com/sarchlab/cosim/tracing"
	"github.com/sarchlab/cosim/waveform"
)

// defaultMaxCycles is the budget of an image that is not a registered
// program.
const defaultMaxCycles = 100000

var errNoProgram = errors.New("either --program or an image path is required")

type runOptions struct {
	program     string
	latency     uint32
	capacity    uint32
	maxCycles   uint64
	vcd         string
	record      string
	sampleEvery uint64
	monitor     bool
	port        int
	open        bool
	debug       bool
	checkBounds bool
}

var runOpts runOptions

var runCmd = &cobra.Command{
	Use:   "run [image]",
	Short: "Run a program on the reference core.",
	Long: `Run loads a program image, resets the core and runs it until the ` +
		`program reports a result, the program counter stops changing, or ` +
		`the cycle budget runs out. The exit code is 0 only if the program ` +
		`passes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outcome, err := runProgram(runOpts, args)
		if err != nil {
			return err
		}

		if outcome != harness.OutcomePass {
			atexit.Exit(1)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	d := memfsm.Defaults()
	f := runCmd.Flags()
	f.StringVarP(&runOpts.program, "program", "p", "",
		"Name of a registered program under $WORKSPACE/test.")
	f.Uint32Var(&runOpts.latency, "latency", d.LatencyCycles,
		"Memory latency in cycles.")
	f.Uint32Var(&runOpts.capacity, "capacity", d.Capacity,
		"Memory capacity in bytes.")
	f.Uint64Var(&runOpts.maxCycles, "max-cycles", 0,
		"Cycle budget. Defaults to the timeout of the program.")
	f.StringVar(&runOpts.vcd, "vcd", "",
		"Write a Value Change Dump of the core ports to this file.")
	f.StringVar(&runOpts.record, "record", "",
		"Record the run into <record>.sqlite3.")
	f.Uint64Var(&runOpts.sampleEvery, "sample-every", 2,
		"Keep one port sample out of this many half periods when recording.")
	f.BoolVar(&runOpts.monitor, "monitor", false,
		"Serve the monitoring page while running.")
	f.IntVar(&runOpts.port, "monitor-port", 0,
		"Port of the monitoring server. A random port is used if 0.")
	f.BoolVar(&runOpts.open, "open", false,
		"Open the monitoring page in a browser.")
	f.BoolVar(&runOpts.debug, "debug", false,
		"Log every memory access.")
	f.BoolVar(&runOpts.checkBounds, "check-bounds", false,
		"Fail a passing program whose cycle count is outside its expected range.")
}

// resolveProgram returns the image path, the registered program if any, and
// the cycle budget.
func resolveProgram(
	opts runOptions,
	args []string,
) (string, *harness.Program, uint64, error) {
	budget := opts.maxCycles

	if opts.program != "" {
		p, ok := harness.LookupProgram(opts.program)
		if !ok {
			p = harness.Program{
				Name:          opts.program,
				TimeoutCycles: defaultMaxCycles,
			}
		}

		if budget == 0 {
			budget = p.TimeoutCycles
		}

		return p.Path(), &p, budget, nil
	}

	if len(args) == 0 {
		return "", nil, 0, errNoProgram
	}

	if budget == 0 {
		budget = defaultMaxCycles
	}

	return args[0], nil, budget, nil
}

func runProgram(opts runOptions, args []string) (harness.Outcome, error) {
	path, program, budget, err := resolveProgram(opts, args)
	if err != nil {
		return harness.OutcomeIndeterminateError, err
	}

	core := rv32.New()

	var recorder datarecording.DataRecorder
	var exec *datarecording.ExecRecorder
	var waves waveform.Multi

	if opts.vcd != "" {
		vcd, err := waveform.CreateVCDFile(opts.vcd, core.Ports())
		if err != nil {
			return harness.OutcomeIndeterminateError, err
		}

		waves = append(waves, vcd)
	}

	if opts.record != "" {
		recorder = datarecording.New(opts.record)
		exec = datarecording.NewExecRecorder(recorder)
		exec.Start()
		exec.Add("Run ID", xid.New().String())
		exec.Add("Image", path)

		waves = append(waves,
			waveform.NewRecorder(recorder, core.Ports()).
				WithInterval(opts.sampleEvery))
	}

	b := harness.MakeBuilder().
		WithDUT(core).
		WithLatency(opts.latency).
		WithCapacity(opts.capacity).
		WithMemoryDebug(opts.debug)
	if len(waves) > 0 {
		b = b.WithWaveform(waves)
	}

	runner, err := b.Build("Runner")
	if err != nil {
		return harness.OutcomeIndeterminateError, err
	}

	var tracer *tracing.DBTracer
	if recorder != nil {
		tracer = tracing.NewDBTracer(runner.Driver(), recorder)
		tracing.CollectTrace(runner.Driver().Memory(), tracer)
	}

	if opts.monitor {
		startMonitor(runner, budget, opts)
	}

	if err := runner.LoadProgram(path); err != nil {
		return harness.OutcomeIndeterminateError, err
	}

	result := runner.Run(budget)
	fmt.Fprintln(os.Stderr, result)

	outcome := result.Outcome
	if program != nil && opts.checkBounds && outcome == harness.OutcomePass {
		if err := program.CheckCycles(result.Cycles); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", program.Name, err)
			outcome = harness.OutcomeFail
		}
	}

	if err := runner.Final(); err != nil {
		return outcome, err
	}

	if recorder != nil {
		tracer.Terminate()
		exec.Add("Outcome", outcome.String())
		exec.Add("Cycles", strconv.FormatUint(result.Cycles, 10))
		exec.End()

		if err := recorder.Close(); err != nil {
			return outcome, err
		}
	}

	return outcome, nil
}

func startMonitor(runner *harness.Runner, budget uint64, opts runOptions) {
	m := monitoring.NewMonitor().WithPortNumber(opts.port)
	m.RegisterRunner(runner, budget)
	m.RegisterComponent(runner)

	url := m.StartServer()
	if opts.open {
		if err := browser.OpenURL(url); err != nil {
			fmt.Fprintf(os.Stderr, "cannot open browser: %v\n", err)
		}
	}
}
