// Package monitoring turns a run into a web server that reports progress and
// lets a user pause the run and inspect it between cycles.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/cosim/harness"
	"github.com/sarchlab/cosim/mem/store"
	"github.com/sarchlab/cosim/monitoring/web"
	"github.com/sarchlab/cosim/sim"
)

// Monitor can turn a run into a server and allows external monitoring and
// controlling of the run. The run interacts with the monitor only through a
// hook invoked between cycles.
type Monitor struct {
	portNumber int

	lock           sync.Mutex
	cond           *sync.Cond
	components     []sim.Named
	memory         *store.Store
	timeTeller     sim.TimeTeller
	pauseRequested bool
	parked         bool
	running        bool
	cycle          uint64
	pc             uint32
	now            sim.VTimeInSec
	result         *harness.Result
	cycleBar       *ProgressBar

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	m := &Monitor{}
	m.cond = sync.NewCond(&m.lock)

	return m
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterComponent registers a component that can be inspected.
func (m *Monitor) RegisterComponent(c sim.Named) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.components = append(m.components, c)
}

// RegisterRunner attaches the monitor to a runner. The budget is the number
// of cycles the run may take and sizes the progress bar.
func (m *Monitor) RegisterRunner(r *harness.Runner, budget uint64) {
	m.lock.Lock()
	m.memory = r.Memory()
	m.timeTeller = r.Driver()
	m.lock.Unlock()

	m.RegisterComponent(r.Driver().Memory())
	m.cycleBar = m.CreateProgressBar(r.Name(), budget)

	r.AcceptHook(m)
}

// Func receives the cycle and finish notifications of a runner. While a pause
// is requested it blocks the run.
func (m *Monitor) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case harness.HookPosCycle:
		m.onCycle(ctx.Item.(harness.CycleInfo))
	case harness.HookPosFinish:
		m.onFinish(ctx.Item.(harness.Result))
	}
}

func (m *Monitor) onCycle(info harness.CycleInfo) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.running = true
	m.cycle = info.Cycle
	m.pc = info.PC

	if m.timeTeller != nil {
		m.now = m.timeTeller.CurrentTime()
	}

	if m.cycleBar != nil {
		m.cycleBar.IncrementFinished(1)
	}

	for m.pauseRequested {
		m.parked = true
		m.cond.Wait()
	}

	m.parked = false
}

func (m *Monitor) onFinish(result harness.Result) {
	m.lock.Lock()
	m.running = false
	m.result = &result
	bar := m.cycleBar
	m.cycleBar = nil
	m.lock.Unlock()

	if bar != nil {
		m.CompleteProgressBar(bar)
	}
}

// Pause asks the run to stop at the end of the current cycle.
func (m *Monitor) Pause() {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.pauseRequested = true
}

// Continue resumes a paused run.
func (m *Monitor) Continue() {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.pauseRequested = false
	m.cond.Broadcast()
}

// Parked tells whether the run is blocked in the monitor.
func (m *Monitor) Parked() bool {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.parked
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := NewProgressBar(name, total)

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Handler returns the router that serves the monitoring API and the page.
func (m *Monitor) Handler() http.Handler {
	r := mux.NewRouter()

	fs := web.GetAssets()
	fServer := http.FileServer(fs)
	r.HandleFunc("/api/pause", m.pauseRun)
	r.HandleFunc("/api/continue", m.continueRun)
	r.HandleFunc("/api/now", m.reportNow)
	r.HandleFunc("/api/result", m.reportResult)
	r.HandleFunc("/api/list_components", m.listComponents)
	r.HandleFunc("/api/component/{name}", m.listComponentDetails)
	r.HandleFunc("/api/field/{json}", m.listFieldValue)
	r.HandleFunc("/api/memory", m.dumpMemory)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/").Handler(fServer)

	return r
}

// StartServer starts the monitor as a web server and returns its address.
func (m *Monitor) StartServer() string {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", url)

	handler := m.Handler()

	go func() {
		err := http.Serve(listener, handler)
		dieOnErr(err)
	}()

	return url
}

func (m *Monitor) pauseRun(w http.ResponseWriter, _ *http.Request) {
	m.Pause()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) continueRun(w http.ResponseWriter, _ *http.Request) {
	m.Continue()
	_, err := w.Write(nil)
	dieOnErr(err)
}

type nowRsp struct {
	Now     float64 `json:"now"`
	Cycle   uint64  `json:"cycle"`
	PC      uint32  `json:"pc"`
	Running bool    `json:"running"`
	Paused  bool    `json:"paused"`
}

func (m *Monitor) reportNow(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	rsp := nowRsp{
		Now:     float64(m.now),
		Cycle:   m.cycle,
		PC:      m.pc,
		Running: m.running,
		Paused:  m.parked,
	}
	m.lock.Unlock()

	writeJSON(w, rsp)
}

type resultRsp struct {
	Outcome string `json:"outcome"`
	Cycles  uint64 `json:"cycles"`
	PC      uint32 `json:"pc"`
	Value   uint32 `json:"value"`
}

func (m *Monitor) reportResult(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	result := m.result
	m.lock.Unlock()

	if result == nil {
		writeJSON(w, struct{}{})
		return
	}

	writeJSON(w, resultRsp{
		Outcome: result.Outcome.String(),
		Cycles:  result.Cycles,
		PC:      result.PC,
		Value:   result.Value,
	})
}

func (m *Monitor) listComponents(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	names := make([]string, 0, len(m.components))
	for _, c := range m.components {
		names = append(names, c.Name())
	}
	m.lock.Unlock()

	writeJSON(w, names)
}

// lockInspectable takes the lock if the run is not in the middle of a cycle.
// It writes a 409 and returns false otherwise.
func (m *Monitor) lockInspectable(w http.ResponseWriter) bool {
	m.lock.Lock()

	if m.running && !m.parked {
		m.lock.Unlock()
		w.WriteHeader(http.StatusConflict)
		_, err := w.Write([]byte("Pause the run first"))
		dieOnErr(err)

		return false
	}

	return true
}

func (m *Monitor) listComponentDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if !m.lockInspectable(w) {
		return
	}
	defer m.lock.Unlock()

	component := m.findComponentOr404(w, name)
	if component == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(component)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

type fieldReq struct {
	CompName  string `json:"comp_name,omitempty"`
	FieldName string `json:"field_name,omitempty"`
}

func (m *Monitor) listFieldValue(w http.ResponseWriter, r *http.Request) {
	jsonString := mux.Vars(r)["json"]
	req := fieldReq{}

	err := json.Unmarshal([]byte(jsonString), &req)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)

		return
	}

	if !m.lockInspectable(w) {
		return
	}
	defer m.lock.Unlock()

	component := m.findComponentOr404(w, req.CompName)
	if component == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(component)
	serializer.SetMaxDepth(1)

	err = serializer.SetEntryPoint(strings.Split(req.FieldName, "."))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)

		return
	}

	err = serializer.Serialize(w)
	dieOnErr(err)
}

func parseAddr(s string, def uint32) (uint32, error) {
	if s == "" {
		return def, nil
	}

	v, err := strconv.ParseUint(s, 0, 32)

	return uint32(v), err
}

func (m *Monitor) dumpMemory(w http.ResponseWriter, r *http.Request) {
	start, err := parseAddr(r.URL.Query().Get("start"), 0)
	if err == nil {
		var end uint32
		end, err = parseAddr(r.URL.Query().Get("end"), start+256)

		if err == nil {
			m.dumpMemoryRange(w, start, end)
			return
		}
	}

	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintf(w, "Error: %s", err)
}

func (m *Monitor) dumpMemoryRange(w http.ResponseWriter, start, end uint32) {
	if !m.lockInspectable(w) {
		return
	}
	defer m.lock.Unlock()

	if m.memory == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("No memory registered"))
		dieOnErr(err)

		return
	}

	w.Header().Set("Content-Type", "text/plain")
	err := m.memory.Dump(w, start, end)
	dieOnErr(err)
}

func (m *Monitor) findComponentOr404(
	w http.ResponseWriter,
	name string,
) sim.Named {
	var component sim.Named
	for _, c := range m.components {
		if c.Name() == name {
			component = c
		}
	}

	if component == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Component not found"))
		dieOnErr(err)
	}

	return component
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	writeJSON(w, m.progressBars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
