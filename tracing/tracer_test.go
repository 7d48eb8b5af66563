package tracing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/cosim/sim"
)

type testTimeTeller struct {
	currentTime sim.VTimeInSec
}

func (t *testTimeTeller) CurrentTime() sim.VTimeInSec {
	return t.currentTime
}

type testDomain struct {
	*sim.HookableBase
}

func (d testDomain) Name() string {
	return "Mem"
}

type countingTracer struct {
	started, stepped, ended int
}

func (t *countingTracer) StartTask(Task) { t.started++ }
func (t *countingTracer) StepTask(Task)  { t.stepped++ }
func (t *countingTracer) EndTask(Task)   { t.ended++ }

var _ = Describe("CollectTrace", func() {
	It("should forward tasks to the tracer", func() {
		domain := testDomain{HookableBase: &sim.HookableBase{}}
		tracer := &countingTracer{}

		CollectTrace(domain, tracer)
		StartTask("1", "", domain, "mem_req", "read", nil)
		AddTaskStep("1", domain, "wait")
		EndTask("1", domain)

		Expect(tracer.started).To(Equal(1))
		Expect(tracer.stepped).To(Equal(1))
		Expect(tracer.ended).To(Equal(1))
	})

	It("should panic if the same tracer is attached twice", func() {
		domain := testDomain{HookableBase: &sim.HookableBase{}}
		tracer := &countingTracer{}

		CollectTrace(domain, tracer)

		Expect(func() { CollectTrace(domain, tracer) }).To(Panic())
	})
})

var _ = Describe("AverageTimeTracer", func() {
	var (
		timeTeller *testTimeTeller
		tracer     *AverageTimeTracer
	)

	BeforeEach(func() {
		timeTeller = &testTimeTeller{}
		tracer = NewAverageTimeTracer(timeTeller, KindWhatFilter("mem_req", ""))
	})

	It("should average the selected tasks", func() {
		timeTeller.currentTime = 1
		tracer.StartTask(Task{ID: "a", Kind: "mem_req", What: "read"})
		timeTeller.currentTime = 3
		tracer.EndTask(Task{ID: "a"})

		timeTeller.currentTime = 4
		tracer.StartTask(Task{ID: "b", Kind: "mem_req", What: "write"})
		timeTeller.currentTime = 8
		tracer.EndTask(Task{ID: "b"})

		Expect(tracer.TotalCount()).To(Equal(uint64(2)))
		Expect(tracer.AverageTime()).To(BeNumerically("~", 3.0, 1e-12))
	})

	It("should ignore tasks that do not pass the filter", func() {
		tracer.StartTask(Task{ID: "a", Kind: "other", What: "read"})
		tracer.EndTask(Task{ID: "a"})

		Expect(tracer.TotalCount()).To(Equal(uint64(0)))
	})
})
