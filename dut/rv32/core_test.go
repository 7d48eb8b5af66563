package rv32

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// memory answers every request after one idle cycle, which is enough to step
// the core without the timing memory.
type memory struct {
	words   map[uint32]uint32
	pending bool
	read    bool
	addr    uint32
	data    uint32
}

func (m *memory) cycle(c *Core) {
	p := c.Ports()

	p.MemResp = false
	if m.pending {
		p.MemResp = true
		if m.read {
			p.MemRData = m.words[m.addr]
		} else {
			m.words[m.addr] = m.data
		}
		m.pending = false
	} else if p.MemRead || p.MemWrite {
		m.pending = true
		m.read = p.MemRead
		m.addr = p.MemAddr
		m.data = p.MemWData
	}

	p.Clk = true
	c.Eval()
	p.Clk = false
	c.Eval()
}

var _ = Describe("Core", func() {
	var (
		core *Core
		mem  *memory
	)

	run := func(program []uint32, cycles int) {
		for i, ins := range program {
			mem.words[uint32(4*i)] = ins
		}

		core.Ports().ResetN = true
		for i := 0; i < cycles && !core.Halted(); i++ {
			mem.cycle(core)
		}
	}

	BeforeEach(func() {
		core = New()
		mem = &memory{words: make(map[uint32]uint32)}
	})

	It("should hold outputs low in reset", func() {
		p := core.Ports()
		p.Clk = true
		core.Eval()

		Expect(p.MemRead).To(BeFalse())
		Expect(p.PC).To(Equal(uint32(0)))
	})

	It("should fetch on the first edge after reset", func() {
		p := core.Ports()
		p.ResetN = true
		p.Clk = true
		core.Eval()

		Expect(p.MemRead).To(BeTrue())
		Expect(p.MemAddr).To(Equal(uint32(0)))
	})

	It("should execute arithmetic", func() {
		run(Program(
			ADDI(A0, Zero, 7),
			ADDI(A1, Zero, -3),
			ADD(A2, A0, A1),
			SUB(A3, A0, A1),
			SLT(A4, A1, A0),
			SLTU(A5, A1, A0),
			SRAI(A6, A1, 1),
			SRLI(A7, A1, 28),
			EBREAK(),
		), 500)

		Expect(core.Halted()).To(BeTrue())
		Expect(core.Reg(int(A2))).To(Equal(uint32(4)))
		Expect(core.Reg(int(A3))).To(Equal(uint32(10)))
		Expect(core.Reg(int(A4))).To(Equal(uint32(1)))
		Expect(core.Reg(int(A5))).To(Equal(uint32(0)))
		Expect(core.Reg(int(A6))).To(Equal(uint32(0xFFFFFFFE)))
		Expect(core.Reg(int(A7))).To(Equal(uint32(0xF)))
		Expect(core.Retired()).To(Equal(uint64(8)))
	})

	It("should jump and link", func() {
		run(Program(
			JAL(RA, 8),
			EBREAK(),
			JALR(T0, RA, 8),
			EBREAK(),
		), 500)

		Expect(core.Reg(int(RA))).To(Equal(uint32(4)))
		Expect(core.Reg(int(T0))).To(Equal(uint32(12)))
		Expect(core.Ports().PC).To(Equal(uint32(12)))
	})

	It("should keep x0 at zero", func() {
		run(Program(ADDI(Zero, Zero, 5), EBREAK()), 100)

		Expect(core.Reg(0)).To(Equal(uint32(0)))
	})

	It("should halt on an illegal instruction", func() {
		run(Program(uint32(0xFFFFFFFF)), 100)

		Expect(core.Halted()).To(BeTrue())
		Expect(core.Ports().MemRead).To(BeFalse())
	})

	It("should store halfwords with read-modify-write", func() {
		mem.words[0x100] = 0xAABBCCDD
		run(Program(
			LI(A0, 0x1234),
			ADDI(T0, Zero, 0x100),
			SH(A0, T0, 0),
			LHU(A1, T0, 0),
			LH(A2, T0, 2),
			EBREAK(),
		), 500)

		Expect(mem.words[0x100]).To(Equal(uint32(0xAABB1234)))
		Expect(core.Reg(int(A1))).To(Equal(uint32(0x1234)))
	})

	It("should panic when evaluated after final", func() {
		core.Final()

		Expect(func() { core.Eval() }).To(Panic())
	})
})
