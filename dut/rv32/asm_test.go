package rv32

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Encoder", func() {
	DescribeTable("instructions",
		func(got, want uint32) {
			Expect(got).To(Equal(want))
		},
		Entry("addi a0, zero, 5", ADDI(A0, Zero, 5), uint32(0x00500513)),
		Entry("lui t0, 0xdead0", LUI(T0, 0xDEAD0000), uint32(0xDEAD02B7)),
		Entry("sw t1, 0(t0)", SW(T1, T0, 0), uint32(0x0062A023)),
		Entry("j .", JAL(Zero, 0), uint32(0x0000006F)),
		Entry("beq zero, zero, -4", BEQ(Zero, Zero, -4), uint32(0xFE000EE3)),
		Entry("ecall", ECALL(), uint32(0x00000073)),
		Entry("ebreak", EBREAK(), uint32(0x00100073)),
		Entry("add a0, a1, a2", ADD(A0, A1, A2), uint32(0x00C58533)),
		Entry("sub a0, a1, a2", SUB(A0, A1, A2), uint32(0x40C58533)),
		Entry("lw a0, 8(sp)", LW(A0, SP, 8), uint32(0x00812503)),
		Entry("jal ra, 8", JAL(RA, 8), uint32(0x008000EF)),
		Entry("rdcycle a0", RDCYCLE(A0), uint32(0xC0002573)),
	)

	It("should decode what it encodes", func() {
		Expect(immI(ADDI(A0, Zero, -7))).To(Equal(uint32(0xFFFFFFF9)))
		Expect(immS(SW(A0, SP, -12))).To(Equal(uint32(0xFFFFFFF4)))
		Expect(immB(BNE(A0, A1, -2048))).To(Equal(uint32(0xFFFFF800)))
		Expect(immJ(JAL(Zero, 0x7FE))).To(Equal(uint32(0x7FE)))
		Expect(immJ(JAL(Zero, -0x100000))).To(Equal(uint32(0xFFF00000)))
	})

	DescribeTable("LI",
		func(v uint32, n int) {
			seq := LI(A0, v)
			Expect(seq).To(HaveLen(n))

			var got uint32
			for _, ins := range seq {
				switch ins & 0x7F {
				case opcodeLUI:
					got = immU(ins)
				case opcodeOpImm:
					got += immI(ins)
				}
			}
			Expect(got).To(Equal(v))
		},
		Entry("small", uint32(1), 1),
		Entry("all ones", uint32(0xFFFFFFFF), 1),
		Entry("upper only", uint32(0xDEAD0000), 1),
		Entry("rounded", uint32(0x12345FFF), 2),
	)

	It("should write a hex image", func() {
		buf := new(bytes.Buffer)

		Expect(WriteImage(buf, []uint32{0x00500513})).To(Succeed())
		Expect(buf.String()).To(Equal("13 05 50 00\n"))
	})
})
