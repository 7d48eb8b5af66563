package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Freq", func() {
	It("should get period", func() {
		var f = 1 * GHz
		Expect(f.Period()).To(BeNumerically("==", 1e-9))
	})

	It("should get half period", func() {
		var f = 100 * MHz
		Expect(f.HalfPeriod()).To(BeNumerically("~", 5e-9, 1e-15))
	})

	It("should count cycles", func() {
		var f = 1 * GHz
		Expect(f.Cycle(12e-9)).To(Equal(uint64(12)))
	})

	It("should convert half periods to time", func() {
		var f = 1 * GHz
		Expect(f.HalfPeriodsToTime(0)).To(BeNumerically("==", 0))
		Expect(f.HalfPeriodsToTime(3)).To(BeNumerically("~", 1.5e-9, 1e-15))
	})

	It("should panic on zero frequency", func() {
		var f Freq
		Expect(func() { f.Period() }).To(Panic())
	})
})
