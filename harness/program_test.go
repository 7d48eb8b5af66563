package harness

import (
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cosim/dut/rv32"
)

func passProgram() []uint32 {
	return rv32.Program(
		rv32.LI(rv32.T0, 0xDEAD0000),
		rv32.LI(rv32.T1, 1),
		rv32.SW(rv32.T1, rv32.T0, 0),
		rv32.JAL(rv32.Zero, 0),
	)
}

var _ = Describe("Program registry", func() {
	It("should resolve programs under the workspace", func() {
		GinkgoT().Setenv(WorkspaceEnv, "/work")

		Expect(ProgramPath("gcd")).To(Equal("/work/test/gcd/gcd.ini"))
	})

	It("should fall back to the current directory", func() {
		GinkgoT().Setenv(WorkspaceEnv, "")

		Expect(ProgramPath("add")).To(Equal("test/add/add.ini"))
	})

	It("should know the standard programs", func() {
		p, ok := LookupProgram("gcd")

		Expect(ok).To(BeTrue())
		Expect(p.TimeoutCycles).To(Equal(uint64(100000)))
		Expect(ProgramNames()).To(ContainElements("add", "subtract", "prime"))
	})

	It("should check cycle bounds", func() {
		p := Program{Name: "x", MinCycles: 10, MaxCycles: 100}

		Expect(p.CheckCycles(50)).To(Succeed())
		Expect(errors.Is(p.CheckCycles(5), ErrTooFewCycles)).To(BeTrue())
		Expect(errors.Is(p.CheckCycles(100), ErrTooManyCycles)).To(BeTrue())
	})

	It("should run a registered program from the workspace", func() {
		workspace := GinkgoT().TempDir()
		GinkgoT().Setenv(WorkspaceEnv, workspace)

		dir := filepath.Join(workspace, "test", "smoke")
		Expect(os.MkdirAll(dir, 0o755)).To(Succeed())
		f, err := os.Create(filepath.Join(dir, "smoke.ini"))
		Expect(err).NotTo(HaveOccurred())
		Expect(rv32.WriteImage(f, passProgram())).To(Succeed())
		Expect(f.Close()).To(Succeed())

		p := Program{Name: "smoke", MinCycles: 1, MaxCycles: 1000, TimeoutCycles: 10000}
		RegisterProgram(p)

		runner, err := MakeBuilder().
			WithDUT(rv32.New()).
			WithLogOutput(GinkgoWriter).
			Build("smoke")
		Expect(err).NotTo(HaveOccurred())

		result, err := runner.RunProgram(p)

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Outcome).To(Equal(OutcomePass))
		Expect(p.CheckCycles(result.Cycles)).To(Succeed())
	})

	It("should report a missing program file", func() {
		GinkgoT().Setenv(WorkspaceEnv, GinkgoT().TempDir())

		runner, err := MakeBuilder().
			WithDUT(rv32.New()).
			WithLogOutput(GinkgoWriter).
			Build("missing")
		Expect(err).NotTo(HaveOccurred())

		_, err = runner.RunProgram(Program{Name: "missing", TimeoutCycles: 10})
		Expect(err).To(HaveOccurred())
	})
})
