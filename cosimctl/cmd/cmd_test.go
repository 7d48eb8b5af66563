package cmd

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cosim/dut/rv32"
	"github.com/sarchlab/cosim/harness"
)

func execute(args ...string) (string, error) {
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(GinkgoWriter)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	return out.String(), err
}

func writeProgram(path string, program []uint32) {
	f, err := os.Create(path)
	Expect(err).NotTo(HaveOccurred())
	defer f.Close()

	Expect(rv32.WriteImage(f, program)).To(Succeed())
}

var _ = Describe("Image commands", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("should convert an image to readmemh", func() {
		in := filepath.Join(dir, "p.ini")
		out := filepath.Join(dir, "p.hex")
		Expect(os.WriteFile(in, []byte("13 00 00 00 zz 6F"), 0o644)).To(Succeed())

		msg, err := execute("ini2hex", in, out)

		Expect(err).NotTo(HaveOccurred())
		Expect(msg).To(ContainSubstring("Converted 5 bytes (2 words)"))

		data, err := os.ReadFile(out)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal("@00000000\n00000013\n0000006F\n"))
	})

	It("should pad an image", func() {
		in := filepath.Join(dir, "p.ini")
		out := filepath.Join(dir, "padded.ini")
		Expect(os.WriteFile(in, []byte("01 02\n03"), 0o644)).To(Succeed())

		_, err := execute("pad", "--addr-width", "3", in, out)

		Expect(err).NotTo(HaveOccurred())

		data, err := os.ReadFile(out)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal("01 02 03 00 00 00 00 00\n"))
	})

	It("should report a missing input", func() {
		_, err := execute("ini2hex", filepath.Join(dir, "none.ini"),
			filepath.Join(dir, "out.hex"))

		Expect(err).To(HaveOccurred())
	})

	It("should dump memory", func() {
		in := filepath.Join(dir, "p.ini")
		Expect(os.WriteFile(in, []byte("41 42 43"), 0o644)).To(Succeed())

		msg, err := execute("dump", "--start", "0", "--end", "16", in)

		Expect(err).NotTo(HaveOccurred())
		Expect(msg).To(ContainSubstring("Memory dump [0x0 - 0x10]"))
		Expect(msg).To(ContainSubstring("0x00000000: 41 42 43 00"))
		Expect(msg).To(ContainSubstring("|ABC.............|"))
	})

	It("should list the programs", func() {
		GinkgoT().Setenv(harness.WorkspaceEnv, "/work")

		msg, err := execute("list")

		Expect(err).NotTo(HaveOccurred())
		Expect(msg).To(ContainSubstring("NAME"))
		Expect(msg).To(ContainSubstring("/work/test/gcd/gcd.ini"))
	})
})

var _ = Describe("Run", func() {
	var (
		dir  string
		opts runOptions
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		opts = runOptions{
			latency:     4,
			capacity:    1 << 20,
			sampleEvery: 2,
		}

		writeProgram(filepath.Join(dir, "pass.ini"), rv32.Program(
			rv32.LI(rv32.T0, 0xDEAD0000),
			rv32.LI(rv32.T1, 1),
			rv32.SW(rv32.T1, rv32.T0, 0),
			rv32.JAL(rv32.Zero, 0),
		))
	})

	It("should require a program", func() {
		_, err := runProgram(opts, nil)

		Expect(err).To(MatchError(errNoProgram))
	})

	It("should resolve registered programs", func() {
		GinkgoT().Setenv(harness.WorkspaceEnv, "/work")
		opts.program = "gcd"

		path, program, budget, err := resolveProgram(opts, nil)

		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(Equal("/work/test/gcd/gcd.ini"))
		Expect(program.MinCycles).To(Equal(uint64(100)))
		Expect(budget).To(Equal(uint64(100000)))
	})

	It("should let the budget override the timeout", func() {
		opts.program = "add"
		opts.maxCycles = 7

		_, _, budget, err := resolveProgram(opts, nil)

		Expect(err).NotTo(HaveOccurred())
		Expect(budget).To(Equal(uint64(7)))
	})

	It("should run an image", func() {
		outcome, err := runProgram(opts, []string{filepath.Join(dir, "pass.ini")})

		Expect(err).NotTo(HaveOccurred())
		Expect(outcome).To(Equal(harness.OutcomePass))
	})

	It("should time out on a tight budget", func() {
		opts.maxCycles = 3

		outcome, err := runProgram(opts, []string{filepath.Join(dir, "pass.ini")})

		Expect(err).NotTo(HaveOccurred())
		Expect(outcome).To(Equal(harness.OutcomeTimeout))
	})

	It("should write a waveform and a recording", func() {
		opts.vcd = filepath.Join(dir, "run.vcd")
		opts.record = filepath.Join(dir, "run")

		outcome, err := runProgram(opts, []string{filepath.Join(dir, "pass.ini")})

		Expect(err).NotTo(HaveOccurred())
		Expect(outcome).To(Equal(harness.OutcomePass))

		vcd, err := os.ReadFile(opts.vcd)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(vcd)).To(ContainSubstring("$enddefinitions $end"))
		Expect(filepath.Join(dir, "run.sqlite3")).To(BeARegularFile())
	})

	It("should report a missing image", func() {
		_, err := runProgram(opts, []string{filepath.Join(dir, "none.ini")})

		Expect(err).To(HaveOccurred())
	})
})
