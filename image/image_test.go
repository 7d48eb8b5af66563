package image

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseToken", func() {
	DescribeTable("valid tokens",
		func(tok string, expected byte) {
			v, ok := ParseToken(tok)
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal(expected))
		},
		Entry("two digits", "EF", byte(0xEF)),
		Entry("lower case", "be", byte(0xBE)),
		Entry("one digit", "7", byte(0x07)),
		Entry("prefixed", "0xAD", byte(0xAD)),
		Entry("upper prefix", "0XDE", byte(0xDE)),
	)

	DescribeTable("invalid tokens",
		func(tok string) {
			_, ok := ParseToken(tok)
			Expect(ok).To(BeFalse())
		},
		Entry("not hex", "zz"),
		Entry("too long", "ABC"),
		Entry("bare prefix", "0x"),
		Entry("negative", "-1"),
	)
})

var _ = Describe("Scanner", func() {
	It("should read bytes in file order across lines", func() {
		data, err := ReadAll(strings.NewReader("EF BE\n\tAD  DE\n"), nil)

		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(Equal([]byte{0xEF, 0xBE, 0xAD, 0xDE}))
	})

	It("should skip malformed tokens and report them", func() {
		var diags []Diagnostic

		data, err := ReadAll(strings.NewReader("01 xyz 02"),
			func(d Diagnostic) { diags = append(diags, d) })

		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(Equal([]byte{0x01, 0x02}))
		Expect(diags).To(HaveLen(1))
		Expect(diags[0].Token).To(Equal("xyz"))
		Expect(diags[0].Index).To(Equal(2))
		Expect(diags[0].String()).To(ContainSubstring("xyz"))
	})
})

var _ = Describe("Conversion", func() {
	It("should write readmemh words in little-endian order", func() {
		buf := new(bytes.Buffer)

		n, err := WriteReadmemh(buf, []byte{0xEF, 0xBE, 0xAD, 0xDE, 0x01})

		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(2))
		Expect(buf.String()).To(Equal("@00000000\nDEADBEEF\n00000001\n"))
	})

	It("should pad to the address width", func() {
		Expect(Pad([]byte{1, 2}, 3)).To(Equal([]byte{1, 2, 0, 0, 0, 0, 0, 0}))
		Expect(Pad([]byte{1, 2, 3}, 1)).To(Equal([]byte{1, 2, 3}))
	})

	It("should write tokens back", func() {
		buf := new(bytes.Buffer)

		Expect(Write(buf, []byte{0x0A, 0xFF})).To(Succeed())
		Expect(buf.String()).To(Equal("0A FF\n"))
	})
})
