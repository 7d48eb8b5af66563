package image

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteReadmemh writes data in $readmemh format: an @00000000 address
// directive followed by one little-endian 32-bit word per line. The data is
// padded with zeros to a word boundary. It returns the number of words written.
func WriteReadmemh(w io.Writer, data []byte) (int, error) {
	data = append([]byte(nil), data...)
	for len(data)%4 != 0 {
		data = append(data, 0)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "@%08X\n", 0)

	n := 0
	for i := 0; i < len(data); i += 4 {
		word := uint32(data[i]) |
			uint32(data[i+1])<<8 |
			uint32(data[i+2])<<16 |
			uint32(data[i+3])<<24
		fmt.Fprintf(bw, "%08X\n", word)
		n++
	}

	return n, bw.Flush()
}

// Pad extends data with zero bytes until it fills 2^addrWidth bytes. Data that
// is already at least that long is returned unchanged.
func Pad(data []byte, addrWidth uint) []byte {
	size := 1 << addrWidth
	data = append([]byte(nil), data...)
	for len(data) < size {
		data = append(data, 0)
	}

	return data
}

// Write writes data as space separated two digit hex tokens on one line.
func Write(w io.Writer, data []byte) error {
	tokens := make([]string, len(data))
	for i, b := range data {
		tokens[i] = fmt.Sprintf("%02X", b)
	}

	_, err := io.WriteString(w, strings.Join(tokens, " ")+"\n")

	return err
}
