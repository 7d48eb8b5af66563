package store

import (
	"bufio"
	"fmt"
	"io"
)

// Dump writes the bytes in [start, end) as 16 byte lines of hex followed by
// their printable ASCII form. Physical addresses are used.
func (s *Store) Dump(w io.Writer, start, end uint32) error {
	if uint64(end) > uint64(len(s.data)) {
		end = s.Size()
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Memory dump [0x%x - 0x%x]:\n", start, end)

	for addr := uint64(start); addr < uint64(end); addr += 16 {
		lineEnd := addr + 16
		if lineEnd > uint64(end) {
			lineEnd = uint64(end)
		}

		line := s.data[addr:lineEnd]

		fmt.Fprintf(bw, "0x%08x: ", addr)
		for _, b := range line {
			fmt.Fprintf(bw, "%02x ", b)
		}

		fmt.Fprint(bw, " |")
		for _, b := range line {
			if b >= 0x20 && b < 0x7F {
				bw.WriteByte(b)
			} else {
				bw.WriteByte('.')
			}
		}
		fmt.Fprint(bw, "|\n")
	}

	return bw.Flush()
}
