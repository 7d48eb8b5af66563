package store

import (
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/cosim/image"
)

// LoadHex loads a program image from r into the store, starting at address 0.
// Malformed tokens are skipped with a diagnostic. If the image does not fit,
// loading stops at the first byte beyond the capacity and ErrImageTooLarge is
// returned; the bytes already written are kept.
func (s *Store) LoadHex(r io.Reader) error {
	scanner := image.NewScanner(r, func(d image.Diagnostic) {
		s.logger.Printf("WARNING: %s", d)
	})

	addr := uint64(0)
	for scanner.Scan() {
		if addr >= uint64(len(s.data)) {
			s.logger.Printf("WARNING: File exceeds memory size at byte %d", addr)
			return fmt.Errorf("%w: at byte %d", ErrImageTooLarge, addr)
		}

		s.data[addr] = scanner.Byte()
		addr++
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	s.logger.Printf("Loaded %d bytes", addr)

	return nil
}

// LoadHexFile loads a program image from a file.
func (s *Store) LoadHexFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open file %s: %w", path, err)
	}
	defer f.Close()

	return s.LoadHex(f)
}
