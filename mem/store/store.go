// Package store provides the flat byte-addressable memory behind the timing
// model. All multi-byte accesses are little-endian.
package store

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
)

// ErrorPattern is returned by word reads that fall outside the store.
const ErrorPattern uint32 = 0xDEADBEEF

// ErrorByte is returned by byte reads that fall outside the store.
const ErrorByte uint8 = 0xFF

var (
	// ErrOutOfRange is returned when an access touches a byte beyond the
	// store capacity.
	ErrOutOfRange = errors.New("address out of range")

	// ErrCapacityTooSmall is returned when the capacity cannot hold the
	// result aperture.
	ErrCapacityTooSmall = errors.New("capacity smaller than the result aperture")

	// ErrImageTooLarge is returned when a program image does not fit.
	ErrImageTooLarge = errors.New("image exceeds memory size")
)

// Stats counts the accesses performed through the timing model.
type Stats struct {
	Reads  uint64
	Writes uint64
}

// A Store keeps the bytes of the simulated memory.
type Store struct {
	data     []byte
	aperture Aperture
	stats    Stats
	logger   *log.Logger
}

// New creates a zero-filled store with the given capacity in bytes, using the
// default result aperture.
func New(capacity uint32) (*Store, error) {
	return NewWithAperture(capacity, DefaultAperture())
}

// NewWithAperture creates a store that remaps the given aperture into its top
// 64 KiB.
func NewWithAperture(capacity uint32, aperture Aperture) (*Store, error) {
	if capacity < ApertureSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrCapacityTooSmall, capacity)
	}

	s := &Store{
		data:     make([]byte, capacity),
		aperture: aperture,
		logger:   log.New(os.Stderr, "[MEM] ", 0),
	}

	return s, nil
}

// SetLogger replaces the logger that receives load diagnostics.
func (s *Store) SetLogger(logger *log.Logger) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	s.logger = logger
}

// Size returns the capacity in bytes.
func (s *Store) Size() uint32 {
	return uint32(len(s.data))
}

// Aperture returns the result aperture of the store.
func (s *Store) Aperture() Aperture {
	return s.aperture
}

func (s *Store) wordInRange(phys uint32) bool {
	return uint64(phys)+3 < uint64(len(s.data))
}

// LoadWord reads a little-endian word at a physical address. No aperture
// remapping is applied.
func (s *Store) LoadWord(phys uint32) (uint32, error) {
	if !s.wordInRange(phys) {
		return ErrorPattern, fmt.Errorf("%w: 0x%08x", ErrOutOfRange, phys)
	}

	return uint32(s.data[phys]) |
		uint32(s.data[phys+1])<<8 |
		uint32(s.data[phys+2])<<16 |
		uint32(s.data[phys+3])<<24, nil
}

// StoreWord writes a little-endian word at a physical address. A word that
// does not fit entirely is not written at all.
func (s *Store) StoreWord(phys uint32, value uint32) error {
	if !s.wordInRange(phys) {
		return fmt.Errorf("%w: 0x%08x", ErrOutOfRange, phys)
	}

	s.data[phys] = byte(value)
	s.data[phys+1] = byte(value >> 8)
	s.data[phys+2] = byte(value >> 16)
	s.data[phys+3] = byte(value >> 24)

	return nil
}

// ReadWord is the backdoor word read. Aperture addresses are remapped; an out
// of range read returns ErrorPattern.
func (s *Store) ReadWord(addr uint32) uint32 {
	phys, _ := s.Translate(addr)

	v, err := s.LoadWord(phys)
	if err != nil {
		return ErrorPattern
	}

	return v
}

// WriteWord is the backdoor word write. Aperture addresses are remapped; an
// out of range write is dropped.
func (s *Store) WriteWord(addr uint32, value uint32) {
	phys, _ := s.Translate(addr)
	_ = s.StoreWord(phys, value)
}

// ReadByteAt is the backdoor byte read. An out of range read returns ErrorByte.
func (s *Store) ReadByteAt(addr uint32) uint8 {
	phys, _ := s.Translate(addr)
	if uint64(phys) >= uint64(len(s.data)) {
		return ErrorByte
	}

	return s.data[phys]
}

// WriteByteAt is the backdoor byte write. An out of range write is a no-op.
func (s *Store) WriteByteAt(addr uint32, value uint8) {
	phys, _ := s.Translate(addr)
	if uint64(phys) >= uint64(len(s.data)) {
		return
	}

	s.data[phys] = value
}

// Clear zero-fills the store and resets the access counters. It must only be
// called between independent runs.
func (s *Store) Clear() {
	clear(s.data)
	s.ResetStatistics()
}

// Stats returns the access counters.
func (s *Store) Stats() Stats {
	return s.stats
}

// RecordRead counts one completed timed read.
func (s *Store) RecordRead() {
	s.stats.Reads++
}

// RecordWrite counts one completed timed write.
func (s *Store) RecordWrite() {
	s.stats.Writes++
}

// ResetStatistics zeroes the access counters.
func (s *Store) ResetStatistics() {
	s.stats = Stats{}
}
