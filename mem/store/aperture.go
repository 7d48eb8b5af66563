package store

// ApertureSize is the number of bytes reserved at the top of the store for
// the result aperture.
const ApertureSize = 65536

// DefaultAperturePrefix is the external address of the first aperture byte.
const DefaultAperturePrefix uint32 = 0xDEAD0000

const apertureMask uint32 = 0xFFFF0000

// An Aperture remaps a 64 KiB external window, selected by the upper 16 bits
// of the address, into the top of the store.
type Aperture struct {
	Prefix uint32
}

// DefaultAperture returns the 0xDEADxxxx aperture.
func DefaultAperture() Aperture {
	return Aperture{Prefix: DefaultAperturePrefix}
}

// Contains tells whether an external address falls in the aperture.
func (a Aperture) Contains(addr uint32) bool {
	return addr&apertureMask == a.Prefix&apertureMask
}

// Translate converts an external address to a physical one. Addresses outside
// the aperture are returned unchanged.
func (s *Store) Translate(addr uint32) (phys uint32, inAperture bool) {
	if !s.aperture.Contains(addr) {
		return addr, false
	}

	return s.Size() - ApertureSize + addr&^apertureMask, true
}
