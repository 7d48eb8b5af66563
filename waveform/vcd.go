package waveform

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sarchlab/cosim/cosim"
)

// VCDWriter writes the ports of a core as a Value Change Dump. Only the
// signals that changed since the previous sample are written.
type VCDWriter struct {
	ports     *cosim.Ports
	w         *bufio.Writer
	closer    io.Closer
	timescale string
	module    string

	last    []uint64
	started bool
	err     error
}

// NewVCDWriter creates a writer that samples ports into w. If w is an
// io.Closer, it is closed by Close.
func NewVCDWriter(w io.Writer, ports *cosim.Ports) *VCDWriter {
	v := &VCDWriter{
		ports:     ports,
		w:         bufio.NewWriter(w),
		timescale: "1ns",
		module:    "top",
		last:      make([]uint64, len(portSignals)),
	}

	if c, ok := w.(io.Closer); ok {
		v.closer = c
	}

	return v
}

// CreateVCDFile creates the file at path, including missing directories, and
// returns a writer into it.
func CreateVCDFile(path string, ports *cosim.Ports) (*VCDWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	return NewVCDWriter(f, ports), nil
}

// WithTimescale sets the unit of one timestamp. It must be called before the
// first Dump.
func (v *VCDWriter) WithTimescale(ts string) *VCDWriter {
	v.timescale = ts
	return v
}

// WithModule sets the scope name of the signals.
func (v *VCDWriter) WithModule(name string) *VCDWriter {
	v.module = name
	return v
}

func identifier(i int) string {
	const first, count = '!', '~' - '!' + 1

	id := ""
	for {
		id += string(rune(first + i%count))
		i /= count
		if i == 0 {
			return id
		}
		i--
	}
}

func (v *VCDWriter) printf(format string, args ...any) {
	if v.err != nil {
		return
	}

	_, v.err = fmt.Fprintf(v.w, format, args...)
}

func (v *VCDWriter) header() {
	v.printf("$version cosim $end\n")
	v.printf("$timescale %s $end\n", v.timescale)
	v.printf("$scope module %s $end\n", v.module)

	for i, s := range portSignals {
		v.printf("$var wire %d %s %s $end\n", s.width, identifier(i), s.name)
	}

	v.printf("$upscope $end\n")
	v.printf("$enddefinitions $end\n")
}

func (v *VCDWriter) value(i int, s signal, x uint64) {
	if s.width == 1 {
		v.printf("%d%s\n", x, identifier(i))
		return
	}

	v.printf("b%s %s\n", strconv.FormatUint(x, 2), identifier(i))
}

// Dump records the ports at the given time.
func (v *VCDWriter) Dump(time uint64) {
	if !v.started {
		v.started = true
		v.header()
		v.printf("#%d\n$dumpvars\n", time)

		for i, s := range portSignals {
			v.last[i] = s.value(v.ports)
			v.value(i, s, v.last[i])
		}

		v.printf("$end\n")

		return
	}

	stamped := false
	for i, s := range portSignals {
		x := s.value(v.ports)
		if x == v.last[i] {
			continue
		}

		if !stamped {
			v.printf("#%d\n", time)
			stamped = true
		}

		v.last[i] = x
		v.value(i, s, x)
	}
}

// Close flushes the dump. It returns the first error met while writing.
func (v *VCDWriter) Close() error {
	if err := v.w.Flush(); err != nil && v.err == nil {
		v.err = err
	}

	if v.closer != nil {
		if err := v.closer.Close(); err != nil && v.err == nil {
			v.err = err
		}
	}

	return v.err
}
