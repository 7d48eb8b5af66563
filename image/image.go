// Package image reads and writes program images: whitespace separated ASCII
// hexadecimal byte tokens loaded sequentially from address 0.
package image

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// A Diagnostic reports a token that could not be parsed as a byte.
type Diagnostic struct {
	Token string
	Index int
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("invalid hex value %q at token %d", d.Token, d.Index)
}

// ParseToken parses one byte token. A token is one or two hexadecimal digits,
// optionally prefixed with "0x" or "0X".
func ParseToken(tok string) (byte, bool) {
	digits := tok
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits = digits[2:]
	}

	if len(digits) == 0 || len(digits) > 2 {
		return 0, false
	}

	v, err := strconv.ParseUint(digits, 16, 8)
	if err != nil {
		return 0, false
	}

	return byte(v), true
}

// A Scanner walks the byte tokens of an image in file order.
type Scanner struct {
	words *bufio.Scanner
	index int
	value byte
	diag  func(Diagnostic)
	err   error
}

// NewScanner creates a Scanner over r. Malformed tokens are skipped and
// reported to onInvalid, which may be nil.
func NewScanner(r io.Reader, onInvalid func(Diagnostic)) *Scanner {
	words := bufio.NewScanner(r)
	words.Split(bufio.ScanWords)

	return &Scanner{words: words, diag: onInvalid}
}

// Scan advances to the next valid byte. It returns false at the end of the
// input or on a read error.
func (s *Scanner) Scan() bool {
	for s.words.Scan() {
		tok := s.words.Text()
		s.index++

		v, ok := ParseToken(tok)
		if !ok {
			if s.diag != nil {
				s.diag(Diagnostic{Token: tok, Index: s.index})
			}

			continue
		}

		s.value = v

		return true
	}

	s.err = s.words.Err()

	return false
}

// Byte returns the byte produced by the last successful Scan.
func (s *Scanner) Byte() byte {
	return s.value
}

// Err returns the first read error encountered.
func (s *Scanner) Err() error {
	return s.err
}

// ReadAll returns every valid byte of an image.
func ReadAll(r io.Reader, onInvalid func(Diagnostic)) ([]byte, error) {
	var data []byte

	s := NewScanner(r, onInvalid)
	for s.Scan() {
		data = append(data, s.Byte())
	}

	return data, s.Err()
}
