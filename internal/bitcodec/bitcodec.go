// Package bitcodec converts a UTF-8 message to and from the length-prefixed
// bit sequence carried in pixel LSBs.
package bitcodec

import (
	"errors"
	"fmt"

	"github.com/yyyoichi/bitstream-go"
)

const (
	// HeaderBits is the size of the big-endian payload byte-count prefix.
	HeaderBits = 16
	// MaxMessageBytes is the largest payload the 16-bit header can describe.
	MaxMessageBytes = 1<<HeaderBits - 1
)

var (
	ErrMessageTooLarge = errors.New("message too large")
	ErrEmptyMessage    = errors.New("message is empty")
)

// Encode converts message into its embedded bit sequence: a 16-bit big-endian
// payload byte count followed by the payload bytes, each byte MSB-first.
func Encode(message string) ([]bool, error) {
	payload := []byte(message)
	if len(payload) == 0 {
		return nil, ErrEmptyMessage
	}
	if len(payload) > MaxMessageBytes {
		return nil, fmt.Errorf("%w: %d bytes, maximum is %d", ErrMessageTooLarge, len(payload), MaxMessageBytes)
	}

	w := bitstream.NewBitWriter[uint64](0, 0)
	w.Write8(0, 8, uint8(len(payload)>>8))
	w.Write8(0, 8, uint8(len(payload)))
	for _, v := range payload {
		w.Write8(0, 8, v)
	}

	r := bitstream.NewBitReader(w.Data(), 0, 0)
	r.SetBits(w.Bits())
	bits := make([]bool, w.Bits())
	for i := range bits {
		bits[i], _ = r.ReadBitAt(i)
	}
	return bits, nil
}

// Header reads the payload byte count from the first HeaderBits bits,
// MSB-first.
func Header(bits []bool) int {
	length := 0
	for _, bit := range bits[:HeaderBits] {
		length <<= 1
		if bit {
			length |= 1
		}
	}
	return length
}

// Bytes packs bits, MSB-first per byte, into bytes. Trailing bits short of a
// full byte are padded with zeros.
func Bytes(bits []bool) []byte {
	n := len(bits)
	paddedLen := n
	if n%8 != 0 {
		paddedLen += 8 - (n % 8)
	}

	out := make([]byte, paddedLen/8)
	for i := range out {
		var v byte
		for j := 0; j < 8; j++ {
			if at := i*8 + j; at < n && bits[at] {
				v |= 1 << uint(7-j)
			}
		}
		out[i] = v
	}
	return out
}
