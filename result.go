package watermark

import (
	"encoding/hex"
	"fmt"
)

type resultKind int

const (
	kindOK resultKind = iota
	kindInvalidLength
	kindDecodeFailure
)

// diagDumpBytes caps how much of an undecodable payload the diagnostic shows.
const diagDumpBytes = 32

// Result is the outcome of an extraction. Hard failures travel the error
// channel; Result carries the soft conditions extraction must survive
// without crashing: a corrupt length header, or payload bytes that are not
// valid UTF-8. Exactly one of OK, InvalidLength, DecodeFailure reports true.
type Result struct {
	kind    resultKind
	length  int
	payload []byte
}

func okResult(length int, payload []byte) Result {
	return Result{kind: kindOK, length: length, payload: payload}
}

func invalidLength(length int) Result {
	return Result{kind: kindInvalidLength, length: length}
}

func decodeFailure(length int, payload []byte) Result {
	return Result{kind: kindDecodeFailure, length: length, payload: payload}
}

// OK reports whether extraction recovered a valid UTF-8 message.
func (r Result) OK() bool { return r.kind == kindOK }

// InvalidLength reports whether the extracted length header was out of
// range, the usual signature of a non-watermarked image.
func (r Result) InvalidLength() bool { return r.kind == kindInvalidLength }

// DecodeFailure reports whether the recovered payload was not valid UTF-8.
func (r Result) DecodeFailure() bool { return r.kind == kindDecodeFailure }

// Message returns the recovered message, or "" unless OK.
func (r Result) Message() string {
	if r.kind != kindOK {
		return ""
	}
	return string(r.payload)
}

// Length returns the payload byte count read from the header.
func (r Result) Length() int { return r.length }

// Bytes returns the recovered payload bytes, valid UTF-8 or not.
func (r Result) Bytes() []byte { return r.payload }

// String returns the message when extraction succeeded, and a one-line
// diagnostic otherwise. The decode-failure diagnostic includes a hex dump of
// the leading recovered bytes.
func (r Result) String() string {
	switch r.kind {
	case kindInvalidLength:
		return fmt.Sprintf("Error: Invalid message length detected: %d", r.length)
	case kindDecodeFailure:
		dump := r.payload
		if len(dump) > diagDumpBytes {
			dump = dump[:diagDumpBytes]
		}
		return fmt.Sprintf("Error: Could not decode message as UTF-8. First %d bytes in hex: %s...",
			len(dump), hex.EncodeToString(dump))
	default:
		return string(r.payload)
	}
}
