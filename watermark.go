// Package watermark hides a variable-length UTF-8 message inside a raster
// image by perturbing the least-significant bit of one color channel at a
// deterministic set of interior pixel positions.
//
// The positions are derived from a SHA-256 fingerprint of the image's own
// one-pixel border ring: the fingerprint seeds a shuffle of all interior
// coordinates, and the message bits land on the leading coordinates of that
// permutation. Embedding never touches the border, so extraction recomputes
// the identical fingerprint and replays the identical permutation.
package watermark

import (
	"context"
	"errors"
	"fmt"
	"image"
	"unicode/utf8"

	"github.com/yyyoichi/watermark_lsb/internal/bitcodec"
	"github.com/yyyoichi/watermark_lsb/internal/border"
	"github.com/yyyoichi/watermark_lsb/internal/pixel"
	"github.com/yyyoichi/watermark_lsb/internal/position"
)

var (
	// ErrTooSmallImage is returned when the image is smaller than 3x3 and no
	// border/interior split exists, or when it cannot hold even the length
	// header.
	ErrTooSmallImage = errors.New("image is too small for embedding or extracting")
	// ErrCapacity is returned when the message needs more bits than the
	// image has interior pixels.
	ErrCapacity = errors.New("message exceeds image capacity")
	// ErrMessageTooLarge is returned when the message payload exceeds the
	// 65535 bytes the length header can describe.
	ErrMessageTooLarge = bitcodec.ErrMessageTooLarge
	// ErrEmptyMessage is returned when the message is empty; a zero length
	// header is indistinguishable from a non-watermarked image on extract.
	ErrEmptyMessage = bitcodec.ErrEmptyMessage
)

// minSide is the smallest image side with at least one interior pixel.
const minSide = 3

// Embed embeds a message into an image with the specified options and
// returns the watermarked image together with the number of bits written.
// This is a convenience function that creates a Watermark instance and calls
// its Embed method.
func Embed(ctx context.Context, src image.Image, message string, opts ...Option) (image.Image, int, error) {
	w, err := New(opts...)
	if err != nil {
		return nil, 0, err
	}
	return w.Embed(ctx, src, message)
}

// Extract extracts a message from an image with the specified options.
// This is a convenience function that creates a Watermark instance and calls
// its Extract method.
func Extract(ctx context.Context, src image.Image, opts ...Option) (Result, error) {
	w, err := New(opts...)
	if err != nil {
		return Result{}, err
	}
	return w.Extract(ctx, src)
}

type Watermark struct {
	channel Channel
}

// New initializes a watermark processing structure. The carrier channel can
// be optionally specified; it defaults to blue.
func New(opts ...Option) (*Watermark, error) {
	w := new(Watermark)
	if err := w.init(opts...); err != nil {
		return nil, err
	}
	return w, nil
}

// Embed embeds a message into an image.
//
// Process:
//  1. Converts the image to a planar pixel grid.
//  2. Builds the full bit sequence: 16-bit big-endian byte count + payload.
//  3. Fingerprints the border ring with SHA-256.
//  4. Generates one interior position per bit from the fingerprint.
//  5. Writes each bit into the LSB of the carrier channel, in order.
//
// The source image is not modified. Size and capacity are validated before
// any bit is placed, so a failed call never produces a partial watermark.
// Persist the result in a lossless format; recompression that alters channel
// values destroys the embedded bits.
func (w *Watermark) Embed(ctx context.Context, src image.Image, message string) (image.Image, int, error) {
	bits, err := bitcodec.Encode(message)
	if err != nil {
		return nil, 0, err
	}

	g := pixel.FromImage(src)
	if g.Height() < minSide || g.Width() < minSide {
		return nil, 0, fmt.Errorf("%w: %dx%d", ErrTooSmallImage, g.Width(), g.Height())
	}

	fp := border.Hash(g)
	points, err := position.Generate(fp, g.Height(), g.Width(), len(bits))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrCapacity, err)
	}

	for i, pt := range points {
		g.SetLSB(pt.Row, pt.Col, int(w.channel), bits[i])
	}
	return g.Build(), len(bits), nil
}

// Extract extracts a message from a watermarked image.
//
// Process:
//  1. Fingerprints the border ring, which embedding left untouched.
//  2. Reads the 16 header bits from the leading positions of the permutation.
//  3. Regenerates the full position sequence for header + payload.
//  4. Reads the payload bits and decodes them as UTF-8.
//
// A corrupt length header or payload that is not valid UTF-8 is reported
// through the Result, not the error channel, so extraction from a
// non-watermarked image degrades to a readable diagnostic.
func (w *Watermark) Extract(ctx context.Context, src image.Image) (Result, error) {
	g := pixel.FromImage(src)
	if g.Height() < minSide || g.Width() < minSide {
		return Result{}, fmt.Errorf("%w: %dx%d", ErrTooSmallImage, g.Width(), g.Height())
	}

	fp := border.Hash(g)
	headPoints, err := position.Generate(fp, g.Height(), g.Width(), bitcodec.HeaderBits)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrTooSmallImage, err)
	}
	head := make([]bool, bitcodec.HeaderBits)
	for i, pt := range headPoints {
		head[i] = g.LSB(pt.Row, pt.Col, int(w.channel))
	}

	length := bitcodec.Header(head)
	if length == 0 || length > bitcodec.MaxMessageBytes {
		return invalidLength(length), nil
	}

	// The full permutation is regenerated from the same fingerprint; its
	// first 16 positions are the header positions read above.
	total := bitcodec.HeaderBits + length*8
	points, err := position.Generate(fp, g.Height(), g.Width(), total)
	if err != nil {
		// A genuine watermark never claims more bits than the interior
		// holds, so the header itself must be corrupt.
		return invalidLength(length), nil
	}

	bits := make([]bool, length*8)
	for i, pt := range points[bitcodec.HeaderBits:] {
		bits[i] = g.LSB(pt.Row, pt.Col, int(w.channel))
	}
	payload := bitcodec.Bytes(bits)
	if !utf8.Valid(payload) {
		return decodeFailure(length, payload), nil
	}
	return okResult(length, payload), nil
}

func (w *Watermark) init(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return err
		}
	}
	return nil
}
