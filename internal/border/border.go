// Package border computes the content fingerprint an image's position
// sequence is derived from. The fingerprint covers only the outermost
// one-pixel ring, so interior mutations never change it.
package border

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/yyyoichi/watermark_lsb/internal/pixel"
)

var ErrInvalidFingerprint = errors.New("invalid fingerprint")

// Fingerprint is the SHA-256 digest of an image's border pixels.
type Fingerprint [sha256.Size]byte

// Hex returns the 64-character hexadecimal form of the fingerprint.
func (f Fingerprint) Hex() string {
	return hex.EncodeToString(f[:])
}

// ParseHex converts a 64-character hexadecimal string back into a Fingerprint.
func ParseHex(s string) (Fingerprint, error) {
	var f Fingerprint
	b, err := hex.DecodeString(s)
	if err != nil {
		return f, fmt.Errorf("%w: %w", ErrInvalidFingerprint, err)
	}
	if len(b) != sha256.Size {
		return f, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidFingerprint, len(b), sha256.Size)
	}
	copy(f[:], b)
	return f, nil
}

// Hash digests the border ring of g. Bytes are fed in a fixed order: the full
// top row, the full bottom row, the left column excluding corners, then the
// right column excluding corners, each pixel contributing its channel bytes
// in channel order (blue, green, red). The caller guarantees g is at least
// 3x3 so a border/interior split exists.
func Hash(g pixel.Grid) Fingerprint {
	h := sha256.New()
	height, width := g.Height(), g.Width()

	row := make([]byte, width*pixel.Channels)
	for _, r := range []int{0, height - 1} {
		i := 0
		for col := range width {
			for ch := range pixel.Channels {
				row[i] = g.At(r, col, ch)
				i++
			}
		}
		_, _ = h.Write(row)
	}

	col := make([]byte, (height-2)*pixel.Channels)
	for _, c := range []int{0, width - 1} {
		i := 0
		for r := 1; r < height-1; r++ {
			for ch := range pixel.Channels {
				col[i] = g.At(r, c, ch)
				i++
			}
		}
		_, _ = h.Write(col)
	}

	var f Fingerprint
	copy(f[:], h.Sum(nil))
	return f
}
