// Package position expands a border fingerprint into a deterministic,
// non-repeating sequence of interior pixel coordinates.
package position

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"

	"github.com/yyyoichi/watermark_lsb/internal/border"
)

var ErrCapacity = errors.New("not enough interior pixels")

// Point is an interior pixel coordinate, row 0 at the top of the image.
type Point struct {
	Row, Col int
}

// Generate returns the first count coordinates of a seeded permutation of
// ALL interior pixels of a height x width image. The permutation is rebuilt
// from scratch on every call: a call with a larger count yields the same
// leading coordinates as a smaller one only because the full-list shuffle is
// deterministic for a given fingerprint, never through incremental extension.
func Generate(fp border.Fingerprint, height, width, count int) ([]Point, error) {
	capacity := (height - 2) * (width - 2)
	if count > capacity {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrCapacity, count, capacity)
	}

	// Canonical pre-shuffle ordering: row-major over the interior ring,
	// row outer, column inner.
	points := make([]Point, 0, capacity)
	for row := 1; row < height-1; row++ {
		for col := 1; col < width-1; col++ {
			points = append(points, Point{Row: row, Col: col})
		}
	}

	rd := rand.New(rand.NewSource(seed(fp)))
	rd.Shuffle(len(points), func(i, j int) {
		points[i], points[j] = points[j], points[i]
	})
	return points[:count], nil
}

// seed reduces the fingerprint, taken as a big-endian integer, modulo 2^32,
// which keeps exactly its low four bytes.
func seed(fp border.Fingerprint) int64 {
	return int64(binary.BigEndian.Uint32(fp[len(fp)-4:]))
}
