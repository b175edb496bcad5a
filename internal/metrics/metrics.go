// Package metrics measures how much an embedding distorted an image.
package metrics

import (
	"errors"
	"fmt"
	"image"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/yyyoichi/watermark_lsb/internal/pixel"
)

var ErrSizeMismatch = errors.New("image dimensions do not match")

// MSE returns the mean squared error over all color channel bytes of two
// images of identical dimensions.
func MSE(a, b image.Image) (float64, error) {
	ga, gb := pixel.FromImage(a), pixel.FromImage(b)
	if ga.Width() != gb.Width() || ga.Height() != gb.Height() {
		return 0, fmt.Errorf("%w: %dx%d vs %dx%d",
			ErrSizeMismatch, ga.Width(), ga.Height(), gb.Width(), gb.Height())
	}

	diffs := make([]float64, 0, ga.Width()*ga.Height()*pixel.Channels)
	for row := range ga.Height() {
		for col := range ga.Width() {
			for ch := range pixel.Channels {
				d := float64(ga.At(row, col, ch)) - float64(gb.At(row, col, ch))
				diffs = append(diffs, d*d)
			}
		}
	}
	return stat.Mean(diffs, nil), nil
}

// PSNR returns the peak signal-to-noise ratio in decibels between two images
// of identical dimensions. Identical images yield +Inf.
func PSNR(a, b image.Image) (float64, error) {
	mse, err := MSE(a, b)
	if err != nil {
		return 0, err
	}
	if mse == 0 {
		return math.Inf(1), nil
	}
	return 10 * math.Log10(255*255/mse), nil
}
