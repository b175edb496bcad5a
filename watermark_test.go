package watermark_test

import (
	"context"
	"image"
	"image/color"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	watermark "github.com/yyyoichi/watermark_lsb"
	"github.com/yyyoichi/watermark_lsb/internal/border"
	"github.com/yyyoichi/watermark_lsb/internal/pixel"
)

func gradientImage(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 7), G: uint8(y * 5), B: uint8(x + y), A: 255,
			})
		}
	}
	return img
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	test := []struct {
		name    string
		message string
		side    int
	}{
		{"ascii", "Hello", 32},
		{"accented", "héllo wörld", 32},
		{"japanese", "日本語", 32},
		{"emoji", "🐣", 32},
		{"longer text", strings.Repeat("steganography ", 20), 64},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			marked, bits, err := watermark.Embed(ctx, gradientImage(tt.side, tt.side), tt.message)
			require.NoError(t, err)
			assert.Equal(t, 16+len(tt.message)*8, bits)

			result, err := watermark.Extract(ctx, marked)
			require.NoError(t, err)
			assert.True(t, result.OK(), "got %s", result)
			assert.Equal(t, tt.message, result.Message())
			assert.Equal(t, len(tt.message), result.Length())
		})
	}
}

func TestRoundTripConcreteScenario(t *testing.T) {
	// 10x10 all-black image: 8x8 = 64 interior pixels, "Hi" needs
	// 16 header + 16 payload = 32 bits.
	ctx := context.Background()
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.SetNRGBA(x, y, color.NRGBA{A: 255})
		}
	}

	marked, bits, err := watermark.Embed(ctx, img, "Hi")
	require.NoError(t, err)
	assert.Equal(t, 32, bits)

	result, err := watermark.Extract(ctx, marked)
	require.NoError(t, err)
	assert.Equal(t, "Hi", result.Message())
}

func TestRoundTripMaxMessage(t *testing.T) {
	// 65535 payload bytes need 16 + 65535*8 = 524296 interior pixels;
	// a 727x727 image has 725*725 = 525625.
	ctx := context.Background()
	message := strings.Repeat("x", 65535)

	marked, bits, err := watermark.Embed(ctx, gradientImage(727, 727), message)
	require.NoError(t, err)
	assert.Equal(t, 16+65535*8, bits)

	result, err := watermark.Extract(ctx, marked)
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, message, result.Message())
}

func TestEmbedErrors(t *testing.T) {
	ctx := context.Background()
	test := []struct {
		name    string
		img     image.Image
		message string
		wantErr error
	}{
		{"message too large", gradientImage(727, 727), strings.Repeat("x", 65536), watermark.ErrMessageTooLarge},
		{"empty message", gradientImage(32, 32), "", watermark.ErrEmptyMessage},
		{"image below minimum", gradientImage(2, 2), "Hi", watermark.ErrTooSmallImage},
		{"one past capacity", gradientImage(10, 10), "seven b", watermark.ErrCapacity},
		{"no interior capacity", gradientImage(3, 3), "a", watermark.ErrCapacity},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := watermark.Embed(ctx, tt.img, tt.message)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEmbedExactCapacity(t *testing.T) {
	// 10x10: 64 interior pixels, a 6-byte message is exactly 16+48 bits.
	marked, bits, err := watermark.Embed(context.Background(), gradientImage(10, 10), "sixby!")
	require.NoError(t, err)
	assert.Equal(t, 64, bits)

	result, err := watermark.Extract(context.Background(), marked)
	require.NoError(t, err)
	assert.Equal(t, "sixby!", result.Message())
}

func TestExtractErrors(t *testing.T) {
	ctx := context.Background()

	_, err := watermark.Extract(ctx, gradientImage(2, 3))
	assert.ErrorIs(t, err, watermark.ErrTooSmallImage)

	// 3x3 has a single interior pixel, not enough for the 16 header bits.
	_, err = watermark.Extract(ctx, gradientImage(3, 3))
	assert.ErrorIs(t, err, watermark.ErrTooSmallImage)
}

func TestExtractCorruptedImage(t *testing.T) {
	// Interior noise must degrade to a diagnostic, never a crash.
	rd := rand.New(rand.NewSource(99))
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(rd.Intn(256)), G: uint8(rd.Intn(256)), B: uint8(rd.Intn(256)), A: 255,
			})
		}
	}

	var result watermark.Result
	var err error
	assert.NotPanics(t, func() {
		result, err = watermark.Extract(context.Background(), img)
	})
	require.NoError(t, err)
	assert.False(t, result.OK())
	assert.True(t, result.InvalidLength() || result.DecodeFailure())
	assert.True(t, strings.HasPrefix(result.String(), "Error:"), "got %s", result)
}

func TestBorderInvariance(t *testing.T) {
	src := gradientImage(48, 48)
	before := border.Hash(pixel.FromImage(src))

	marked, _, err := watermark.Embed(context.Background(), src, "border stays put")
	require.NoError(t, err)

	assert.Equal(t, before, border.Hash(pixel.FromImage(marked)))
}

func TestWithChannel(t *testing.T) {
	ctx := context.Background()
	for _, ch := range []watermark.Channel{watermark.Blue, watermark.Green, watermark.Red} {
		marked, _, err := watermark.Embed(ctx, gradientImage(32, 32), "per-channel", watermark.WithChannel(ch))
		require.NoError(t, err)

		result, err := watermark.Extract(ctx, marked, watermark.WithChannel(ch))
		require.NoError(t, err)
		assert.Equal(t, "per-channel", result.Message())
	}

	_, err := watermark.New(watermark.WithChannel(watermark.Channel(7)))
	assert.Error(t, err)
}

func TestEmbedDoesNotMutateSource(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 9, G: 9, B: 9, A: 255})
		}
	}
	snapshot := make([]uint8, len(src.Pix))
	copy(snapshot, src.Pix)

	_, _, err := watermark.Embed(context.Background(), src, "copy on embed")
	require.NoError(t, err)
	assert.Equal(t, snapshot, src.Pix)
}
