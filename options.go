package watermark

import "fmt"

// Channel selects the color channel whose LSBs carry the watermark.
// Channel 0 is blue, matching the channel order the border fingerprint is
// computed over.
type Channel int

const (
	Blue Channel = iota
	Green
	Red
)

type Option func(*Watermark) error

// WithChannel embeds into and extracts from the given channel instead of
// the default blue. Exactly one channel carries bits; embed and extract
// must agree on it.
func WithChannel(c Channel) Option {
	return func(w *Watermark) error {
		switch c {
		case Blue, Green, Red:
			w.channel = c
			return nil
		default:
			return fmt.Errorf("unknown channel: %d", c)
		}
	}
}
