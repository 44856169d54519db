package gen

import (
	"github.com/rs/zerolog"
)

// WriterOption configures a Writer.
type WriterOption func(*Writer) error

// WithFormatting controls gofmt-style formatting of generated .go files.
// Formatting is on by default.
func WithFormatting(enabled bool) WriterOption {
	return func(w *Writer) error {
		w.format = enabled
		return nil
	}
}

// WithLogger sets the logger used for per-file emission events. The
// default discards them.
func WithLogger(logger zerolog.Logger) WriterOption {
	return func(w *Writer) error {
		w.logger = logger
		return nil
	}
}
