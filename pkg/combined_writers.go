package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter copies every write to all of its writers, e.g. log lines to both
// stdout and the rotated log file. A failing writer does not stop the others.
type CombinedWriter struct {
	writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		writers: writers,
	}
}

// Write reports len(p) if at least one writer took the whole buffer,
// and the combined errors of the writers that failed.
func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var (
		err     error
		written bool
	)
	for _, w := range cw.writers {
		n, werr := w.Write(p)
		if werr == nil && n < len(p) {
			werr = io.ErrShortWrite
		}
		if werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		written = true
	}

	if !written {
		return 0, err
	}
	return len(p), err
}
