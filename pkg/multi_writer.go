package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// MultiWriter copies every write to all of its writers. A failing writer
// does not stop the others; the write only fails when none of them took it.
type MultiWriter struct {
	writers []io.Writer
}

func NewMultiWriter(writers ...io.Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

func (mw *MultiWriter) Write(p []byte) (int, error) {
	var err error
	accepted := 0
	for _, w := range mw.writers {
		if _, werr := w.Write(p); werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		accepted++
	}
	if accepted == 0 && len(mw.writers) > 0 {
		return 0, err
	}
	return len(p), err
}
