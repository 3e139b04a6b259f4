package dumper

import (
	"io"
	"iter"
)

// WriteIter renders each value from seq and writes it to w as it arrives.
// It stops at the first write error.
func (c Config[T]) WriteIter(w io.Writer, seq iter.Seq[T]) error {
	var streamErr error
	seq(func(v T) bool {
		if err := c.Write(w, v); err != nil {
			streamErr = err
			return false
		}
		return true
	})
	return streamErr
}

// WriteChan renders values received from ch until it is closed.
// It is a thin wrapper around [Config.WriteIter].
func (c Config[T]) WriteChan(w io.Writer, ch <-chan T) error {
	return c.WriteIter(w, chanToIter(ch))
}

func chanToIter[T any](ch <-chan T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range ch {
			if !yield(v) {
				return
			}
		}
	}
}
