package runner

import (
	"bufio"
	"errors"
	"io"
	"iter"
)

// Lines yields the reader's content line by line, every line including its trailing newline.
// Lines longer than bufSize are yielded in pieces of at most bufSize bytes. The yielded slice
// is valid only until the next iteration. The sequence stops on the first error; io.EOF is
// not reported.
func Lines(r io.Reader, bufSize int) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		reader := bufio.NewReaderSize(r, bufSize)

		for {
			line, err := reader.ReadSlice('\n')
			switch {
			case err == nil, errors.Is(err, bufio.ErrBufferFull):
				if !yield(line, nil) {
					return
				}
			case errors.Is(err, io.EOF):
				if len(line) > 0 {
					yield(line, nil)
				}

				return
			default:
				if len(line) > 0 && !yield(line, nil) {
					return
				}

				yield(nil, err)
				return
			}
		}
	}
}
