// Package produce writes response bodies. Every producer writes the header itself, right
// before the first body byte, so any failure it returns before that point still leaves the
// connection free for an error page.
package produce

import (
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"

	"github.com/indigo-web/webserv/http/byterange"
	"github.com/indigo-web/webserv/http/kind"
	"github.com/indigo-web/webserv/internal/serializer"
	"github.com/indigo-web/webserv/runner"
)

// Whole reads the file into memory at once, so the declared length is exactly what is sent.
func Whole(s *serializer.Serializer, k kind.Kind, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err = s.Header(k, serializer.Meta{Size: int64(len(data))}); err != nil {
		return err
	}

	if _, err = s.Write(data); err != nil {
		return err
	}

	return s.Flush()
}

// Ranged sends exactly the bytes [r.Start, r.End] of the file as a partial response.
func Ranged(s *serializer.Serializer, k kind.Kind, path string, r byterange.Range) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	defer file.Close()

	data := make([]byte, r.Len())
	if _, err = io.ReadFull(io.NewSectionReader(file, r.Start, r.Len()), data); err != nil {
		return fmt.Errorf("read %s [%d, %d]: %w", path, r.Start, r.End, err)
	}

	if err = s.Header(k, serializer.Meta{Size: r.Total, Range: &r}); err != nil {
		return err
	}

	if _, err = s.Write(data); err != nil {
		return err
	}

	return s.Flush()
}

// File streams the file line by line.
func File(s *serializer.Serializer, k kind.Kind, path string, bufSize int) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	defer file.Close()

	return Lines(s, k, runner.Lines(file, bufSize), false)
}

// Lines writes the header followed by every line. If live is set, each line is flushed
// as soon as it arrives instead of waiting for the buffer to fill up.
func Lines(s *serializer.Serializer, k kind.Kind, lines iter.Seq2[[]byte, error], live bool) error {
	if err := s.Header(k, serializer.Meta{}); err != nil {
		return err
	}

	if err := writeLines(s, lines, live); err != nil {
		return err
	}

	return s.Flush()
}

// Command streams the output of a started process as plain text.
func Command(s *serializer.Serializer, proc *runner.Process) error {
	return Lines(s, kind.CGI, proc.Lines(), true)
}

const (
	footerPrefix = "End of directory listing. "
	footerSuffix = " files listed."
)

// Directory streams the listing, followed by a footer reporting how many entries were
// listed. The footer is not terminated by a newline.
func Directory(s *serializer.Serializer, listing runner.Listing, live bool) error {
	if err := s.Header(kind.PlainText, serializer.Meta{}); err != nil {
		return err
	}

	if err := writeLines(s, listing.Lines(), live); err != nil {
		return err
	}

	if _, err := s.WriteString(Footer(listing.Count())); err != nil {
		return err
	}

	return s.Flush()
}

// Footer renders the last line of a directory listing.
func Footer(count int) string {
	return footerPrefix + strconv.Itoa(count) + footerSuffix
}

func writeLines(s *serializer.Serializer, lines iter.Seq2[[]byte, error], live bool) error {
	for line, err := range lines {
		if err != nil {
			return err
		}

		if _, err = s.Write(line); err != nil {
			return err
		}

		if live {
			if err = s.Flush(); err != nil {
				return err
			}
		}
	}

	return nil
}
