package runner

import (
	"context"
	"fmt"
	"iter"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/indigo-web/utils/uf"
)

// Lister produces a human-readable listing of a directory.
type Lister interface {
	List(ctx context.Context, dir string) (Listing, error)
}

// Listing is a directory listing being produced. Count reports how many entries were listed
// and is final only after Lines was consumed.
type Listing interface {
	Lines() iter.Seq2[[]byte, error]
	Count() int
	Close() error
}

var (
	_ Lister = Native{}
	_ Lister = Command{}
)

// Native lists directories without spawning any processes. Every entry is rendered in a way
// similar to `ls -l`: mode, size, modification time and name.
type Native struct{}

func (Native) List(_ context.Context, dir string) (Listing, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	return &nativeListing{entries: entries}, nil
}

type nativeListing struct {
	entries []os.DirEntry
	buff    []byte
	count   int
}

func (n *nativeListing) Lines() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for _, entry := range n.entries {
			info, err := entry.Info()
			if err != nil {
				// the entry has gone between reading the directory and stat-ing it
				continue
			}

			n.buff = appendEntry(n.buff[:0], info)
			n.count++
			if !yield(n.buff, nil) {
				return
			}
		}
	}
}

func (n *nativeListing) Count() int {
	return n.count
}

func (n *nativeListing) Close() error {
	return nil
}

const timeLayout = "Jan _2 15:04"

func appendEntry(buff []byte, info os.FileInfo) []byte {
	buff = append(buff, info.Mode().String()...)
	buff = append(buff, ' ')
	size := strconv.FormatInt(info.Size(), 10)
	for i := len(size); i < 10; i++ {
		buff = append(buff, ' ')
	}
	buff = append(buff, size...)
	buff = append(buff, ' ')
	buff = info.ModTime().In(time.Local).AppendFormat(buff, timeLayout)
	buff = append(buff, ' ')
	buff = append(buff, info.Name()...)

	return append(buff, '\n')
}

// Command lists directories by running an external command, `ls -l` by default, with the
// directory as the last argument. A leading `total` summary line is not counted as an entry.
type Command struct {
	Runner Runner
	Argv   []string
}

func (c Command) List(ctx context.Context, dir string) (Listing, error) {
	if len(c.Argv) == 0 {
		return nil, fmt.Errorf("list %s: empty command", dir)
	}

	args := append(c.Argv[1:len(c.Argv):len(c.Argv)], dir)
	proc, err := c.Runner.Run(ctx, c.Argv[0], args...)
	if err != nil {
		return nil, err
	}

	return &commandListing{proc: proc}, nil
}

type commandListing struct {
	proc    *Process
	count   int
	skipped bool
}

func (c *commandListing) Lines() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		lineStart := true

		for line, err := range c.proc.Lines() {
			if err != nil {
				yield(nil, err)
				return
			}

			if lineStart {
				if c.count == 0 && !c.skipped && strings.HasPrefix(uf.B2S(line), "total ") {
					c.skipped = true
				} else {
					c.count++
				}
			}

			lineStart = line[len(line)-1] == '\n'
			if !yield(line, nil) {
				return
			}
		}
	}
}

func (c *commandListing) Count() int {
	return c.count
}

func (c *commandListing) Close() error {
	return c.proc.Close()
}
