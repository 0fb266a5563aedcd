// Package runner executes external commands and lists directories, exposing both as lazy
// line sequences.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"os/exec"
	"sync"
)

// Runner starts commands. The returned process must always be closed.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (*Process, error)
}

var _ Runner = Exec{}

// Exec runs commands as child processes of the server. The command's stderr goes to Stderr,
// if set, and is discarded otherwise.
type Exec struct {
	Stderr     io.Writer
	BufferSize int
}

// Run starts the command. An error is returned only if the command could not be started,
// non-zero exit codes are reported by Process.Close.
func (e Exec) Run(ctx context.Context, name string, args ...string) (*Process, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = e.Stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", name, err)
	}

	if err = cmd.Start(); err != nil {
		return nil, fmt.Errorf("run %s: %w", name, err)
	}

	return &Process{
		cmd:     cmd,
		stdout:  stdout,
		bufSize: e.BufferSize,
	}, nil
}

// Process is a started command whose stdout is consumed as lines.
type Process struct {
	cmd     *exec.Cmd
	stdout  io.ReadCloser
	bufSize int
	drained bool
	once    sync.Once
	err     error
}

// Lines streams the stdout of the process. It can be consumed only once.
func (p *Process) Lines() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for line, err := range Lines(p.stdout, p.bufSize) {
			if !yield(line, err) {
				return
			}

			if err != nil {
				return
			}
		}

		p.drained = true
	}
}

// Close waits for the process to exit. If its output was not consumed until the end, the
// process is killed first, as nobody is going to read the rest of it.
func (p *Process) Close() error {
	p.once.Do(func() {
		if !p.drained {
			_ = p.stdout.Close()
			_ = p.cmd.Process.Kill()
		}

		p.err = p.cmd.Wait()
		if !p.drained && isKilled(p.err) {
			p.err = nil
		}
	})

	return p.err
}

func isKilled(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr) && !exitErr.Exited()
}
