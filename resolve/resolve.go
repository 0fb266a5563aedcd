// Package resolve maps request paths onto the filesystem.
package resolve

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"syscall"
)

type Type uint8

const (
	Missing Type = iota
	Directory
	Regular
	Other
)

func (t Type) String() string {
	switch t {
	case Missing:
		return "missing"
	case Directory:
		return "directory"
	case Regular:
		return "regular"
	case Other:
		return "other"
	default:
		return "unknown"
	}
}

// Target is what a request path points at. Size is set only for regular files.
type Target struct {
	Type Type
	// Path is the filesystem path, already joined with the root.
	Path string
	Size int64
	// Err is why the target is Missing. Nil for every other type.
	Err error
}

type Resolver interface {
	Resolve(requestPath string) (Target, error)
}

var _ Resolver = OS{}

// OS resolves paths against a root directory on the local filesystem. Paths are cleaned
// before being joined, so `..` segments can't climb above the root. Symlinks inside the root
// are followed wherever they point.
type OS struct {
	root string
}

func NewOS(root string) OS {
	return OS{root: root}
}

// Join returns the filesystem path of the request path.
func (o OS) Join(requestPath string) string {
	return filepath.Join(o.root, filepath.FromSlash(path.Clean("/"+requestPath)))
}

// Resolve stats the path. Whatever the stat failure is (no such file, a non-directory
// among the parents, a name too long, a forbidden parent), the target is Missing. The cause
// is reported along as Target.Err.
func (o OS) Resolve(requestPath string) (Target, error) {
	name := o.Join(requestPath)
	info, err := os.Stat(name)
	if err != nil {
		return Target{Type: Missing, Path: name, Err: err}, nil
	}

	return Of(name, info), nil
}

// Unusual reports whether the target is Missing for a reason other than plain absence.
func (t Target) Unusual() bool {
	return t.Err != nil && !errors.Is(t.Err, fs.ErrNotExist) && !errors.Is(t.Err, syscall.ENOTDIR)
}

// Of classifies already known file info.
func Of(name string, info fs.FileInfo) Target {
	switch mode := info.Mode(); {
	case mode.IsDir():
		return Target{Type: Directory, Path: name}
	case mode.IsRegular():
		return Target{Type: Regular, Path: name, Size: info.Size()}
	default:
		return Target{Type: Other, Path: name}
	}
}
