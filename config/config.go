package config

import (
	"time"
)

// Listing modes of directories.
const (
	// ListingNative reads directory entries directly and renders them in `ls -l` fashion.
	ListingNative = "native"
	// ListingCommand runs FS.ListCommand with the directory path appended.
	ListingCommand = "command"
)

type (
	NET struct {
		// ReadBufferSize is the size of the buffer the request is read into. The request is read
		// by a single read call, so this is also the hard ceiling of a request size: anything
		// beyond is simply never read.
		ReadBufferSize int
		// ReadTimeout limits how long a client may stay silent before sending its request. Zero
		// disables the deadline.
		ReadTimeout time.Duration `test:"nullable"`
		// AcceptLoopInterruptPeriod controls how often will the Accept() call be interrupted
		// in order to check whether it's time to stop. Defaults to 5 seconds.
		AcceptLoopInterruptPeriod time.Duration
		// WriteBufferSize is the size of the buffer response headers are accumulated in before
		// being flushed at once. It also limits the length of a single streamed line: longer
		// lines are transmitted in several writes.
		WriteBufferSize int
	}

	FS struct {
		// Root is the directory request paths are resolved against. Paths can't escape it.
		Root string
		// Listing is either ListingNative or ListingCommand.
		Listing string
		// ListCommand is used when Listing is ListingCommand.
		ListCommand []string
	}

	CGI struct {
		// Interpreter executes .cgi scripts. The script path is passed as the last argument.
		Interpreter []string
	}

	Headers struct {
		// Prealloc is the initial capacity of the request headers storage.
		Prealloc int
		// Default headers are appended to every successful response after the kind-specific ones.
		Default map[string]string `test:"nullable"`
	}
)

// Config holds settings used across various parts of the server, mainly restrictions,
// limitations and external commands.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	NET     NET
	FS      FS
	CGI     CGI
	Headers Headers
}

// Default returns default config.
func Default() *Config {
	return &Config{
		NET: NET{
			ReadBufferSize:            4096,
			ReadTimeout:               0,
			AcceptLoopInterruptPeriod: 5 * time.Second,
			WriteBufferSize:           4096,
		},
		FS: FS{
			Root:        ".",
			Listing:     ListingNative,
			ListCommand: []string{"ls", "-l"},
		},
		CGI: CGI{
			Interpreter: []string{"sh"},
		},
		Headers: Headers{
			Prealloc: 10,
			Default:  make(map[string]string),
		},
	}
}
