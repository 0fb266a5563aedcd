package http

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/indigo-web/utils/uf"
	"github.com/indigo-web/webserv/http/status"
	"github.com/indigo-web/webserv/internal/strutil"
	"github.com/indigo-web/webserv/kv"
)

type (
	Headers = *kv.Storage
	Header  = kv.Pair
)

// ErrBadTarget is returned when the target path can't be percent-decoded. It's answered
// in the same way as a missing file.
var ErrBadTarget = status.NewError(status.NotFound, "malformed target path")

// Request represents the head of an HTTP request. It's built once per connection and never
// mutated afterward.
type Request struct {
	// Line is the request line with the trailing line break stripped.
	Line string
	// Tokens are the whitespace-delimited fields of the request line.
	Tokens []string
	// Target is the raw token the path was extracted from.
	Target string
	// Path is the decoded target without query and fragment. Always starts with a slash.
	Path string
	// Headers holds non-normalized header pairs, even though lookup is case-insensitive. Only
	// complete header lines are kept, so a line truncated by the read buffer is dropped.
	Headers Headers
	// Remote holds the remote address.
	Remote net.Addr
}

// Parse builds a Request out of the bytes of a single read. The data must not be modified
// afterward, as the returned strings may reference it.
//
// The target path is the first token of the request line starting with a slash. Its absence
// results in status.ErrNoTarget.
func Parse(data []byte, headersPrealloc int) (*Request, error) {
	raw := uf.B2S(data)
	line, rest, _ := strings.Cut(raw, "\n")
	line = strutil.RStripWS(line)

	request := &Request{
		Line:    line,
		Tokens:  strings.Fields(line),
		Headers: kv.New(headersPrealloc),
	}

	parseHeaders(request.Headers, rest)

	for _, token := range request.Tokens {
		if token[0] == '/' {
			request.Target = token
			break
		}
	}

	if len(request.Target) == 0 {
		return request, status.ErrNoTarget
	}

	path := request.Target
	if cut := strings.IndexAny(path, "?#"); cut != -1 {
		path = path[:cut]
	}

	path, err := url.PathUnescape(path)
	if err != nil {
		return request, fmt.Errorf("%w: %s", ErrBadTarget, err)
	}

	request.Path = path

	return request, nil
}

func parseHeaders(headers Headers, raw string) {
	for {
		line, rest, found := strings.Cut(raw, "\n")
		if !found {
			return
		}

		line = strutil.RStripWS(line)
		if len(line) == 0 {
			return
		}

		if key, value, ok := strings.Cut(line, ":"); ok && len(key) > 0 {
			headers.Add(key, strutil.LStripWS(value))
		}

		raw = rest
	}
}
