// Package byterange parses the single-range form of the Range request header.
//
// Only `bytes=first-last`, `bytes=first-` and `bytes=-suffix` are recognized. Anything else,
// including multiple ranges, is reported as no range at all, so the caller falls back to the
// full entity.
package byterange

import (
	"strconv"
	"strings"

	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/webserv/internal/strutil"
)

const unit = "bytes="

// Range is an inclusive span of bytes over an entity of Total bytes.
type Range struct {
	Start, End, Total int64
}

// Len returns the number of bytes the range covers.
func (r Range) Len() int64 {
	return r.End - r.Start + 1
}

// ContentRange renders the value of the Content-Range response header.
func (r Range) ContentRange() string {
	buff := make([]byte, 0, len("bytes ")+3*20+2)
	buff = append(buff, "bytes "...)
	buff = strconv.AppendInt(buff, r.Start, 10)
	buff = append(buff, '-')
	buff = strconv.AppendInt(buff, r.End, 10)
	buff = append(buff, '/')
	buff = strconv.AppendInt(buff, r.Total, 10)

	return string(buff)
}

// Parse resolves the header value against an entity of the given size. The second return
// value is false whenever the header is absent, malformed, multi-range or unsatisfiable.
func Parse(header string, size int64) (Range, bool) {
	header = strutil.RStripWS(strutil.LStripWS(header))
	if size <= 0 || len(header) < len(unit) || !strcomp.EqualFold(header[:len(unit)], unit) {
		return Range{}, false
	}

	set := strutil.LStripWS(header[len(unit):])
	if strings.IndexByte(set, ',') != -1 {
		return Range{}, false
	}

	first, last, found := strings.Cut(set, "-")
	if !found {
		return Range{}, false
	}

	first, last = strutil.RStripWS(first), strutil.LStripWS(last)

	if len(first) == 0 {
		// suffix form: the last N bytes
		suffix, ok := parseUint(last)
		if !ok || suffix == 0 {
			return Range{}, false
		}

		return Range{
			Start: max(size-suffix, 0),
			End:   size - 1,
			Total: size,
		}, true
	}

	start, ok := parseUint(first)
	if !ok || start >= size {
		return Range{}, false
	}

	end := size - 1
	if len(last) > 0 {
		end, ok = parseUint(last)
		if !ok || end < start {
			return Range{}, false
		}

		end = min(end, size-1)
	}

	return Range{
		Start: start,
		End:   end,
		Total: size,
	}, true
}

func parseUint(str string) (int64, bool) {
	if len(str) == 0 || str[0] == '+' || str[0] == '-' {
		return 0, false
	}

	num, err := strconv.ParseInt(str, 10, 64)
	return num, err == nil
}
