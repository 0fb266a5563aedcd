// Package serializer renders responses onto the connection: a status line, the header
// set of a content kind and the body written by producers.
package serializer

import (
	"errors"
	"slices"
	"strconv"

	"github.com/indigo-web/utils/uf"
	"github.com/indigo-web/webserv/http/byterange"
	"github.com/indigo-web/webserv/http/kind"
	"github.com/indigo-web/webserv/http/mime"
	"github.com/indigo-web/webserv/http/status"
	"github.com/indigo-web/webserv/transport"
)

const protocol = "HTTP/1.1 "

// ErrHeaderSent is returned when a second status line is about to be written.
var ErrHeaderSent = errors.New("response header is already sent")

// Meta carries everything the header set depends on besides the content kind.
type Meta struct {
	// Size is the length of the whole entity. Used by sized kinds only.
	Size int64
	// Range is set for partial responses.
	Range *byterange.Range
}

// Serializer is owned by a single connection. Everything is accumulated in the buffer and
// written out once it's full or on Flush.
type Serializer struct {
	client         transport.Client
	buff           []byte
	defaultHeaders []byte
	headerSent     bool
	code           status.Code
	body           int64
}

func New(client transport.Client, buff []byte, defaultHeaders DefaultHeaders) *Serializer {
	return &Serializer{
		client:         client,
		buff:           buff[:0],
		defaultHeaders: defaultHeaders,
	}
}

// Header writes the status line and the headers of the kind. Partial content is possible
// only for mp4.
func (s *Serializer) Header(k kind.Kind, meta Meta) error {
	if s.headerSent {
		return ErrHeaderSent
	}

	partial := meta.Range != nil && k == kind.MP4
	code := status.OK
	if partial {
		code = status.PartialContent
	}

	switch k {
	case kind.HTML, kind.PlainText, kind.CGI:
		s.appendStatus(code)
		s.appendContentType(k)
	case kind.JPEG, kind.GIF:
		s.appendStatus(code)
		s.appendContentType(k)
		s.appendContentLength(meta.Size)
	case kind.MP3, kind.MP4:
		s.appendStatus(code)
		length := meta.Size
		if partial {
			s.appendKnownHeader("Content-Range: ", meta.Range.ContentRange())
			length = meta.Range.Len()
		}

		s.appendContentLength(length)
		s.appendContentType(k)
		s.appendKnownHeader("Content-Disposition: ", "inline")
	default:
		return status.ErrUnsupportedKind
	}

	s.buff = append(s.buff, s.defaultHeaders...)
	s.crlf()
	s.headerSent = true

	return nil
}

// Error writes a complete minimal HTML page describing the code and flushes it.
func (s *Serializer) Error(code status.Code) error {
	if s.headerSent {
		return ErrHeaderSent
	}

	s.appendStatus(code)
	s.appendKnownHeader("Content-Type: ", mime.WithCharset(mime.HTML, mime.UTF8))
	s.crlf()
	s.headerSent = true
	s.buff = appendErrorPage(s.buff, code)

	return s.Flush()
}

// Write appends the data to the body. Data that doesn't fit the buffer is written through.
func (s *Serializer) Write(p []byte) (n int, err error) {
	if len(s.buff)+len(p) <= cap(s.buff) {
		s.buff = append(s.buff, p...)
		s.body += int64(len(p))
		return len(p), nil
	}

	if err = s.Flush(); err != nil {
		return 0, err
	}

	if len(p) <= cap(s.buff) {
		s.buff = append(s.buff, p...)
		s.body += int64(len(p))
		return len(p), nil
	}

	n, err = s.client.Write(p)
	s.body += int64(n)

	return n, err
}

// WriteString is Write for strings. The string is not copied.
func (s *Serializer) WriteString(str string) (int, error) {
	return s.Write(uf.S2B(str))
}

// Flush writes everything buffered so far.
func (s *Serializer) Flush() (err error) {
	if len(s.buff) > 0 {
		_, err = s.client.Write(s.buff)
		s.buff = s.buff[:0]
	}

	return err
}

// HeaderSent reports whether a status line was already written. Once it was, no other
// response can be sent on the connection.
func (s *Serializer) HeaderSent() bool {
	return s.headerSent
}

// Code returns the status code of the response being written.
func (s *Serializer) Code() status.Code {
	return s.code
}

// BodyLen returns the number of body bytes accepted so far.
func (s *Serializer) BodyLen() int64 {
	return s.body
}

func (s *Serializer) appendStatus(code status.Code) {
	s.code = code
	s.buff = append(s.buff, protocol...)
	s.buff = append(s.buff, status.StringCode(code)...)
	s.sp()
	s.buff = append(s.buff, status.Text(code)...)
	s.crlf()
}

func (s *Serializer) appendContentType(k kind.Kind) {
	s.appendKnownHeader("Content-Type: ", mime.WithCharset(k.MIME(), k.Charset()))
}

func (s *Serializer) appendContentLength(value int64) {
	s.buff = append(s.buff, "Content-Length: "...)
	s.buff = strconv.AppendInt(s.buff, value, 10)
	s.crlf()
}

// appendKnownHeader expects the key to already have a colon and a space included.
func (s *Serializer) appendKnownHeader(key, value string) {
	s.buff = append(s.buff, key...)
	s.buff = append(s.buff, value...)
	s.crlf()
}

func (s *Serializer) sp() {
	s.buff = append(s.buff, ' ')
}

func (s *Serializer) crlf() {
	s.buff = append(s.buff, '\r', '\n')
}

// DefaultHeaders are pre-rendered header lines, each terminated by CRLF.
type DefaultHeaders []byte

// PreprocessDefaultHeaders renders the headers once. Keys are sorted, so responses don't
// depend on map iteration order.
func PreprocessDefaultHeaders(headers map[string]string) DefaultHeaders {
	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	var buff []byte
	for _, key := range keys {
		buff = append(buff, key...)
		buff = append(buff, ": "...)
		buff = append(buff, headers[key]...)
		buff = append(buff, '\r', '\n')
	}

	return buff
}
