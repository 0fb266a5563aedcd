// Package kind classifies requested files by their extension. The classification decides
// both the response headers and the strategy used to produce the body.
package kind

import (
	"strings"

	"github.com/indigo-web/webserv/http/mime"
)

type Kind uint8

const (
	Unknown Kind = iota
	HTML
	JPEG
	GIF
	MP3
	MP4
	PlainText
	CGI
)

// Extension maps a file suffix (including the leading dot) to its kind. The match is
// case-sensitive: ".HTML" is Unknown.
var Extension = map[string]Kind{
	".html": HTML,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".gif":  GIF,
	".mp3":  MP3,
	".mp4":  MP4,
	".txt":  PlainText,
	".c":    PlainText,
	".h":    PlainText,
	".py":   PlainText,
	".java": PlainText,
	".cgi":  CGI,
}

// Ext returns everything starting from the last dot of the path, or an empty string
// if there's no dot at all.
func Ext(path string) string {
	dot := strings.LastIndexByte(path, '.')
	if dot == -1 {
		return ""
	}

	return path[dot:]
}

// Classify returns the kind of the path. It never fails: anything unrecognized is Unknown.
func Classify(path string) Kind {
	return Extension[Ext(path)]
}

// MIME returns the content type the kind is served with. CGI output is served as plain
// text, as well as directory listings.
func (k Kind) MIME() mime.MIME {
	switch k {
	case HTML:
		return mime.HTML
	case JPEG:
		return mime.JPEG
	case GIF:
		return mime.GIF
	case MP3:
		return mime.MPEG
	case MP4:
		return mime.MP4
	case PlainText, CGI:
		return mime.Plain
	default:
		return mime.OctetStream
	}
}

// Charset is set only for textual kinds.
func (k Kind) Charset() mime.Charset {
	switch k {
	case HTML, PlainText, CGI:
		return mime.UTF8
	default:
		return mime.Unset
	}
}

func (k Kind) String() string {
	switch k {
	case HTML:
		return "html"
	case JPEG:
		return "jpeg"
	case GIF:
		return "gif"
	case MP3:
		return "mp3"
	case MP4:
		return "mp4"
	case PlainText:
		return "text"
	case CGI:
		return "cgi"
	default:
		return "unknown"
	}
}
