package mime

type MIME = string

const (
	OctetStream MIME = "application/octet-stream"
	Plain       MIME = "text/plain"
	HTML        MIME = "text/html"
	GIF         MIME = "image/gif"
	JPEG        MIME = "image/jpeg"
	MPEG        MIME = "audio/mpeg"
	MP4         MIME = "video/mp4"
)

// WithCharset renders the value of a Content-Type header. Unset charset leaves the MIME
// untouched.
func WithCharset(mime MIME, charset Charset) string {
	if len(charset) == 0 {
		return mime
	}

	return mime + "; charset=" + charset
}
