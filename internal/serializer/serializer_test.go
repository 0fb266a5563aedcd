package serializer

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/indigo-web/webserv/http/byterange"
	"github.com/indigo-web/webserv/http/kind"
	"github.com/indigo-web/webserv/http/status"
	"github.com/indigo-web/webserv/transport/dummy"
	"github.com/stretchr/testify/require"
)

func newSerializer(defaultHeaders map[string]string) (*Serializer, *dummy.Client) {
	client := dummy.NewMockClient()
	return New(client, make([]byte, 0, 4096), PreprocessDefaultHeaders(defaultHeaders)), client
}

func TestHeader(t *testing.T) {
	tcs := []struct {
		Name string
		Kind kind.Kind
		Meta Meta
		Want string
	}{
		{
			Name: "html",
			Kind: kind.HTML,
			Want: "HTTP/1.1 200 OK\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n",
		},
		{
			Name: "plain text",
			Kind: kind.PlainText,
			Want: "HTTP/1.1 200 OK\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n",
		},
		{
			Name: "cgi",
			Kind: kind.CGI,
			Want: "HTTP/1.1 200 OK\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n",
		},
		{
			Name: "jpeg",
			Kind: kind.JPEG,
			Meta: Meta{Size: 1234},
			Want: "HTTP/1.1 200 OK\r\nContent-Type: image/jpeg\r\nContent-Length: 1234\r\n\r\n",
		},
		{
			Name: "gif",
			Kind: kind.GIF,
			Meta: Meta{Size: 0},
			Want: "HTTP/1.1 200 OK\r\nContent-Type: image/gif\r\nContent-Length: 0\r\n\r\n",
		},
		{
			Name: "mp3",
			Kind: kind.MP3,
			Meta: Meta{Size: 5000},
			Want: "HTTP/1.1 200 OK\r\nContent-Length: 5000\r\nContent-Type: audio/mpeg\r\n" +
				"Content-Disposition: inline\r\n\r\n",
		},
		{
			Name: "mp4",
			Kind: kind.MP4,
			Meta: Meta{Size: 1000},
			Want: "HTTP/1.1 200 OK\r\nContent-Length: 1000\r\nContent-Type: video/mp4\r\n" +
				"Content-Disposition: inline\r\n\r\n",
		},
		{
			Name: "mp4 partial",
			Kind: kind.MP4,
			Meta: Meta{Size: 1000, Range: &byterange.Range{Start: 100, End: 199, Total: 1000}},
			Want: "HTTP/1.1 206 Partial Content\r\nContent-Range: bytes 100-199/1000\r\n" +
				"Content-Length: 100\r\nContent-Type: video/mp4\r\nContent-Disposition: inline\r\n\r\n",
		},
		{
			Name: "range is ignored for other kinds",
			Kind: kind.MP3,
			Meta: Meta{Size: 1000, Range: &byterange.Range{Start: 100, End: 199, Total: 1000}},
			Want: "HTTP/1.1 200 OK\r\nContent-Length: 1000\r\nContent-Type: audio/mpeg\r\n" +
				"Content-Disposition: inline\r\n\r\n",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.Name, func(t *testing.T) {
			s, client := newSerializer(nil)
			require.NoError(t, s.Header(tc.Kind, tc.Meta))
			require.NoError(t, s.Flush())
			require.Equal(t, tc.Want, client.Written())
			require.True(t, s.HeaderSent())
		})
	}

	t.Run("unknown kind", func(t *testing.T) {
		s, client := newSerializer(nil)
		require.ErrorIs(t, s.Header(kind.Unknown, Meta{}), status.ErrUnsupportedKind)
		require.False(t, s.HeaderSent())
		require.NoError(t, s.Flush())
		require.Empty(t, client.Written())
	})

	t.Run("twice", func(t *testing.T) {
		s, _ := newSerializer(nil)
		require.NoError(t, s.Header(kind.HTML, Meta{}))
		require.ErrorIs(t, s.Header(kind.HTML, Meta{}), ErrHeaderSent)
		require.ErrorIs(t, s.Error(status.NotFound), ErrHeaderSent)
	})

	t.Run("default headers", func(t *testing.T) {
		s, client := newSerializer(map[string]string{
			"Server":     "webserv",
			"Connection": "close",
		})
		require.NoError(t, s.Header(kind.HTML, Meta{}))
		require.NoError(t, s.Flush())
		require.Equal(t,
			"HTTP/1.1 200 OK\r\nContent-Type: text/html; charset=UTF-8\r\n"+
				"Connection: close\r\nServer: webserv\r\n\r\n",
			client.Written(),
		)
	})
}

func TestError(t *testing.T) {
	for _, tc := range []struct {
		Code    status.Code
		Line    string
		Message string
	}{
		{status.NotFound, "HTTP/1.1 404 Not Found\r\n", "could not be located"},
		{status.NotImplemented, "HTTP/1.1 501 Not Implemented\r\n", "has not been implemented"},
		{status.InternalServerError, "HTTP/1.1 500 Internal Server Error\r\n", "failed to fulfil"},
	} {
		t.Run(tc.Line, func(t *testing.T) {
			s, client := newSerializer(map[string]string{"Server": "webserv"})
			require.NoError(t, s.Error(tc.Code))
			response := client.Written()
			head, body, _ := strings.Cut(response, "\r\n\r\n")
			require.Equal(t, tc.Line+"Content-Type: text/html; charset=UTF-8", head)

			page, err := goquery.NewDocumentFromReader(strings.NewReader(body))
			require.NoError(t, err)
			require.Equal(t, strings.TrimSpace(strings.TrimPrefix(tc.Line, "HTTP/1.1 ")), page.Find("title").Text())
			require.Contains(t, page.Find("body p").Text(), tc.Message)
			require.NotContains(t, response, "Server: webserv", "error pages carry no default headers")
			require.Equal(t, tc.Code, s.Code())
		})
	}
}

func TestWrite(t *testing.T) {
	t.Run("buffered", func(t *testing.T) {
		s, client := newSerializer(nil)
		require.NoError(t, s.Header(kind.PlainText, Meta{}))
		_, err := s.WriteString("Hello, ")
		require.NoError(t, err)
		_, err = s.Write([]byte("world!"))
		require.NoError(t, err)
		require.Empty(t, client.Written(), "nothing must be written before the flush")
		require.NoError(t, s.Flush())
		require.True(t, strings.HasSuffix(client.Written(), "\r\n\r\nHello, world!"))
		require.Equal(t, int64(13), s.BodyLen())
	})

	t.Run("larger than buffer", func(t *testing.T) {
		client := dummy.NewMockClient()
		s := New(client, make([]byte, 0, 16), nil)
		require.NoError(t, s.Header(kind.PlainText, Meta{}))
		body := strings.Repeat("abcdefgh", 10)
		n, err := s.WriteString(body)
		require.NoError(t, err)
		require.Equal(t, len(body), n)
		_, err = s.WriteString("tail")
		require.NoError(t, err)
		require.NoError(t, s.Flush())
		require.True(t, strings.HasSuffix(client.Written(), "\r\n\r\n"+body+"tail"))
		require.Equal(t, int64(len(body)+4), s.BodyLen())
	})

	t.Run("broken client", func(t *testing.T) {
		broken := errors.New("broken pipe")
		client := dummy.NewMockClient().FailWrites(0, broken)
		s := New(client, make([]byte, 0, 16), nil)
		require.NoError(t, s.Header(kind.PlainText, Meta{}))
		_, err := s.WriteString(strings.Repeat("a", 100))
		require.ErrorIs(t, err, broken)
	})
}
