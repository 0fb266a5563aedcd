package kind

import (
	"testing"

	"github.com/indigo-web/webserv/http/mime"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	for _, tc := range []struct {
		Path string
		Kind Kind
	}{
		{"/index.html", HTML},
		{"/pics/cat.jpg", JPEG},
		{"/pics/cat.jpeg", JPEG},
		{"/anim.gif", GIF},
		{"/song.mp3", MP3},
		{"/movie.mp4", MP4},
		{"/notes.txt", PlainText},
		{"/src/main.c", PlainText},
		{"/src/main.h", PlainText},
		{"/script.py", PlainText},
		{"/Main.java", PlainText},
		{"/cgi-bin/hello.cgi", CGI},
		{"/archive.tar.gz", Unknown},
		{"/INDEX.HTML", Unknown},
		{"/Makefile", Unknown},
		{"/", Unknown},
		{"", Unknown},
		{"/dir.d/file", Unknown},
	} {
		t.Run(tc.Path, func(t *testing.T) {
			require.Equal(t, tc.Kind, Classify(tc.Path))
		})
	}
}

func TestExt(t *testing.T) {
	require.Equal(t, ".gz", Ext("/archive.tar.gz"))
	require.Equal(t, "", Ext("/README"))
	require.Equal(t, ".", Ext("/trailing."))
}

func TestMIME(t *testing.T) {
	require.Equal(t, mime.HTML, HTML.MIME())
	require.Equal(t, mime.JPEG, JPEG.MIME())
	require.Equal(t, mime.GIF, GIF.MIME())
	require.Equal(t, mime.MPEG, MP3.MIME())
	require.Equal(t, mime.MP4, MP4.MIME())
	require.Equal(t, mime.Plain, PlainText.MIME())
	require.Equal(t, mime.Plain, CGI.MIME())
	require.Equal(t, mime.UTF8, HTML.Charset())
	require.Equal(t, mime.Unset, MP4.Charset())
}
