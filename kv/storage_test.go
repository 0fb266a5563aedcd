package kv

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	getHeaders := func() *Storage {
		return New(4).
			Add("Host", "localhost").
			Add("Range", "bytes=0-99").
			Add("Accept", "*/*").
			Add("range", "bytes=100-199")
	}

	t.Run("lookup", func(t *testing.T) {
		headers := getHeaders()
		value, found := headers.Lookup("RANGE")
		require.True(t, found)
		require.Equal(t, "bytes=0-99", value)

		_, found = headers.Lookup("Content-Length")
		require.False(t, found)
		require.Empty(t, headers.Value("Content-Length"))
		require.Equal(t, "*/*", headers.Value("accept"))
	})

	t.Run("values", func(t *testing.T) {
		headers := getHeaders()
		require.Equal(t, []string{"bytes=0-99", "bytes=100-199"}, slices.Collect(headers.Values("Range")))
		require.Empty(t, slices.Collect(headers.Values("Cookie")))
	})

	t.Run("all", func(t *testing.T) {
		var keys []string
		for key := range getHeaders().All() {
			keys = append(keys, key)
		}

		require.Equal(t, []string{"Host", "Range", "Accept", "range"}, keys)
	})

	t.Run("len", func(t *testing.T) {
		require.Equal(t, 4, getHeaders().Len())
		require.Zero(t, New(10).Len())
	})
}
