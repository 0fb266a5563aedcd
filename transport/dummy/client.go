package dummy

import (
	"io"
	"net"

	"github.com/indigo-web/webserv/transport"
)

var _ transport.Client = new(Client)

// Client returns the pieces it was initialised with one by one, and io.EOF after them. Every
// write is journaled, so the whole response can be inspected after the client is served.
type Client struct {
	closed   bool
	pointer  int
	data     [][]byte
	written  []byte
	writeErr error
	failAt   int
	remote   net.Addr
}

func NewMockClient(data ...[]byte) *Client {
	return &Client{
		data:   data,
		failAt: -1,
		remote: &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 65000},
	}
}

// NewRequest is a shorthand for a client sending a single request.
func NewRequest(request string) *Client {
	return NewMockClient([]byte(request))
}

func (c *Client) Read() ([]byte, error) {
	if c.closed || c.pointer >= len(c.data) {
		return nil, io.EOF
	}

	piece := c.data[c.pointer]
	c.pointer++

	return piece, nil
}

func (c *Client) Write(p []byte) (int, error) {
	if c.closed {
		return 0, net.ErrClosed
	}

	if c.failAt >= 0 && len(c.written)+len(p) > c.failAt {
		n := max(c.failAt-len(c.written), 0)
		c.written = append(c.written, p[:n]...)
		return n, c.writeErr
	}

	c.written = append(c.written, p...)
	return len(p), nil
}

func (c *Client) Conn() net.Conn {
	return &Conn{Data: c.written}
}

func (c *Client) Remote() net.Addr {
	return c.remote
}

func (c *Client) Close() error {
	c.closed = true
	return nil
}

// FailWrites makes every write beyond the first n bytes fail with err.
func (c *Client) FailWrites(n int, err error) *Client {
	c.failAt, c.writeErr = n, err
	return c
}

func (c *Client) Closed() bool {
	return c.closed
}

func (c *Client) Written() string {
	return string(c.written)
}
