package transport

import (
	"net"
	"time"
)

// Client is a connection as seen by the dispatcher: one request read, then writes.
type Client interface {
	Read() ([]byte, error)
	Write([]byte) (int, error)
	Conn() net.Conn
	Remote() net.Addr
	Close() error
}

var _ Client = new(client)

type client struct {
	conn        net.Conn
	readBuff    []byte
	readTimeout time.Duration
}

// NewClient wraps the connection. The length of buff is the ceiling of a single Read.
func NewClient(conn net.Conn, readTimeout time.Duration, buff []byte) Client {
	return &client{
		conn:        conn,
		readBuff:    buff,
		readTimeout: readTimeout,
	}
}

// Read performs exactly one read into the buffer. The returned slice is overwritten by the
// next call. A non-positive timeout means waiting forever.
func (c *client) Read() ([]byte, error) {
	if c.readTimeout > 0 {
		deadline := time.Now().Add(c.readTimeout)
		if err := c.conn.SetReadDeadline(deadline); err != nil {
			return nil, err
		}
	}

	n, err := c.conn.Read(c.readBuff)

	return c.readBuff[:n], err
}

func (c *client) Write(b []byte) (int, error) {
	return c.conn.Write(b)
}

func (c *client) Conn() net.Conn {
	return c.conn
}

func (c *client) Remote() net.Addr {
	return c.conn.RemoteAddr()
}

func (c *client) Close() error {
	return c.conn.Close()
}
