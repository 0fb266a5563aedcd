package webserv

import (
	"context"
	"net"
	"time"

	"github.com/dchest/uniuri"
	"github.com/rs/zerolog"

	"github.com/indigo-web/webserv/config"
	"github.com/indigo-web/webserv/internal/dispatch"
	"github.com/indigo-web/webserv/transport"
)

const connIDLength = 8

// Transport couples a listener implementation with the way its connections are served.
type Transport struct {
	addr          string // must be left intact. Used by App entity only
	inner         transport.Transport
	spawnCallback func(ctx context.Context, cfg *config.Config, d *dispatch.Dispatcher, log zerolog.Logger) func(net.Conn)
}

// TCP is the plain-text transport.
func TCP() Transport {
	return Transport{
		inner: transport.NewTCP(),
		spawnCallback: func(
			ctx context.Context, cfg *config.Config, d *dispatch.Dispatcher, log zerolog.Logger,
		) func(net.Conn) {
			return func(conn net.Conn) {
				// a client still silent on stop must not keep the supervisor waiting
				unblock := context.AfterFunc(ctx, func() {
					_ = conn.SetReadDeadline(time.Now())
				})
				defer unblock()

				connLog := log.With().
					Str("conn", uniuri.NewLen(connIDLength)).
					Stringer("remote", conn.RemoteAddr()).
					Logger()
				client := transport.NewClient(conn, cfg.NET.ReadTimeout, make([]byte, cfg.NET.ReadBufferSize))
				d.Serve(connLog.WithContext(ctx), client)
			}
		},
	}
}
