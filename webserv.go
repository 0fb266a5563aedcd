package webserv

import (
	"context"
	"net"

	"github.com/rs/zerolog"

	"github.com/indigo-web/webserv/config"
	"github.com/indigo-web/webserv/internal/dispatch"
	"github.com/indigo-web/webserv/transport"
)

// DefaultAddr is where the server listens unless told otherwise.
const DefaultAddr = ":5050"

// App is the file server. Every added address is served by its own accept loop, and every
// accepted connection by its own goroutine.
type App struct {
	cfg        *config.Config
	log        zerolog.Logger
	hooks      hooks
	supervisor transport.Supervisor
	transports []Transport
	ctx        context.Context
	cancel     context.CancelFunc
}

// New returns a new App instance listening on the address.
func New(addr string) *App {
	ctx, cancel := context.WithCancel(context.Background())

	app := &App{
		cfg:        config.Default(),
		log:        zerolog.Nop(),
		supervisor: transport.NewSupervisor(),
		ctx:        ctx,
		cancel:     cancel,
	}

	return app.Listen(addr)
}

// Tune replaces default config.
func (a *App) Tune(cfg *config.Config) *App {
	a.cfg = cfg
	return a
}

// Logger sets the logger. Every connection logs through a child logger carrying the
// connection id and the remote address. No-op logger is used by default.
func (a *App) Logger(log zerolog.Logger) *App {
	a.log = log
	return a
}

// NotifyOnStart calls the callback at the moment, when all the listeners are bound.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback at the moment, when all the listeners are down. It's guaranteed,
// that at the moment as the callback is called, no connection is being served anymore.
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Listen adds a new listening address. If no transport is specified, TCP is used.
func (a *App) Listen(addr string, optTransport ...Transport) *App {
	t := TCP()
	if len(optTransport) > 0 {
		t = optTransport[0]
	}

	t.addr = addr
	a.transports = append(a.transports, t)

	return a
}

// Addrs returns the addresses the App is actually bound to. Valid only after the start
// hook was called.
func (a *App) Addrs() []net.Addr {
	return a.supervisor.Addrs()
}

// Serve binds all the addresses and blocks until either Stop is called or any of the
// listeners fails.
func (a *App) Serve() error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	d := dispatch.FromConfig(a.cfg, a.log)

	for _, t := range a.transports {
		cb := t.spawnCallback(a.ctx, a.cfg, d, a.log)
		if err := a.supervisor.Add(t.addr, t.inner, cb); err != nil {
			return err
		}
	}

	for _, addr := range a.Addrs() {
		a.log.Info().Stringer("addr", addr).Str("root", a.cfg.FS.Root).Msg("listening")
	}

	callIfNotNil(a.hooks.OnStart)
	err := a.supervisor.Run(a.cfg.NET)
	a.cancel()
	callIfNotNil(a.hooks.OnStop)

	if err != nil {
		a.log.Error().Err(err).Msg("listener failed")
	}

	return err
}

// Stop kills running commands, interrupts pending reads, stops accepting new connections and
// waits until the ones being served are done. Must be called only after the start hook.
func (a *App) Stop() {
	a.cancel()
	a.supervisor.Stop()
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
