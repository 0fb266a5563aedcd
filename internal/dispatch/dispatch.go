// Package dispatch serves a single connection: reads the request, resolves its target and
// picks the producer for it. Exactly one response is sent per connection.
package dispatch

import (
	"context"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/indigo-web/webserv/config"
	"github.com/indigo-web/webserv/http"
	"github.com/indigo-web/webserv/http/byterange"
	"github.com/indigo-web/webserv/http/kind"
	"github.com/indigo-web/webserv/http/status"
	"github.com/indigo-web/webserv/internal/produce"
	"github.com/indigo-web/webserv/internal/serializer"
	"github.com/indigo-web/webserv/resolve"
	"github.com/indigo-web/webserv/runner"
	"github.com/indigo-web/webserv/transport"
)

// Dispatcher holds no per-connection state, therefore a single instance serves every
// connection concurrently.
type Dispatcher struct {
	cfg            *config.Config
	resolver       resolve.Resolver
	runner         runner.Runner
	lister         runner.Lister
	liveListing    bool
	defaultHeaders serializer.DefaultHeaders
}

func New(cfg *config.Config, resolver resolve.Resolver, run runner.Runner, lister runner.Lister) *Dispatcher {
	return &Dispatcher{
		cfg:            cfg,
		resolver:       resolver,
		runner:         run,
		lister:         lister,
		liveListing:    cfg.FS.Listing == config.ListingCommand,
		defaultHeaders: serializer.PreprocessDefaultHeaders(cfg.Headers.Default),
	}
}

// FromConfig builds the dispatcher with the filesystem resolver, the process runner and
// the lister chosen by the config. The stderr of commands is forwarded to the logger.
func FromConfig(cfg *config.Config, logger zerolog.Logger) *Dispatcher {
	run := runner.Exec{
		Stderr:     logger.With().Str("stream", "stderr").Logger(),
		BufferSize: cfg.NET.WriteBufferSize,
	}

	var lister runner.Lister = runner.Native{}
	if cfg.FS.Listing == config.ListingCommand {
		lister = runner.Command{
			Runner: run,
			Argv:   cfg.FS.ListCommand,
		}
	}

	return New(cfg, resolve.NewOS(cfg.FS.Root), run, lister)
}

// Serve handles the connection. The logger is taken from the context via zerolog.Ctx. The
// connection itself is closed by the caller.
func (d *Dispatcher) Serve(ctx context.Context, client transport.Client) {
	log := zerolog.Ctx(ctx)
	start := time.Now()

	data, err := client.Read()
	if len(data) == 0 {
		log.Debug().Err(err).Msg("connection closed without a request")
		return
	}

	s := serializer.New(client, make([]byte, 0, d.cfg.NET.WriteBufferSize), d.defaultHeaders)
	request, err := http.Parse(data, d.cfg.Headers.Prealloc)
	request.Remote = client.Remote()
	if err == nil {
		err = d.respond(ctx, s, request)
	}

	if err != nil {
		d.fail(log, s, err)
	}

	log.Info().
		Str("line", request.Line).
		Str("path", request.Path).
		Stringer("kind", kind.Classify(request.Path)).
		Uint16("status", uint16(s.Code())).
		Int64("bytes", s.BodyLen()).
		Dur("took", time.Since(start)).
		Msg("served")
}

func (d *Dispatcher) respond(ctx context.Context, s *serializer.Serializer, request *http.Request) error {
	target, err := d.resolver.Resolve(request.Path)
	if err != nil {
		return err
	}

	switch target.Type {
	case resolve.Missing:
		if target.Unusual() {
			zerolog.Ctx(ctx).Debug().Err(target.Err).Msg("target is unreachable")
		}

		return status.ErrNotFound
	case resolve.Directory:
		return d.directory(ctx, s, target.Path)
	case resolve.Regular:
		return d.file(ctx, s, request, target)
	default:
		return status.ErrUnsupportedTarget
	}
}

func (d *Dispatcher) file(
	ctx context.Context, s *serializer.Serializer, request *http.Request, target resolve.Target,
) error {
	switch k := kind.Classify(target.Path); k {
	case kind.HTML, kind.PlainText:
		return produce.File(s, k, target.Path, d.cfg.NET.WriteBufferSize)
	case kind.JPEG, kind.GIF, kind.MP3:
		return produce.Whole(s, k, target.Path)
	case kind.MP4:
		if r, ok := byterange.Parse(request.Headers.Value("Range"), target.Size); ok {
			return produce.Ranged(s, k, target.Path, r)
		}

		return produce.Whole(s, k, target.Path)
	case kind.CGI:
		return d.cgi(ctx, s, target.Path)
	default:
		return status.ErrUnsupportedKind
	}
}

func (d *Dispatcher) cgi(ctx context.Context, s *serializer.Serializer, script string) error {
	argv := append(slices.Clone(d.cfg.CGI.Interpreter), script)
	proc, err := d.runner.Run(ctx, argv[0], argv[1:]...)
	if err != nil {
		return err
	}

	defer func() {
		if err := proc.Close(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("script", script).Msg("script failed")
		}
	}()

	return produce.Command(s, proc)
}

func (d *Dispatcher) directory(ctx context.Context, s *serializer.Serializer, dir string) error {
	listing, err := d.lister.List(ctx, dir)
	if err != nil {
		return err
	}

	defer func() {
		if err := listing.Close(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("dir", dir).Msg("listing command failed")
		}
	}()

	return produce.Directory(s, listing, d.liveListing)
}

// fail answers with an error page, unless the response has already begun. In the latter case
// nothing can be done except closing the connection.
func (d *Dispatcher) fail(log *zerolog.Logger, s *serializer.Serializer, err error) {
	if s.HeaderSent() {
		log.Warn().Err(err).Msg("response aborted")
		return
	}

	code := status.CodeOf(err)
	if code >= status.InternalServerError {
		log.Error().Err(err).Msg("request failed")
	} else {
		log.Debug().Err(err).Msg("request rejected")
	}

	if err = s.Error(code); err != nil {
		log.Debug().Err(err).Msg("cannot send the error page")
	}
}
