package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/indigo-web/webserv"
	"github.com/indigo-web/webserv/config"
)

func main() {
	var (
		addr     = flag.String("addr", webserv.DefaultAddr, "address to listen on")
		root     = flag.String("root", "", "document root, overrides the config file")
		cfgPath  = flag.String("config", "", "path to a JSON, TOML or YAML config file")
		pretty   = flag.Bool("pretty", false, "human-friendly colored logs instead of JSON")
		levelStr = flag.String("level", "info", "log level")
	)
	flag.Parse()

	log, err := newLogger(*pretty, *levelStr)
	if err != nil {
		_, _ = color.New(color.FgRed).Fprintln(os.Stderr, "webserv:", err)
		os.Exit(2)
	}

	cfg, err := loadConfig(*cfgPath, *root)
	if err != nil {
		log.Fatal().Err(err).Str("path", *cfgPath).Msg("cannot load config")
	}

	app := webserv.New(*addr).
		Tune(cfg).
		Logger(log)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	app.NotifyOnStart(func() {
		go func() {
			sig := <-signals
			log.Info().Stringer("signal", sig).Msg("stopping")
			app.Stop()
		}()
	})

	if err = app.Serve(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}

	log.Info().Msg("stopped")
}

func newLogger(pretty bool, levelStr string) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		return zerolog.Logger{}, err
	}

	var log zerolog.Logger
	if pretty {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	} else {
		log = zerolog.New(os.Stderr)
	}

	return log.Level(level).With().Timestamp().Logger(), nil
}

func loadConfig(path, root string) (cfg *config.Config, err error) {
	cfg = config.Default()
	if len(path) > 0 {
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	if len(root) > 0 {
		cfg.FS.Root = root
	}

	return cfg, nil
}
