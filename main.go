package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"

	"github.com/jmoiron/rjview/internal/app"
)

// version is set at build time via -ldflags; defaults to dev.
var version = "dev"

func main() {
	var (
		cfg         app.Config
		showVersion bool
		check       bool
		quit        bool
	)

	cfg.RegisterFlags(flag.CommandLine)
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.BoolVar(&check, "check", false, "decode every document, print failures, and exit non-zero if any failed")
	flag.BoolVarP(&quit, "quit", "q", false, "load the library, then exit without serving")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: rjview [options] <documents-dir>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Println(version)
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	logger := newLogger(cfg.Verbose)

	abs, err := filepath.Abs(flag.Arg(0))
	if err != nil {
		fatal(logger, "resolve dir", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		fatal(logger, "invalid directory", err)
	}
	if !info.IsDir() {
		fatal(logger, "invalid directory", errors.Errorf("not a directory: %s", abs))
	}

	level.Debug(logger).Log("msg", "starting", "version", version, "verbosity", cfg.Verbose, "max_depth", cfg.Decoder.MaxDepth)

	a, err := app.New(abs, cfg, logger)
	if err != nil {
		fatal(logger, "init", err)
	}
	lib := a.Library()

	if check {
		if err := lib.Err(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("%d documents decoded\n", len(lib.Docs))
		return
	}
	if quit {
		level.Info(logger).Log("msg", "initialized successfully; quitting", "parsed", len(lib.Docs), "failed", len(lib.Failures))
		return
	}

	level.Info(logger).Log("msg", "listening", "addr", "http://"+cfg.Addr, "version", version)
	if err := httpListenAndServe(cfg.Addr, a.Router()); err != nil {
		fatal(logger, "server", err)
	}
}

func newLogger(verbose int) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	if verbose > 0 {
		return level.NewFilter(logger, level.AllowDebug())
	}
	return level.NewFilter(logger, level.AllowInfo())
}

func fatal(logger log.Logger, msg string, err error) {
	level.Error(logger).Log("msg", msg, "err", err)
	os.Exit(1)
}

// httpListenAndServe exists to facilitate testing/mocking if desired.
var httpListenAndServe = func(addr string, h http.Handler) error {
	return http.ListenAndServe(addr, h)
}
