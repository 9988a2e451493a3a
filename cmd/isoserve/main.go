// CLASSIFICATION: COMMUNITY
// Filename: main.go v0.6
// Author: Lukas Bower
// Date Modified: 2026-10-19
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	devhttp "isoserve/devserver/http"
	"isoserve/devserver/watch"
	"isoserve/internal/tooling"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type options struct {
	Bind    string
	Port    int
	Root    string
	LogFile string
	Watch   bool
	Verbose bool
}

func defaultOptions() options {
	return options{
		Bind: devhttp.DefaultBind,
		Port: devhttp.DefaultPort,
		Root: ".",
	}
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Bind, "bind", o.Bind, "bind address (keep loopback unless the tree is safe to share)")
	fs.IntVar(&o.Port, "port", o.Port, "listen port")
	fs.StringVar(&o.Root, "root", o.Root, "directory to serve")
	fs.StringVar(&o.LogFile, "log-file", o.LogFile, "append access log lines to this file")
	fs.BoolVar(&o.Watch, "watch", o.Watch, "log changes under the served directory")
	fs.BoolVarP(&o.Verbose, "verbose", "v", o.Verbose, "enable debug logging")
}

func newLogger(verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetReportCaller(true)
	}
	return logger
}

func newCommand() *cobra.Command {
	opts := defaultOptions()
	root := tooling.NewRoot("isoserve", "Serve a directory with cross-origin isolation headers")
	root.Long = `Serve a directory over HTTP, adding the headers browsers require
before enabling SharedArrayBuffer:

  Cross-Origin-Opener-Policy: same-origin
  Cross-Origin-Embedder-Policy: require-corp
  Cross-Origin-Resource-Policy: cross-origin
  Permissions-Policy: storage-access=(self)

With no flags the current directory is served on localhost:8000.`
	opts.addFlags(root.Flags())
	root.RunE = func(cmd *cobra.Command, args []string) error {
		ctx, cancel := newSignalContext(cmd.Context())
		defer cancel()
		return run(ctx, opts, newLogger(opts.Verbose))
	}
	return root
}

func run(ctx context.Context, opts options, logger *logrus.Logger) error {
	cfg := devhttp.Config{
		Bind:    opts.Bind,
		Port:    opts.Port,
		Root:    opts.Root,
		LogFile: opts.LogFile,
	}
	srv, err := devhttp.New(cfg, logger)
	if err != nil {
		return err
	}
	defer srv.Close()

	if opts.Watch {
		w, err := watch.New(opts.Root, logger)
		if err != nil {
			return err
		}
		defer w.Close()
		go w.Run(ctx)
		logger.Debugf("watching %s", opts.Root)
	}

	if err := srv.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("server stopped")
	return nil
}

func main() {
	tooling.Execute(newCommand())
}
