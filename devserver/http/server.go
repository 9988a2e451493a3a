// CLASSIFICATION: COMMUNITY
// Filename: server.go v0.3
// Author: Lukas Bower
// Date Modified: 2026-10-19
// License: SPDX-License-Identifier: MIT OR Apache-2.0

// Package http serves a static tree with cross-origin isolation headers.
package http

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"isoserve/devserver/static"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

const (
	// DefaultBind keeps the server unreachable from other hosts.
	DefaultBind = "localhost"
	DefaultPort = 8000
)

// Logger abstracts logging for the server.
type Logger interface {
	Printf(string, ...any)
}

// Config holds server configuration.
type Config struct {
	Bind    string
	Port    int
	Root    string
	LogFile string
	Headers HeaderSet
}

// Server wraps the HTTP server and router.
type Server struct {
	cfg    Config
	log    Logger
	files  *static.Handler
	access *os.File
	router *chi.Mux
}

// New returns an initialized server. The serving root must exist.
func New(cfg Config, logger Logger) (*Server, error) {
	if cfg.Bind == "" {
		cfg.Bind = DefaultBind
	}
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if cfg.Headers == nil {
		cfg.Headers = IsolationHeaders
	}
	if logger == nil {
		logger = log.Default()
	}
	files, err := static.New(cfg.Root)
	if err != nil {
		return nil, err
	}
	s := &Server{cfg: cfg, log: logger, files: files}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			logger.Printf("open access log: %v", err)
		} else {
			s.access = f
		}
	}
	var out io.Writer
	if s.access != nil {
		out = s.access
	}
	s.router = routes(cfg, files, out, logger)
	return s, nil
}

// Router returns the underlying router, useful for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Addr returns the listening address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Bind, fmt.Sprint(s.cfg.Port))
}

// Close releases the serving root and the access log file.
func (s *Server) Close() error {
	err := s.files.Close()
	if s.access != nil {
		if cerr := s.access.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Start binds the configured address and serves until ctx is done.
// A bind failure is returned before any request is accepted.
func (s *Server) Start(ctx context.Context) error {
	l, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return errors.Wrapf(err, "bind %s", s.Addr())
	}
	return s.Serve(ctx, l)
}

// Serve runs the accept loop on l until ctx is done.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:  s.router,
		ErrorLog: log.New(logWriter{s.log}, "", 0),
		// "OPTIONS *" must reach the router like any other request.
		DisableGeneralOptionsHandler: true,
	}
	go func() {
		<-ctx.Done()
		ctxTo, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(ctxTo)
	}()
	s.log.Printf("serving %s on http://%s", s.files.Dir(), l.Addr())
	return srv.Serve(l)
}

// logWriter feeds net/http's internal error log into the server logger.
type logWriter struct {
	log Logger
}

func (w logWriter) Write(p []byte) (int, error) {
	w.log.Printf("%s", strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
