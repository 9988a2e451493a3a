// CLASSIFICATION: COMMUNITY
// Filename: routes.go v0.3
// Author: Lukas Bower
// Date Modified: 2026-10-19
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package http

import (
	"fmt"
	"io"
	"sync"
	"time"

	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func routes(cfg Config, files stdhttp.Handler, access io.Writer, log Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(cfg.Headers.Middleware)
	r.Use(accessLogger(access, log))
	r.Use(middleware.Recoverer)

	r.Method(stdhttp.MethodGet, "/*", files)
	r.Method(stdhttp.MethodHead, "/*", files)
	r.MethodNotAllowed(unsupportedMethod)
	r.NotFound(notFound)
	return r
}

// notFound sees request targets the tree cannot match, such as "OPTIONS *".
func notFound(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	if r.Method != stdhttp.MethodGet && r.Method != stdhttp.MethodHead {
		unsupportedMethod(w, r)
		return
	}
	stdhttp.NotFound(w, r)
}

func unsupportedMethod(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	msg := fmt.Sprintf("Unsupported method ('%s')", r.Method)
	stdhttp.Error(w, msg, stdhttp.StatusNotImplemented)
}

// accessLogger records one line per request. With out set the same line is
// appended there as well; the first failed append is logged.
func accessLogger(out io.Writer, log Logger) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		var failed sync.Once
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			status := ww.Status()
			if status == 0 {
				status = stdhttp.StatusOK
			}
			rec := fmt.Sprintf("%s %q %d %d %s", r.RemoteAddr, r.Method+" "+r.RequestURI+" "+r.Proto,
				status, ww.BytesWritten(), time.Since(start).Round(time.Microsecond))
			log.Printf("%s", rec)
			if out == nil {
				return
			}
			if _, err := io.WriteString(out, rec+"\n"); err != nil {
				failed.Do(func() { log.Printf("write access log: %v", err) })
			}
		})
	}
}
