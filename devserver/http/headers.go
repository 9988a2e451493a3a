// CLASSIFICATION: COMMUNITY
// Filename: headers.go v0.2
// Author: Lukas Bower
// Date Modified: 2026-10-19
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package http

import (
	"bufio"
	"io"
	"net"
	"net/http"
)

// Header is a single response header added to every reply.
type Header struct {
	Name  string
	Value string
}

// HeaderSet is an ordered list of headers applied to every response.
type HeaderSet []Header

// IsolationHeaders put a page into a cross-origin isolated context, which
// browsers require before exposing SharedArrayBuffer and high resolution timers.
var IsolationHeaders = HeaderSet{
	{Name: "Cross-Origin-Opener-Policy", Value: "same-origin"},
	{Name: "Cross-Origin-Embedder-Policy", Value: "require-corp"},
	{Name: "Cross-Origin-Resource-Policy", Value: "cross-origin"},
	{Name: "Permissions-Policy", Value: "storage-access=(self)"},
}

// apply uses Set so each header appears once however often it runs.
func (hs HeaderSet) apply(h http.Header) {
	for _, hdr := range hs {
		h.Set(hdr.Name, hdr.Value)
	}
}

// Middleware adds the set to every response passing through next,
// including error responses written deeper in the chain.
func (hs HeaderSet) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hs.apply(w.Header())
		next.ServeHTTP(&finalizingWriter{ResponseWriter: w, headers: hs}, r)
	})
}

// finalizingWriter re-applies the header set right before the status line
// is committed, so handlers that reset or replace headers cannot drop it.
type finalizingWriter struct {
	http.ResponseWriter
	headers HeaderSet
	done    bool
}

func (w *finalizingWriter) finalize() {
	if w.done {
		return
	}
	w.headers.apply(w.ResponseWriter.Header())
	w.done = true
}

func (w *finalizingWriter) WriteHeader(code int) {
	if code >= 100 && code < 200 {
		// informational responses leave the final header block open
		w.headers.apply(w.ResponseWriter.Header())
	} else {
		w.finalize()
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *finalizingWriter) Write(p []byte) (int, error) {
	w.finalize()
	return w.ResponseWriter.Write(p)
}

// ReadFrom keeps the sendfile path of the underlying writer available.
func (w *finalizingWriter) ReadFrom(src io.Reader) (int64, error) {
	w.finalize()
	if rf, ok := w.ResponseWriter.(io.ReaderFrom); ok {
		return rf.ReadFrom(src)
	}
	return io.Copy(struct{ io.Writer }{w.ResponseWriter}, src)
}

func (w *finalizingWriter) Flush() {
	w.finalize()
	if fl, ok := w.ResponseWriter.(http.Flusher); ok {
		fl.Flush()
	}
}

func (w *finalizingWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, http.ErrNotSupported
	}
	return hj.Hijack()
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *finalizingWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
