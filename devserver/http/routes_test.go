// CLASSIFICATION: COMMUNITY
// Filename: routes_test.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-19
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package http

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestAccessLogWriteFailureLoggedOnce(t *testing.T) {
	logger, hook := test.NewNullLogger()
	h := accessLogger(failingWriter{}, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	for i := 0; i < 3; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/a.js", nil))
	}
	var failures int
	for _, e := range hook.AllEntries() {
		if strings.HasPrefix(e.Message, "write access log: disk full") {
			failures++
		}
	}
	assert.Equal(t, 1, failures)
}

func TestCloseReleasesAccessLog(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "access.log")
	logger, _ := test.NewNullLogger()
	srv, err := New(Config{Root: t.TempDir(), LogFile: logPath}, logger)
	require.NoError(t, err)
	require.NotNil(t, srv.access)

	require.NoError(t, srv.Close())
	_, err = srv.access.WriteString("late\n")
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestUnopenableAccessLogIsSkipped(t *testing.T) {
	logger, hook := test.NewNullLogger()
	srv, err := New(Config{Root: t.TempDir(), LogFile: filepath.Join(t.TempDir(), "no", "such", "access.log")}, logger)
	require.NoError(t, err)
	defer srv.Close()
	assert.Nil(t, srv.access)
	require.NotNil(t, hook.LastEntry())
	assert.Contains(t, hook.LastEntry().Message, "open access log")
}

func TestNotFoundTargetsWithOtherMethods(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.URL.Path = "*"
	notFound(rec, req)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)

	rec = httptest.NewRecorder()
	notFound(rec, httptest.NewRequest(http.MethodGet, "/gone", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHijackUnsupported(t *testing.T) {
	fw := &finalizingWriter{ResponseWriter: httptest.NewRecorder(), headers: IsolationHeaders}
	var (
		conn net.Conn
		rw   *bufio.ReadWriter
		err  error
	)
	conn, rw, err = fw.Hijack()
	assert.Nil(t, conn)
	assert.Nil(t, rw)
	assert.ErrorIs(t, err, http.ErrNotSupported)
}
