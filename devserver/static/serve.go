// CLASSIFICATION: COMMUNITY
// Filename: serve.go v0.2
// Author: Lukas Bower
// Date Modified: 2026-10-19
// License: SPDX-License-Identifier: MIT OR Apache-2.0

// Package static serves a directory tree confined to a single root.
package static

import (
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
)

// Handler serves files from a root directory. Every lookup goes through
// an os.Root, so neither ".." segments nor symlinks reach outside it.
type Handler struct {
	dir  string
	root *os.Root
	fsys fs.FS
	next http.Handler
}

// New opens dir and returns a handler serving it.
func New(dir string) (*Handler, error) {
	if dir == "" {
		dir = "."
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "open serving root %q", dir)
	}
	fsys := confinedFS{root.FS()}
	return &Handler{
		dir:  dir,
		root: root,
		fsys: fsys,
		next: http.FileServer(http.FS(fsys)),
	}, nil
}

// Dir returns the directory the handler was opened on.
func (h *Handler) Dir() string {
	return h.dir
}

// Close releases the root.
func (h *Handler) Close() error {
	return h.root.Close()
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if ctype := h.sniff(r.URL.Path); ctype != "" {
		w.Header().Set("Content-Type", ctype)
	}
	h.next.ServeHTTP(w, r)
}

// sniff returns a detected content type for a regular file whose extension
// does not map to a known type. It returns "" when the file server's own
// extension lookup should apply.
func (h *Handler) sniff(urlPath string) string {
	name := path.Clean("/" + urlPath)
	if strings.HasSuffix(urlPath, "/") || mime.TypeByExtension(path.Ext(name)) != "" {
		return ""
	}
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return ""
	}
	f, err := h.fsys.Open(name)
	if err != nil {
		return ""
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil || !fi.Mode().IsRegular() {
		return ""
	}
	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return ""
	}
	return mt.String()
}

// confinedFS reports lookups rejected by the root as missing files, so an
// escape attempt is answered exactly like a path that does not exist.
type confinedFS struct {
	fs.FS
}

func (c confinedFS) Open(name string) (fs.File, error) {
	f, err := c.FS.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return f, nil
}
