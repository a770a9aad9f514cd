// Package files registers the "files" handler kind, which serves static files
// from a directory inside the namespace.
//
// Options:
//   - dir: directory relative to the namespace directory (required, must exist)
//   - file: serve this single file instead of reading the name from the path
//   - wildcard: path wildcard holding the file name (default "path")
//
// A directory is answered with its index.html, or 404 when it has none.
package files

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/JaimeStill/app-host/pkg/namespace"
)

// Kind is the handler kind name used in routing definitions.
const Kind = "files"

const indexFile = "index.html"

func init() {
	namespace.Register(Kind, New, "Serves static files from a namespace directory")
}

// New builds a file server rooted at the route's dir option.
func New(ns namespace.Namespace, route namespace.Route) (http.Handler, error) {
	rel := route.Option("dir", "")
	if rel == "" {
		return nil, fmt.Errorf("dir option required")
	}
	if !filepath.IsLocal(filepath.FromSlash(rel)) {
		return nil, fmt.Errorf("dir %q must stay inside the namespace", rel)
	}

	root := ns.Path(rel)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("dir %q is not a directory", rel)
	}

	fsys := os.DirFS(root)
	file := route.Option("file", "")
	wildcard := route.Option("wildcard", "path")

	if file != "" && !fs.ValidPath(file) {
		return nil, fmt.Errorf("file %q is not a valid path", file)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := file
		if name == "" {
			name = strings.TrimSuffix(r.PathValue(wildcard), "/")
			if name == "" {
				name = "."
			}
		}

		if !fs.ValidPath(name) {
			http.NotFound(w, r)
			return
		}

		serve(w, r, fsys, name)
	}), nil
}

// serve writes name without the redirects http.ServeFileFS issues for
// directories and index files, since the handler never sees the client path.
func serve(w http.ResponseWriter, r *http.Request, fsys fs.FS, name string) {
	f, info, err := open(fsys, name)
	if err == nil && info.IsDir() {
		f.Close()
		f, info, err = open(fsys, path.Join(name, indexFile))
		if err == nil && info.IsDir() {
			f.Close()
			err = fs.ErrNotExist
		}
	}
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, fs.ErrNotExist):
			status = http.StatusNotFound
		case errors.Is(err, fs.ErrPermission):
			status = http.StatusForbidden
		}
		http.Error(w, http.StatusText(status), status)
		return
	}
	defer f.Close()

	content, ok := f.(io.ReadSeeker)
	if !ok {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), content)
}

func open(fsys fs.FS, name string) (fs.File, fs.FileInfo, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return f, info, nil
}
