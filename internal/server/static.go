package server

import (
	"bytes"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

type staticFile struct {
	data        []byte
	contentType string
}

// staticHandler serves an in-memory copy of the frontend with HTML, CSS and
// JavaScript minified.
type staticHandler struct {
	files   map[string]staticFile
	modTime time.Time
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFuncRegexp(regexp.MustCompile(`^(application|text)/(x-)?(java|ecma)script$`), js.Minify)
	return m
}

func newStaticHandler(fsys fs.FS) (*staticHandler, error) {
	m := newMinifier()
	h := &staticHandler{
		files:   make(map[string]staticFile),
		modTime: time.Now(),
	}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}

		contentType := mime.TypeByExtension(path.Ext(p))
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}
		mediaType, _, _ := strings.Cut(contentType, ";")

		switch mediaType {
		case "text/html", "text/css", "text/javascript", "application/javascript":
			out, err := m.Bytes(mediaType, data)
			if err != nil {
				return fmt.Errorf("minify %s: %w", p, err)
			}
			data = out
		}

		h.files["/"+p] = staticFile{data: data, contentType: contentType}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (h *staticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p := path.Clean("/" + r.URL.Path)
	if strings.HasSuffix(p, "/") {
		p += "index.html"
	}
	f, ok := h.files[p]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", f.contentType)
	http.ServeContent(w, r, path.Base(p), h.modTime, bytes.NewReader(f.data))
}
