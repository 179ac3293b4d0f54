package site

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ResolveFile maps a clean URL path to the file a static host would serve
// for it: /about -> about.html, /blog/ -> blog/index.html.
func ResolveFile(root, urlPath string) (string, bool) {
	clean := path.Clean("/" + urlPath)
	base := filepath.Join(root, filepath.FromSlash(clean))

	var candidates []string
	if strings.HasSuffix(urlPath, "/") || clean == "/" {
		candidates = []string{filepath.Join(base, "index.html")}
	} else {
		candidates = []string{
			base,
			base + ".html",
			filepath.Join(base, "index.html"),
		}
	}

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil && info.Mode().IsRegular() {
			return candidate, true
		}
	}
	return "", false
}

// Handler serves the files under root with clean URL resolution.
func Handler(root string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		file, ok := ResolveFile(root, r.URL.Path)
		if !ok {
			http.NotFound(w, r)
			return
		}

		f, err := os.Open(file)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	})
}
