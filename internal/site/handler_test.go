package site

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/grupomymce/sitemap-tools/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFile(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"index.html":      "home",
		"about.html":      "about",
		"blog/index.html": "blog",
		"css/site.css":    "body{}",
	})

	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"/", "index.html", true},
		{"/about", "about.html", true},
		{"/about.html", "about.html", true},
		{"/blog/", "blog/index.html", true},
		{"/blog", "blog/index.html", true},
		{"/css/site.css", "css/site.css", true},
		{"/missing", "", false},
		{"/../../etc/passwd", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := ResolveFile(root, tt.path)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, filepath.Join(root, filepath.FromSlash(tt.want)), got)
			}
		})
	}
}

func TestHandler(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"index.html":      "home",
		"blog/index.html": "blog",
	})

	srv := httptest.NewServer(Handler(root))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/blog/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "blog", string(body))

	resp, err = http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
