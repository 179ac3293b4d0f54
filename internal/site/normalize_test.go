package site

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"index.html", "/"},
		{"./index.html", "/"},
		{"about.html", "/about"},
		{"./about.html", "/about"},
		{"blog/index.html", "/blog/"},
		{"./blog/post1/index.html", "/blog/post1/"},
		{`.\servicios\index.html`, "/servicios/"},
		{`servicios\obra.html`, "/servicios/obra"},
		{"robots.txt", "/robots.txt"},
		{"blog//index.html", "/blog/"},
		{".//a///b.html", "/a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePath(tt.in))
		})
	}
}

func TestNormalizePath_IndexYieldsTrailingSlash(t *testing.T) {
	for _, in := range []string{"index.html", "a/index.html", "a/b/c/index.html", "./x/index.html"} {
		got := NormalizePath(in)
		assert.True(t, strings.HasPrefix(got, "/"), got)
		assert.True(t, strings.HasSuffix(got, "/"), got)
	}
}

func TestNormalizePath_Idempotent(t *testing.T) {
	for _, in := range []string{"about.html", "blog/index.html", "a//b.html", "index.html"} {
		once := NormalizePath(in)
		assert.Equal(t, once, NormalizePath(once))
	}
}

func TestTrimTrailingSlash(t *testing.T) {
	assert.Equal(t, "", TrimTrailingSlash("/"))
	assert.Equal(t, "/blog", TrimTrailingSlash("/blog/"))
	assert.Equal(t, "/about", TrimTrailingSlash("/about"))
}
