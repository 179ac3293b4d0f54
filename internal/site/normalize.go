package site

import (
	"regexp"
	"strings"
)

var repeatedSlashes = regexp.MustCompile(`/{2,}`)

// NormalizePath converts a site-relative file path into its URL path.
//
//	./folder/index.html -> /folder/
//	./file.html         -> /file
//	index.html          -> /
//
// The result always starts with "/" and never contains "//".
func NormalizePath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	path = strings.TrimPrefix(path, "./")

	switch {
	case strings.HasSuffix(path, "index.html"):
		path = strings.TrimSuffix(path, "index.html")
	case strings.HasSuffix(path, ".html"):
		path = strings.TrimSuffix(path, ".html")
	}

	return repeatedSlashes.ReplaceAllString("/"+path, "/")
}

// TrimTrailingSlash strips every trailing "/" so that /blog/ and /blog compare
// equal. The root "/" becomes the empty string.
func TrimTrailingSlash(urlPath string) string {
	return strings.TrimRight(urlPath, "/")
}
