package site

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// VerificationPrefix marks search-console ownership files such as
// google1a2b3c.html. They are never site pages.
const VerificationPrefix = "google"

// Page is an HTML file found under the site root.
type Page struct {
	File string `json:"file"` // slash-separated, relative to the root
	Path string `json:"path"` // normalized URL path
}

// Collector walks a site root for content pages.
type Collector struct {
	Root     string
	SkipDirs []string
	Exclude  []string
}

func NewCollector(root string, skipDirs, exclude []string) *Collector {
	if root == "" {
		root = "."
	}
	return &Collector{
		Root:     root,
		SkipDirs: skipDirs,
		Exclude:  exclude,
	}
}

// Collect returns every content page below the root in lexical walk order.
func (c *Collector) Collect() ([]Page, error) {
	var pages []Page

	err := filepath.WalkDir(c.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(c.Root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && c.skipDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if !c.IsContentFile(d.Name()) {
			return nil
		}

		pages = append(pages, Page{
			File: rel,
			Path: NormalizePath(rel),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", c.Root, err)
	}

	return pages, nil
}

// IsContentFile reports whether a file name is an HTML page that belongs in
// the sitemap.
func (c *Collector) IsContentFile(name string) bool {
	if !strings.HasSuffix(name, ".html") {
		return false
	}
	if lo.Contains(c.Exclude, name) {
		return false
	}
	return !strings.HasPrefix(name, VerificationPrefix)
}

func (c *Collector) skipDir(rel string) bool {
	return lo.SomeBy(c.SkipDirs, func(dir string) bool {
		return dir != "" && strings.Contains(rel, dir)
	})
}

// Paths returns the URL paths of pages.
func Paths(pages []Page) []string {
	return lo.Map(pages, func(p Page, _ int) string {
		return p.Path
	})
}
