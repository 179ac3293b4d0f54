package sitemap

import (
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/grupomymce/sitemap-tools/internal/models"
	"github.com/grupomymce/sitemap-tools/internal/site"
	"github.com/grupomymce/sitemap-tools/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDomain = "https://www.grupomymce.com"

var (
	generatorExclude = []string{"404.html", "index_clean_preview.html", "test.html", "instagram-test.html", "google"}
	verifierExclude  = []string{"index_clean_preview.html", "test.html", "404.html"}
	skipDirs         = []string{"node_modules"}
)

func fixedClock() time.Time {
	return time.Date(2026, time.October, 19, 15, 4, 5, 0, time.UTC)
}

func newTestGenerator(root string) *Generator {
	return NewGenerator(site.NewCollector(root, skipDirs, generatorExclude), testDomain).WithClock(fixedClock)
}

func TestPriority(t *testing.T) {
	assert.Equal(t, "1.00", Priority("/"))
	assert.Equal(t, "0.80", Priority("/about"))
	assert.Equal(t, "0.80", Priority("/blog/"))
	assert.Equal(t, "0.80", Priority("/blog/post"))
	assert.Equal(t, "0.64", Priority("/blog/post1/"))
	assert.Equal(t, "0.64", Priority("/a/b/c"))
}

func TestGenerator_URLs(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"index.html":            "home",
		"about.html":            "about",
		"blog/index.html":       "blog",
		"blog/post1/index.html": "post",
		"google12345.html":      "verify",
		"404.html":              "missing",
	})

	urls, err := newTestGenerator(root).URLs()
	require.NoError(t, err)
	require.Len(t, urls, 4)

	priorities := make(map[string]string)
	for _, u := range urls {
		assert.Equal(t, "2026-10-19", u.LastMod)
		priorities[u.Loc] = u.Priority
	}

	assert.Equal(t, map[string]string{
		"https://www.grupomymce.com/":            "1.00",
		"https://www.grupomymce.com/about":       "0.80",
		"https://www.grupomymce.com/blog/":       "0.80",
		"https://www.grupomymce.com/blog/post1/": "0.64",
	}, priorities)
}

func TestGenerator_ChangeFreq(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"index.html": "home",
		"about.html": "about",
	})

	urls, err := newTestGenerator(root).WithChangeFreq("monthly").URLs()
	require.NoError(t, err)
	require.Len(t, urls, 2)
	for _, u := range urls {
		assert.Equal(t, "monthly", u.ChangeFreq)
	}

	data, err := Render(urls)
	require.NoError(t, err)
	assert.Contains(t, string(data), "    <lastmod>2026-10-19</lastmod>\n    <changefreq>monthly</changefreq>\n    <priority>")
}

func TestRender(t *testing.T) {
	data, err := Render([]models.URL{
		{Loc: "https://www.grupomymce.com/", LastMod: "2026-10-19", Priority: "1.00"},
	})
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, out, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)
	assert.Contains(t, out, `xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"`)
	assert.Contains(t, out, `xsi:schemaLocation="http://www.sitemaps.org/schemas/sitemap/0.9 http://www.sitemaps.org/schemas/sitemap/0.9/sitemap.xsd"`)
	assert.Contains(t, out, "  <url>\n    <loc>https://www.grupomymce.com/</loc>\n    <lastmod>2026-10-19</lastmod>\n    <priority>1.00</priority>\n  </url>")
	assert.NotContains(t, out, "changefreq")

	var parsed models.Sitemap
	require.NoError(t, xml.Unmarshal(data, &parsed))
	require.Len(t, parsed.URLs, 1)
	assert.Equal(t, "1.00", parsed.URLs[0].Priority)
}

func TestGenerator_Generate(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"index.html":  "home",
		"about.html":  "about",
		"sitemap.xml": "stale",
	})
	output := filepath.Join(root, "sitemap.xml")

	var buf bytes.Buffer
	result, err := newTestGenerator(root).Generate(&buf, output)
	require.NoError(t, err)

	assert.Len(t, result.URLs, 2)
	assert.Contains(t, buf.String(), "Found 2 pages.")
	assert.Contains(t, buf.String(), "Generated "+output+" successfully.")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
	assert.Equal(t, []string{testDomain + "/about", testDomain + "/"}, ExtractLocs(string(data)))
}

func TestGenerator_GenerateWalkError(t *testing.T) {
	g := newTestGenerator(filepath.Join(t.TempDir(), "missing"))

	var buf bytes.Buffer
	_, err := g.Generate(&buf, filepath.Join(t.TempDir(), "sitemap.xml"))
	assert.Error(t, err)
	assert.Empty(t, buf.String())
}
