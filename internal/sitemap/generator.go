package sitemap

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/grupomymce/sitemap-tools/internal/models"
	"github.com/grupomymce/sitemap-tools/internal/site"
)

const (
	PriorityRoot   = "1.00"
	PriorityNested = "0.64"
	PriorityPage   = "0.80"

	dateLayout = "2006-01-02"
)

// Generator builds sitemap entries from the pages a Collector finds.
type Generator struct {
	collector  *site.Collector
	domain     string
	changeFreq string
	now        func() time.Time
}

func NewGenerator(collector *site.Collector, domain string) *Generator {
	return &Generator{
		collector: collector,
		domain:    strings.TrimRight(domain, "/"),
		now:       time.Now,
	}
}

// WithClock replaces the source of the lastmod date.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// WithChangeFreq sets the changefreq hint on every entry. Empty omits it.
func (g *Generator) WithChangeFreq(freq string) *Generator {
	g.changeFreq = freq
	return g
}

// Priority ranks the site root highest and pages more than one directory
// deep lowest.
func Priority(urlPath string) string {
	switch {
	case urlPath == "/":
		return PriorityRoot
	case strings.Count(urlPath, "/") > 2:
		return PriorityNested
	default:
		return PriorityPage
	}
}

// URLs collects the site and returns one sitemap entry per page.
func (g *Generator) URLs() ([]models.URL, error) {
	pages, err := g.collector.Collect()
	if err != nil {
		return nil, err
	}

	today := g.now().Format(dateLayout)
	urls := make([]models.URL, 0, len(pages))
	for _, page := range pages {
		urls = append(urls, models.URL{
			Loc:        g.domain + page.Path,
			LastMod:    today,
			ChangeFreq: g.changeFreq,
			Priority:   Priority(page.Path),
		})
	}
	return urls, nil
}

// Render serializes urls as a sitemaps.org urlset document.
func Render(urls []models.URL) ([]byte, error) {
	sm := models.NewSitemap()
	sm.URLs = urls

	out, err := xml.MarshalIndent(sm, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// Result summarizes a generate run.
type Result struct {
	Output string
	URLs   []models.URL
}

// Generate collects the site, writes the sitemap to output (overwriting it)
// and prints a summary to w.
func (g *Generator) Generate(w io.Writer, output string) (*Result, error) {
	urls, err := g.URLs()
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "Found %d pages.\n", len(urls))

	data, err := Render(urls)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(output, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", output, err)
	}
	fmt.Fprintf(w, "✅ Generated %s successfully.\n", output)

	return &Result{Output: output, URLs: urls}, nil
}

// Run converts the result into a history record for siteRoot.
func (r *Result) Run(siteRoot string) *models.Run {
	run := models.NewRun(models.RunGenerate, siteRoot)
	run.PageCount = len(r.URLs)
	return run
}
