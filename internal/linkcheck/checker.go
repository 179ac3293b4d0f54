package linkcheck

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/samber/lo"

	"github.com/grupomymce/sitemap-tools/internal/site"
)

const (
	userAgent   = "sitemap-tools linkcheck/1.0"
	referrerKey = "referrer"
)

// BrokenLink is a same-site URL that did not answer with a success status.
type BrokenLink struct {
	URL      string `json:"url"`
	Status   int    `json:"status"`
	Referrer string `json:"referrer"`
	Error    string `json:"error,omitempty"`
}

// Report is the result of crawling the site from its root.
type Report struct {
	Visited int          `json:"visited"`
	Broken  []BrokenLink `json:"broken"`
	Orphans []string     `json:"orphans"`
}

// OK is true when nothing is broken and every page is reachable.
func (r *Report) OK() bool {
	return len(r.Broken) == 0 && len(r.Orphans) == 0
}

type Checker struct {
	collector   *site.Collector
	sources     *site.Collector
	parallelism int
}

func NewChecker(collector *site.Collector, parallelism int) *Checker {
	if parallelism < 1 {
		parallelism = 1
	}
	return &Checker{
		collector:   collector,
		parallelism: parallelism,
	}
}

// WithLinkSources makes the checker also check links on every page sources
// finds, such as error pages that are left out of the sitemap. Only the
// checker's own pages can be orphans.
func (c *Checker) WithLinkSources(sources *site.Collector) *Checker {
	c.sources = sources
	return c
}

// Check serves the site root on a loopback listener and crawls it.
func (c *Checker) Check(ctx context.Context) (*Report, error) {
	pages, err := c.collector.Collect()
	if err != nil {
		return nil, err
	}
	sources := pages
	if c.sources != nil {
		if sources, err = c.sources.Collect(); err != nil {
			return nil, err
		}
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("failed to listen: %w", err)
	}

	server := &http.Server{
		Handler:      site.Handler(c.collector.Root),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("linkcheck server: %v", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	return c.Crawl(ctx, "http://"+ln.Addr().String(), pages, sources)
}

// Crawl follows links from base+"/" without leaving base's host, then
// reports broken URLs and the pages that were never reached. Every page in
// pages or sources that the crawl missed is visited afterwards so its own
// links are checked too.
func (c *Checker) Crawl(ctx context.Context, base string, pages, sources []site.Page) (*Report, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", base, err)
	}

	collector := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.AllowedDomains(baseURL.Hostname()),
		colly.Async(true),
	)
	collector.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: c.parallelism,
	})

	var (
		mu      sync.Mutex
		visited int
		reached = make(map[string]bool)
		broken  []BrokenLink
	)

	collector.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
		}
	})

	collector.OnResponse(func(r *colly.Response) {
		mu.Lock()
		defer mu.Unlock()
		visited++
		reached[pageKey(r.Request.URL.Path)] = true
	})

	collector.OnError(func(r *colly.Response, err error) {
		if r == nil || r.Request == nil {
			return
		}
		link := BrokenLink{
			URL:      r.Request.URL.RequestURI(),
			Status:   r.StatusCode,
			Referrer: r.Ctx.Get(referrerKey),
		}
		if r.StatusCode == 0 {
			link.Error = err.Error()
		}
		mu.Lock()
		defer mu.Unlock()
		visited++
		broken = append(broken, link)
	})

	collector.OnHTML("a[href], link[href], img[src], script[src]", func(e *colly.HTMLElement) {
		ref := e.Attr("href")
		if ref == "" {
			ref = e.Attr("src")
		}
		if skipReference(ref) {
			return
		}

		target := e.Request.AbsoluteURL(ref)
		if target == "" {
			return
		}

		reqCtx := colly.NewContext()
		reqCtx.Put(referrerKey, e.Request.URL.RequestURI())
		// Already-visited and foreign-host errors are expected.
		collector.Request(http.MethodGet, target, nil, reqCtx, nil)
	})

	root := strings.TrimRight(base, "/")
	if err := collector.Visit(root + "/"); err != nil {
		return nil, fmt.Errorf("failed to start crawl: %w", err)
	}
	collector.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mu.Lock()
	orphans := lo.FilterMap(pages, func(p site.Page, _ int) (string, bool) {
		return p.Path, !reached[pageKey(p.Path)]
	})
	unreached := lo.Uniq(lo.FilterMap(append(slices.Clone(pages), sources...), func(p site.Page, _ int) (string, bool) {
		return p.Path, !reached[pageKey(p.Path)]
	}))
	mu.Unlock()
	slices.Sort(orphans)

	for _, path := range unreached {
		collector.Visit(root + (&url.URL{Path: path}).EscapedPath())
	}
	collector.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slices.SortFunc(broken, func(a, b BrokenLink) int {
		return strings.Compare(a.URL+"\x00"+a.Referrer, b.URL+"\x00"+b.Referrer)
	})

	return &Report{
		Visited: visited,
		Broken:  broken,
		Orphans: orphans,
	}, nil
}

// pageKey maps a served URL path onto the normalized page path so that
// /about, /about.html and /blog, /blog/, /blog/index.html compare equal.
func pageKey(urlPath string) string {
	return site.TrimTrailingSlash(site.NormalizePath(strings.TrimPrefix(urlPath, "/")))
}

func skipReference(ref string) bool {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return true
	}
	for _, prefix := range []string{"#", "mailto:", "tel:", "data:", "javascript:"} {
		if strings.HasPrefix(ref, prefix) {
			return true
		}
	}
	return false
}
