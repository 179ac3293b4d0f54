package sitemap

import (
	"fmt"
	"html"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/grupomymce/sitemap-tools/internal/models"
	"github.com/grupomymce/sitemap-tools/internal/site"
)

var locPattern = regexp.MustCompile(`<loc>(.*?)</loc>`)

// ExtractLocs returns the contents of every <loc> element in document order.
func ExtractLocs(content string) []string {
	matches := locPattern.FindAllStringSubmatch(content, -1)
	return lo.Map(matches, func(m []string, _ int) string {
		return html.UnescapeString(m[1])
	})
}

// StripDomain turns an absolute loc on domain into a site path. Locs on other
// hosts are returned unchanged.
func StripDomain(loc, domain string) string {
	domain = strings.TrimRight(domain, "/")
	if domain == "" {
		return loc
	}
	return strings.TrimPrefix(loc, domain)
}

// Compare diffs actual page paths against sitemap paths after trailing-slash
// normalization. Both results are sorted and never nil.
func Compare(actual, listed []string) (missing, extra []string) {
	missing, extra = lo.Difference(normalizeSet(actual), normalizeSet(listed))
	if missing == nil {
		missing = []string{}
	}
	if extra == nil {
		extra = []string{}
	}
	slices.Sort(missing)
	slices.Sort(extra)
	return missing, extra
}

func normalizeSet(paths []string) []string {
	return lo.Uniq(lo.Map(paths, func(p string, _ int) string {
		return site.TrimTrailingSlash(p)
	}))
}

// Report is the outcome of comparing a sitemap to the files on disk.
type Report struct {
	Actual  int      `json:"actual"`
	Listed  int      `json:"listed"`
	Missing []string `json:"missing"`
	Extra   []string `json:"extra"`
	ReadErr error    `json:"-"`
}

// InSync is true when the sitemap and the file structure agree.
func (r *Report) InSync() bool {
	return len(r.Missing) == 0 && len(r.Extra) == 0
}

// Print writes the human-readable report.
func (r *Report) Print(w io.Writer) {
	if r.ReadErr != nil {
		fmt.Fprintf(w, "Error reading sitemap: %v\n", r.ReadErr)
	}
	fmt.Fprintf(w, "Actual Pages Found: %d\n", r.Actual)
	fmt.Fprintf(w, "Sitemap URLs Found: %d\n", r.Listed)

	if len(r.Missing) > 0 {
		fmt.Fprintln(w, "\n❌ MISSING in Sitemap (Files exist but not in XML):")
		for _, p := range r.Missing {
			fmt.Fprintf(w, " - %s\n", p)
		}
	}

	if len(r.Extra) > 0 {
		fmt.Fprintln(w, "\n⚠️ EXTRA in Sitemap (In XML but file not found?):")
		for _, p := range r.Extra {
			fmt.Fprintf(w, " - %s\n", p)
		}
	}

	if r.InSync() {
		fmt.Fprintln(w, "\n✅ Sitemap is perfectly synced with file structure!")
	}
}

// Verifier compares a sitemap file with the pages a Collector finds.
type Verifier struct {
	collector *site.Collector
	domain    string
}

func NewVerifier(collector *site.Collector, domain string) *Verifier {
	return &Verifier{
		collector: collector,
		domain:    domain,
	}
}

// ActualPages returns the URL paths of the pages on disk.
func (v *Verifier) ActualPages() ([]string, error) {
	pages, err := v.collector.Collect()
	if err != nil {
		return nil, err
	}
	return site.Paths(pages), nil
}

// SitemapPaths reads the sitemap at path and returns its locs with the
// domain stripped.
func (v *Verifier) SitemapPaths(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return lo.Map(ExtractLocs(string(content)), func(loc string, _ int) string {
		return StripDomain(loc, v.domain)
	}), nil
}

// Verify compares the sitemap at path with the site. An unreadable sitemap is
// recorded in Report.ReadErr and treated as empty; only a failed walk of the
// site returns an error.
func (v *Verifier) Verify(path string) (*Report, error) {
	actual, err := v.ActualPages()
	if err != nil {
		return nil, err
	}

	report := &Report{}
	listed, err := v.SitemapPaths(path)
	if err != nil {
		report.ReadErr = err
	}

	report.Actual = len(normalizeSet(actual))
	report.Listed = len(normalizeSet(listed))
	report.Missing, report.Extra = Compare(actual, listed)
	return report, nil
}

// Run converts the report into a history record for siteRoot.
func (r *Report) Run(siteRoot string) *models.Run {
	run := models.NewRun(models.RunVerify, siteRoot)
	run.PageCount = r.Actual
	run.Missing = r.Missing
	run.Extra = r.Extra
	return run
}
