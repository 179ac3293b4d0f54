package audit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/grupomymce/sitemap-tools/internal/site"
)

type ImageIssue struct {
	File  string `json:"file"`
	Count int    `json:"count"`
}

type CanonicalIssue struct {
	File      string `json:"file"`
	Canonical string `json:"canonical"`
	Expected  string `json:"expected"`
}

type Summary struct {
	TotalFiles      int `json:"total_files"`
	FilesWithIssues int `json:"files_with_issues"`
	TotalIssues     int `json:"total_issues"`
}

type SEO struct {
	MissingTitle           []string         `json:"missing_title"`
	MissingMetaDescription []string         `json:"missing_meta_description"`
	MissingH1              []string         `json:"missing_h1"`
	MultipleH1             []string         `json:"multiple_h1"`
	DuplicateTitles        map[string]int   `json:"duplicate_titles"`
	CanonicalMismatch      []CanonicalIssue `json:"canonical_mismatch"`
	NoIndex                []string         `json:"noindex"`
}

type Accessibility struct {
	ImagesMissingAlt []ImageIssue `json:"images_missing_alt"`
}

// Report aggregates the audit of every page on the site.
type Report struct {
	Summary       Summary       `json:"summary"`
	SEO           SEO           `json:"seo"`
	Accessibility Accessibility `json:"accessibility"`
	Pages         []*PageInfo   `json:"pages"`
}

// Auditor parses every page a Collector finds.
type Auditor struct {
	collector *site.Collector
	domain    string
}

func NewAuditor(collector *site.Collector, domain string) *Auditor {
	return &Auditor{
		collector: collector,
		domain:    strings.TrimRight(domain, "/"),
	}
}

// Audit parses each page and builds the report. A canonical link is only
// checked when present; pages without one are not flagged.
func (a *Auditor) Audit() (*Report, error) {
	pages, err := a.collector.Collect()
	if err != nil {
		return nil, err
	}

	report := &Report{
		SEO: SEO{DuplicateTitles: make(map[string]int)},
	}
	titles := make(map[string][]string)

	for _, page := range pages {
		info, err := a.parseFile(page)
		if err != nil {
			return nil, err
		}
		report.Pages = append(report.Pages, info)

		issues := 0
		if info.Title == "" {
			report.SEO.MissingTitle = append(report.SEO.MissingTitle, page.File)
			issues++
		} else {
			titles[info.Title] = append(titles[info.Title], page.File)
		}

		if info.Description == "" {
			report.SEO.MissingMetaDescription = append(report.SEO.MissingMetaDescription, page.File)
			issues++
		}

		switch {
		case info.H1Count == 0:
			report.SEO.MissingH1 = append(report.SEO.MissingH1, page.File)
			issues++
		case info.H1Count > 1:
			report.SEO.MultipleH1 = append(report.SEO.MultipleH1, page.File)
			issues++
		}

		if info.ImagesMissingAlt > 0 {
			report.Accessibility.ImagesMissingAlt = append(report.Accessibility.ImagesMissingAlt,
				ImageIssue{File: page.File, Count: info.ImagesMissingAlt})
			issues++
		}

		if expected := a.domain + page.Path; info.Canonical != "" && !sameURL(info.Canonical, expected) {
			report.SEO.CanonicalMismatch = append(report.SEO.CanonicalMismatch,
				CanonicalIssue{File: page.File, Canonical: info.Canonical, Expected: expected})
			issues++
		}

		if info.NoIndex() {
			report.SEO.NoIndex = append(report.SEO.NoIndex, page.File)
			issues++
		}

		if issues > 0 {
			report.Summary.FilesWithIssues++
			report.Summary.TotalIssues += issues
		}
	}

	for title, files := range titles {
		if len(files) > 1 {
			report.SEO.DuplicateTitles[title] = len(files)
		}
	}

	report.Summary.TotalFiles = len(pages)
	return report, nil
}

func (a *Auditor) parseFile(page site.Page) (*PageInfo, error) {
	path := filepath.Join(a.collector.Root, filepath.FromSlash(page.File))
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", page.File, err)
	}
	defer f.Close()

	info, err := ParsePage(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", page.File, err)
	}
	info.File = page.File
	info.Path = page.Path
	return info, nil
}

func sameURL(a, b string) bool {
	return site.TrimTrailingSlash(a) == site.TrimTrailingSlash(b)
}

// Print writes a human-readable summary.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "Audited %d pages, %d with issues (%d issues).\n",
		r.Summary.TotalFiles, r.Summary.FilesWithIssues, r.Summary.TotalIssues)

	printList(w, "Missing <title>", r.SEO.MissingTitle)
	printList(w, "Missing meta description", r.SEO.MissingMetaDescription)
	printList(w, "Missing <h1>", r.SEO.MissingH1)
	printList(w, "Multiple <h1>", r.SEO.MultipleH1)
	printList(w, "noindex", r.SEO.NoIndex)

	printList(w, "Images missing alt", lo.Map(r.Accessibility.ImagesMissingAlt, func(i ImageIssue, _ int) string {
		return fmt.Sprintf("%s (%d)", i.File, i.Count)
	}))
	printList(w, "Canonical mismatch", lo.Map(r.SEO.CanonicalMismatch, func(i CanonicalIssue, _ int) string {
		return fmt.Sprintf("%s: %s != %s", i.File, i.Canonical, i.Expected)
	}))

	titles := lo.Keys(r.SEO.DuplicateTitles)
	slices.Sort(titles)
	printList(w, "Duplicate titles", lo.Map(titles, func(t string, _ int) string {
		return fmt.Sprintf("%q x%d", t, r.SEO.DuplicateTitles[t])
	}))
}

func printList(w io.Writer, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", heading)
	for _, item := range items {
		fmt.Fprintf(w, " - %s\n", item)
	}
}

// WriteJSON writes the full report, indented, to path.
func (r *Report) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal audit report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
