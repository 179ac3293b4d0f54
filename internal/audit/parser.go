package audit

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// PageInfo holds the SEO-relevant parts of one HTML page.
type PageInfo struct {
	File             string `json:"file"`
	Path             string `json:"path"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	H1Count          int    `json:"h1_count"`
	ImagesMissingAlt int    `json:"images_missing_alt"`
	Canonical        string `json:"canonical,omitempty"`
	Robots           string `json:"robots,omitempty"`
}

// NoIndex reports whether the page asks crawlers not to index it.
func (p *PageInfo) NoIndex() bool {
	return strings.Contains(strings.ToLower(p.Robots), "noindex")
}

// ParsePage extracts title, meta description, h1 count, images without an
// alt attribute, the canonical link and the robots directive.
func ParsePage(r io.Reader) (*PageInfo, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}
	doc := goquery.NewDocumentFromNode(root)

	info := &PageInfo{}

	if title := doc.Find("title").First(); title.Length() > 0 {
		info.Title = getNodeText(title.Get(0))
	}

	doc.Find("meta[name='description']").Each(func(i int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists && info.Description == "" {
			info.Description = strings.TrimSpace(content)
		}
	})

	doc.Find("meta[name='robots']").Each(func(i int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists {
			info.Robots = strings.TrimSpace(content)
		}
	})

	info.H1Count = doc.Find("h1").Length()

	// alt="" is valid for decorative images; only a missing attribute counts.
	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		if !hasAttr(s.Get(0), "alt") {
			info.ImagesMissingAlt++
		}
	})

	doc.Find("link[rel='canonical']").EachWithBreak(func(i int, s *goquery.Selection) bool {
		info.Canonical = strings.TrimSpace(getAttr(s.Get(0), "href"))
		return false
	})

	return info, nil
}

func hasAttr(n *html.Node, key string) bool {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return true
		}
	}
	return false
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// getNodeText concatenates the text below n with whitespace collapsed.
func getNodeText(n *html.Node) string {
	var parts []string
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.TextNode {
			parts = append(parts, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(n)
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
