// internal/models/sitemap.go
package models

import "encoding/xml"

const (
	SitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"
	XSINamespace     = "http://www.w3.org/2001/XMLSchema-instance"
	SchemaLocation   = SitemapNamespace + " " + SitemapNamespace + "/sitemap.xsd"
)

// Sitemap represents the structure of an XML sitemap.
type Sitemap struct {
	XMLName        xml.Name `xml:"urlset"`
	Xmlns          string   `xml:"xmlns,attr"`
	XmlnsXSI       string   `xml:"xmlns:xsi,attr,omitempty"`
	SchemaLocation string   `xml:"xsi:schemaLocation,attr,omitempty"`
	URLs           []URL    `xml:"url"`
}

// URL represents a single URL entry in the sitemap.
type URL struct {
	Loc        string `xml:"loc" json:"loc"`
	LastMod    string `xml:"lastmod,omitempty" json:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty" json:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty" json:"priority,omitempty"`
}

// NewSitemap returns an empty urlset carrying the sitemaps.org and XSI namespaces.
func NewSitemap() *Sitemap {
	return &Sitemap{
		Xmlns:          SitemapNamespace,
		XmlnsXSI:       XSINamespace,
		SchemaLocation: SchemaLocation,
	}
}
