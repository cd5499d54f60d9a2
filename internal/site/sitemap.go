package site

import (
	"encoding/xml"
	"fmt"
	"strings"
)

const (
	sitemapNS      = "http://www.sitemaps.org/schemas/sitemap/0.9"
	DefaultBaseURL = "https://example.com"
)

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	NS      string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

// Sitemap lists every page under baseURL; an empty base falls back to DefaultBaseURL.
func Sitemap(baseURL string, pages []string) ([]byte, error) {
	base := normalizeBase(baseURL)
	set := urlSet{NS: sitemapNS}
	for _, p := range pages {
		set.URLs = append(set.URLs, sitemapURL{Loc: base + p})
	}

	body, err := xml.Marshal(set)
	if err != nil {
		return nil, fmt.Errorf("encoding sitemap: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

// Robots allows every crawler and points at the sitemap.
func Robots(baseURL string) string {
	return fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", normalizeBase(baseURL))
}

func normalizeBase(baseURL string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return DefaultBaseURL
	}
	return base
}
