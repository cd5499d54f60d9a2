package site

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"portfolio/internal/content"
	"portfolio/internal/model"
)

func testPage(t *testing.T, path string) Page {
	t.Helper()
	projects, _ := content.Static{}.Projects(context.Background())
	skills, _ := content.Static{}.Skills(context.Background())
	achievements, _ := content.Static{}.Achievements(context.Background())
	return Page{
		Path:         path,
		Site:         Info{Name: "Ada Lovelace", URL: "https://ada.dev"},
		Profile:      content.DefaultProfile("Ada Lovelace", "ada@ada.dev"),
		Nav:          content.NavLinks(),
		Projects:     projects,
		Skills:       skills,
		Achievements: achievements,
		Form:         NewContactForm(),
	}
}

func TestRenderHero_ContainsConfiguredName(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.RenderHero(&buf, testPage(t, "/")))
	assert.Contains(t, buf.String(), "Hi, I'm <span>Ada Lovelace</span>")
	assert.Contains(t, buf.String(), "AL")
}

func TestRenderer_AllPages(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	for _, name := range pages {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			require.NoError(t, r.Instance(name, testPage(t, "/"+name)).Render(w))

			body := w.Body.String()
			assert.True(t, strings.HasPrefix(body, "<!DOCTYPE html>"))
			assert.Contains(t, body, "Ada Lovelace")
			assert.NotContains(t, body, "googletagmanager")
		})
	}
}

func TestRenderer_AnalyticsSnippet(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	page := testPage(t, "/")
	page.Site.AnalyticsID = "G-TEST123"

	w := httptest.NewRecorder()
	require.NoError(t, r.Instance(PageHome, page).Render(w))
	assert.Contains(t, w.Body.String(), "gtag/js?id=G-TEST123")
}

func TestRenderer_ContactFormPreservesValues(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	page := testPage(t, "/contact")
	page.Form.Values = model.Submission{Name: "Ada", Budget: model.Budget1kTo5k, Requirements: "Analytical engine"}
	page.Form.Errors = map[string]string{"email": "Invalid email address"}

	w := httptest.NewRecorder()
	require.NoError(t, r.Instance(PageContact, page).Render(w))

	body := w.Body.String()
	assert.Contains(t, body, `value="Ada"`)
	assert.Contains(t, body, `<option value="1000-5000" selected>`)
	assert.Contains(t, body, "Analytical engine</textarea>")
	assert.Contains(t, body, "Invalid email address")
}

func TestRenderer_UnknownPagePanics(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	assert.Panics(t, func() { r.Instance("missing", nil) })
}

func TestMarkdown(t *testing.T) {
	out := string(Markdown("**bold** <script>alert(1)</script>"))
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.NotContains(t, out, "<script>")
}

func TestSitemap(t *testing.T) {
	body, err := Sitemap("https://ada.dev/", []string{"/", "/about"})
	require.NoError(t, err)

	s := string(body)
	assert.True(t, strings.HasPrefix(s, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, s, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, s, "<url><loc>https://ada.dev/</loc></url><url><loc>https://ada.dev/about</loc></url>")
}

func TestSitemap_DefaultBase(t *testing.T) {
	body, err := Sitemap("", []string{"/"})
	require.NoError(t, err)
	assert.Contains(t, string(body), "<loc>https://example.com/</loc>")
}

func TestRobots(t *testing.T) {
	assert.Equal(t, "User-agent: *\nAllow: /\n\nSitemap: https://ada.dev/sitemap.xml\n", Robots("https://ada.dev"))
}
