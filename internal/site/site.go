// Package site renders the public pages.
package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/gin-gonic/gin/render"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"portfolio/internal/model"
)

//go:embed templates
var templateFS embed.FS

// Page names accepted by Renderer.Instance.
const (
	PageHome     = "home"
	PageAbout    = "about"
	PageProjects = "projects"
	PageSkills   = "skills"
	PageContact  = "contact"
	PageNotFound = "not_found"
)

var pages = []string{PageHome, PageAbout, PageProjects, PageSkills, PageContact, PageNotFound}

// Info is the site-wide configuration visible to templates.
type Info struct {
	Name         string
	URL          string
	AnalyticsID  string
	ContactEmail string
}

// Page is the data every template receives.
type Page struct {
	Title        string
	Path         string
	Site         Info
	Profile      model.Profile
	Nav          []model.NavLink
	Projects     []model.Project
	Skills       []model.Skill
	Achievements []model.Achievement
	Form         *ContactForm
}

// ContactForm is the server-rendered state of the contact form.
type ContactForm struct {
	Values model.Submission
	Errors map[string]string
	Status string // idle / success / error
	Banner string

	ProjectTypes []model.Option
	Budgets      []model.Option
	Timelines    []model.Option
}

// NewContactForm returns an empty idle form with the select options filled in.
func NewContactForm() *ContactForm {
	return &ContactForm{
		Status:       "idle",
		ProjectTypes: model.ProjectTypeOptions,
		Budgets:      model.BudgetOptions,
		Timelines:    model.TimelineOptions,
	}
}

// Renderer implements gin's render.HTMLRender with one template set per page.
type Renderer struct {
	pages map[string]*template.Template
	hero  *template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}

	for _, name := range pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials/*.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
		r.pages[name] = t
	}

	hero, err := template.New("partials").Funcs(funcs).ParseFS(templateFS, "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing partials: %w", err)
	}
	r.hero = hero
	return r, nil
}

// Instance panics on an unknown page name; names are constants, so that is a programming error.
func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.pages[name]
	if !ok {
		panic(fmt.Sprintf("site: unknown page %q", name))
	}
	return render.HTML{Template: t, Name: "layout", Data: data}
}

// RenderHero writes the landing hero section alone.
func (r *Renderer) RenderHero(w io.Writer, data Page) error {
	return r.hero.ExecuteTemplate(w, "hero", data)
}

var funcs = template.FuncMap{
	"markdown": Markdown,
	"active": func(current, href string) bool {
		return current == href
	},
	"fieldError": func(f *ContactForm, field string) string {
		if f == nil {
			return ""
		}
		return f.Errors[field]
	},
	"year": func() int { return time.Now().Year() },
}

var (
	md     = goldmark.New(goldmark.WithExtensions(extension.GFM))
	policy = bluemonday.UGCPolicy()
)

// Markdown renders src as GitHub flavoured Markdown and strips anything unsafe.
func Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes()))
}
