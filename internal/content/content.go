// Package content defines the read-only records shown on the site and the
// stores they can be loaded from.
package content

import (
	"context"

	"portfolio/internal/model"
)

// Store loads content records. Implementations must be safe for concurrent use.
type Store interface {
	Projects(ctx context.Context) ([]model.Project, error)
	Skills(ctx context.Context) ([]model.Skill, error)
	Achievements(ctx context.Context) ([]model.Achievement, error)
}

// Writer replaces content wholesale; used by the seed command, never by a request.
type Writer interface {
	ReplaceProjects(ctx context.Context, projects []model.Project) error
	ReplaceSkills(ctx context.Context, skills []model.Skill) error
	ReplaceAchievements(ctx context.Context, achievements []model.Achievement) error
}

// NavLinks are tied to the router, so they never come from a store.
func NavLinks() []model.NavLink {
	return []model.NavLink{
		{Href: "/", Label: "Home"},
		{Href: "/about", Label: "About"},
		{Href: "/projects", Label: "Projects"},
		{Href: "/skills", Label: "Skills"},
		{Href: "/contact", Label: "Contact"},
	}
}

// Pages lists the public routes included in the sitemap.
func Pages() []string {
	links := NavLinks()
	pages := make([]string, 0, len(links))
	for _, l := range links {
		pages = append(pages, l.Href)
	}
	return pages
}

// Seed writes every record of src into w.
func Seed(ctx context.Context, src Store, w Writer) error {
	projects, err := src.Projects(ctx)
	if err != nil {
		return err
	}
	skills, err := src.Skills(ctx)
	if err != nil {
		return err
	}
	achievements, err := src.Achievements(ctx)
	if err != nil {
		return err
	}

	if err := w.ReplaceProjects(ctx, projects); err != nil {
		return err
	}
	if err := w.ReplaceSkills(ctx, skills); err != nil {
		return err
	}
	return w.ReplaceAchievements(ctx, achievements)
}
