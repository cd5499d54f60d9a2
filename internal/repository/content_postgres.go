package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	mqcontracts "portfolio/contracts/mq"
	"portfolio/internal/model"
	"portfolio/pkg/otel"
	"portfolio/pkg/outbox"
)

type PostgresContentRepo struct {
	db     *pgxpool.Pool
	outbox *outbox.Repository
	source string
}

func NewPostgresContentRepo(db *pgxpool.Pool) *PostgresContentRepo {
	return &PostgresContentRepo{db: db}
}

// WithOutbox makes every Replace* also queue a content.updated event in the
// same transaction.
func (r *PostgresContentRepo) WithOutbox(o *outbox.Repository, source string) *PostgresContentRepo {
	r.outbox = o
	r.source = source
	return r
}

// RecordsEvents reports whether writes queue their own content.updated event.
func (r *PostgresContentRepo) RecordsEvents() bool {
	return r.outbox != nil
}

// Projects returns every project ordered by id.
func (r *PostgresContentRepo) Projects(ctx context.Context) ([]model.Project, error) {
	query := `
        SELECT id, slug, title, description, tech, link, image
        FROM projects
        ORDER BY id
    `
	var out []model.Project
	err := otel.Query(ctx, otel.DBPostgres, "select", query, func(ctx context.Context) error {
		rows, err := r.db.Query(ctx, query)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Project, error) {
			var p model.Project
			err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Description, &p.Tech, &p.Link, &p.Image)
			return p, err
		})
		return err
	})
	return out, err
}

func (r *PostgresContentRepo) Skills(ctx context.Context) ([]model.Skill, error) {
	query := `
        SELECT category, items, icon
        FROM skills
        ORDER BY position
    `
	var out []model.Skill
	err := otel.Query(ctx, otel.DBPostgres, "select", query, func(ctx context.Context) error {
		rows, err := r.db.Query(ctx, query)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Skill, error) {
			var s model.Skill
			err := row.Scan(&s.Category, &s.Items, &s.Icon)
			return s, err
		})
		return err
	})
	return out, err
}

func (r *PostgresContentRepo) Achievements(ctx context.Context) ([]model.Achievement, error) {
	query := `
        SELECT title, number, icon, descr
        FROM achievements
        ORDER BY position
    `
	var out []model.Achievement
	err := otel.Query(ctx, otel.DBPostgres, "select", query, func(ctx context.Context) error {
		rows, err := r.db.Query(ctx, query)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Achievement, error) {
			var a model.Achievement
			err := row.Scan(&a.Title, &a.Number, &a.Icon, &a.Desc)
			return a, err
		})
		return err
	})
	return out, err
}

// ReplaceProjects swaps the whole table in one transaction.
func (r *PostgresContentRepo) ReplaceProjects(ctx context.Context, projects []model.Project) error {
	return r.replace(ctx, "projects", func(tx pgx.Tx) error {
		for _, p := range projects {
			_, err := tx.Exec(ctx, `
                INSERT INTO projects (id, slug, title, description, tech, link, image)
                VALUES ($1, $2, $3, $4, $5, $6, $7)
            `, p.ID, p.Slug, p.Title, p.Description, nonNil(p.Tech), p.Link, p.Image)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PostgresContentRepo) ReplaceSkills(ctx context.Context, skills []model.Skill) error {
	return r.replace(ctx, "skills", func(tx pgx.Tx) error {
		for i, s := range skills {
			_, err := tx.Exec(ctx, `
                INSERT INTO skills (position, category, items, icon)
                VALUES ($1, $2, $3, $4)
            `, i, s.Category, nonNil(s.Items), s.Icon)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PostgresContentRepo) ReplaceAchievements(ctx context.Context, achievements []model.Achievement) error {
	return r.replace(ctx, "achievements", func(tx pgx.Tx) error {
		for i, a := range achievements {
			_, err := tx.Exec(ctx, `
                INSERT INTO achievements (position, title, number, icon, descr)
                VALUES ($1, $2, $3, $4, $5)
            `, i, a.Title, a.Number, a.Icon, a.Desc)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Ping is used by the readiness probe.
func (r *PostgresContentRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// table is always one of the three names above, never user input; it doubles
// as the cache kind in the queued event
func (r *PostgresContentRepo) replace(ctx context.Context, table string, insert func(pgx.Tx) error) error {
	query := "DELETE FROM " + table
	return otel.Query(ctx, otel.DBPostgres, "replace", query, func(ctx context.Context) error {
		return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, query); err != nil {
				return err
			}
			if err := insert(tx); err != nil {
				return err
			}
			if r.outbox == nil {
				return nil
			}
			evt := mqcontracts.ContentUpdatedPayload{
				Kinds:     []string{table},
				Source:    r.source,
				UpdatedAt: time.Now().UTC(),
			}
			return outbox.InsertEventInTx(ctx, tx, r.outbox, "content", table, mqcontracts.RoutingContentUpdated, evt)
		})
	})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
