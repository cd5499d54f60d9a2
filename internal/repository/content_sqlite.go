package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"portfolio/internal/model"
	"portfolio/pkg/otel"
)

// SQLiteContentRepo stores content in a local file, for single-binary deploys.
type SQLiteContentRepo struct {
	db *sql.DB
}

func NewSQLiteContentRepo(db *sql.DB) *SQLiteContentRepo {
	return &SQLiteContentRepo{db: db}
}

func (r *SQLiteContentRepo) Projects(ctx context.Context) ([]model.Project, error) {
	query := `SELECT id, slug, title, description, tech, link, image FROM projects ORDER BY id`
	var out []model.Project
	err := otel.Query(ctx, otel.DBSQLite, "select", query, func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var p model.Project
			var tech string
			if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &p.Description, &tech, &p.Link, &p.Image); err != nil {
				return err
			}
			if err := json.Unmarshal([]byte(tech), &p.Tech); err != nil {
				return fmt.Errorf("decoding tech of project %d: %w", p.ID, err)
			}
			out = append(out, p)
		}
		return rows.Err()
	})
	return out, err
}

func (r *SQLiteContentRepo) Skills(ctx context.Context) ([]model.Skill, error) {
	query := `SELECT category, items, icon FROM skills ORDER BY position`
	var out []model.Skill
	err := otel.Query(ctx, otel.DBSQLite, "select", query, func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var s model.Skill
			var items string
			if err := rows.Scan(&s.Category, &items, &s.Icon); err != nil {
				return err
			}
			if err := json.Unmarshal([]byte(items), &s.Items); err != nil {
				return fmt.Errorf("decoding items of skill %q: %w", s.Category, err)
			}
			out = append(out, s)
		}
		return rows.Err()
	})
	return out, err
}

func (r *SQLiteContentRepo) Achievements(ctx context.Context) ([]model.Achievement, error) {
	query := `SELECT title, number, icon, descr FROM achievements ORDER BY position`
	var out []model.Achievement
	err := otel.Query(ctx, otel.DBSQLite, "select", query, func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var a model.Achievement
			if err := rows.Scan(&a.Title, &a.Number, &a.Icon, &a.Desc); err != nil {
				return err
			}
			out = append(out, a)
		}
		return rows.Err()
	})
	return out, err
}

func (r *SQLiteContentRepo) ReplaceProjects(ctx context.Context, projects []model.Project) error {
	return r.replace(ctx, "projects", func(tx *sql.Tx) error {
		for _, p := range projects {
			tech, err := json.Marshal(nonNil(p.Tech))
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO projects (id, slug, title, description, tech, link, image) VALUES (?, ?, ?, ?, ?, ?, ?)`,
				p.ID, p.Slug, p.Title, p.Description, string(tech), p.Link, p.Image)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SQLiteContentRepo) ReplaceSkills(ctx context.Context, skills []model.Skill) error {
	return r.replace(ctx, "skills", func(tx *sql.Tx) error {
		for i, s := range skills {
			items, err := json.Marshal(nonNil(s.Items))
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO skills (position, category, items, icon) VALUES (?, ?, ?, ?)`,
				i, s.Category, string(items), s.Icon)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SQLiteContentRepo) ReplaceAchievements(ctx context.Context, achievements []model.Achievement) error {
	return r.replace(ctx, "achievements", func(tx *sql.Tx) error {
		for i, a := range achievements {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO achievements (position, title, number, icon, descr) VALUES (?, ?, ?, ?, ?)`,
				i, a.Title, a.Number, a.Icon, a.Desc)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SQLiteContentRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteContentRepo) replace(ctx context.Context, table string, insert func(*sql.Tx) error) error {
	query := "DELETE FROM " + table
	return otel.Query(ctx, otel.DBSQLite, "replace", query, func(ctx context.Context) error {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		if _, err := tx.ExecContext(ctx, query); err != nil {
			return err
		}
		if err := insert(tx); err != nil {
			return err
		}
		return tx.Commit()
	})
}
