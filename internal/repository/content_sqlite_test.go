package repository

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"portfolio/internal/content"
	"portfolio/internal/db"
	"portfolio/internal/model"
)

func newTestRepo(t *testing.T) *SQLiteContentRepo {
	t.Helper()
	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewSQLiteContentRepo(conn)
}

func TestSQLiteContentRepo_EmptyTables(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	projects, err := repo.Projects(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)

	skills, err := repo.Skills(ctx)
	require.NoError(t, err)
	assert.Empty(t, skills)
}

func TestSQLiteContentRepo_SeedRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, content.Seed(ctx, content.Static{}, repo))

	wantProjects, _ := content.Static{}.Projects(ctx)
	gotProjects, err := repo.Projects(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(wantProjects, gotProjects); diff != "" {
		t.Errorf("projects mismatch (-want +got):\n%s", diff)
	}

	wantSkills, _ := content.Static{}.Skills(ctx)
	gotSkills, err := repo.Skills(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(wantSkills, gotSkills); diff != "" {
		t.Errorf("skills mismatch (-want +got):\n%s", diff)
	}

	wantAchievements, _ := content.Static{}.Achievements(ctx)
	gotAchievements, err := repo.Achievements(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(wantAchievements, gotAchievements); diff != "" {
		t.Errorf("achievements mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteContentRepo_ReplaceDropsOldRows(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, content.Seed(ctx, content.Static{}, repo))
	require.NoError(t, repo.ReplaceProjects(ctx, []model.Project{{ID: 9, Slug: "only", Title: "Only one"}}))

	got, err := repo.Projects(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "only", got[0].Slug)
	assert.Equal(t, []string{}, got[0].Tech)
}

func TestSQLiteContentRepo_FailedReplaceKeepsRows(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, content.Seed(ctx, content.Static{}, repo))
	dup := []model.Project{{ID: 1, Slug: "a"}, {ID: 1, Slug: "b"}}
	assert.Error(t, repo.ReplaceProjects(ctx, dup))

	got, err := repo.Projects(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
