package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"portfolio/internal/config"
	"portfolio/internal/content"
)

func TestOpenContentStore_Static(t *testing.T) {
	cfg := config.Default()
	s, err := OpenContentStore(context.Background(), &cfg, "test", zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	assert.Nil(t, s.Writer)
	assert.Nil(t, s.Ping)
	assert.Nil(t, s.Outbox)
	assert.IsType(t, content.Static{}, s.Store)
}

func TestOpenContentStore_SQLite(t *testing.T) {
	cfg := config.Default()
	cfg.Content.Driver = config.ContentDriverSQLite
	cfg.Content.SQLitePath = filepath.Join(t.TempDir(), "content.db")

	s, err := OpenContentStore(context.Background(), &cfg, "test", zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	require.NotNil(t, s.Writer)
	assert.NoError(t, s.Ping(context.Background()))
	require.NoError(t, content.Seed(context.Background(), content.Static{}, s.Writer))

	projects, err := s.Projects(context.Background())
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestOpenContentStore_UnknownDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Content.Driver = "mongo"
	_, err := OpenContentStore(context.Background(), &cfg, "test", zap.NewNop())
	assert.ErrorContains(t, err, `unknown content driver "mongo"`)
}
