package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsDir_Default(t *testing.T) {
	t.Setenv("MIGRATIONS_DIR", "")

	dir := migrationsDir()
	assert.Equal(t, "db/migrations", dir)

	// the default is resolved from the module root, one level up from here
	info, err := os.Stat(filepath.Join("..", dir))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestMigrationsDir_EnvOverride(t *testing.T) {
	t.Setenv("MIGRATIONS_DIR", "/opt/migrations")
	assert.Equal(t, "/opt/migrations", migrationsDir())
}
