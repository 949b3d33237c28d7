package migrations

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFilesSortedAndFiltered(t *testing.T) {
	fsys := fstest.MapFS{
		"002_indexes.sql":   {Data: []byte("SELECT 1;")},
		"001_init.sql":      {Data: []byte("SELECT 1;")},
		"README.md":         {Data: []byte("docs")},
		"archive/000_x.sql": {Data: []byte("SELECT 1;")},
	}

	files, err := migrationFiles(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.sql", "002_indexes.sql"}, files)
}

func TestVersionOf(t *testing.T) {
	assert.Equal(t, "001", versionOf("001_init.sql"))
	assert.Equal(t, "010", versionOf("010_add_reports_index.sql"))
}

func TestEmbeddedSchemaDefinesCoreTables(t *testing.T) {
	src := Source("")
	files, err := migrationFiles(src)
	require.NoError(t, err)
	require.NotEmpty(t, files)

	content, err := fs.ReadFile(src, files[0])
	require.NoError(t, err)
	for _, table := range []string{"resources", "ratings", "comments", "comment_reactions", "report_flags", "notifications"} {
		assert.Contains(t, string(content), "CREATE TABLE IF NOT EXISTS "+table+" ")
	}
	assert.Contains(t, string(content), "UNIQUE (resource_id, user_id)")
	assert.Contains(t, string(content), "UNIQUE (comment_id, user_id)")
}
