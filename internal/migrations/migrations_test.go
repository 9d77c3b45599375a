package migrations

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgxURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@localhost:5432/caja?sslmode=disable", pgxURL("postgres://u:p@localhost:5432/caja?sslmode=disable"))
	assert.Equal(t, "pgx5://localhost/caja", pgxURL("postgresql://localhost/caja"))
	assert.Equal(t, "pgx5://localhost/caja", pgxURL("pgx5://localhost/caja"))
}

func TestEmbeddedFilesArePaired(t *testing.T) {
	ups, err := fs.Glob(files, "*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(files, "*.down.sql")
	require.NoError(t, err)

	assert.Len(t, ups, 3)
	assert.Len(t, downs, len(ups))
}
