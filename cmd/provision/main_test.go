package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sqliteadapter "github.com/ericfisherdev/tasteofthebes/internal/adapter/driven/sqlite"
)

func TestRun_PrintsSuperAdminKey(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "provision.db")
	t.Setenv("THEBES_DB_PATH", dbPath)
	t.Setenv("THEBES_LOG_LEVEL", "error")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out))

	key := strings.TrimSpace(out.String())
	assert.Len(t, key, 64)

	db, err := sqliteadapter.NewDB(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	stored, err := sqliteadapter.NewAPIKeyRepo(db).GetByKey(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, stored.IsSuperAdmin)
	assert.True(t, stored.IsAdminApproved)
}
