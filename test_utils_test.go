package main

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"os"
	"path/filepath"
	"pipe-tools/config"
	"pipe-tools/crypto"
	"pipe-tools/models"
	"testing"
	"time"
)

func testContext(t *testing.T) *Context {
	t.Helper()
	crypto.PasswordCost = bcrypt.MinCost

	c := &config.Config{
		DBPath:                      filepath.Join(t.TempDir(), "pipe-tools.db"),
		MaxConcurrentFileOperations: 2,
		CopyChunkSize:               4,
		CopyTimeout:                 time.Second,
		RetryAttempts:               2,
		RetryBaseDelay:              time.Millisecond,
		VersionImportMode:           config.VersionImportFirstOnly,
		FolderNamesToIgnore:         []string{".git"},
		WatchDebounce:               50 * time.Millisecond,
	}

	db, err := initDb(c)
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, closeDb(db))
	})

	return &Context{
		Config: c,
		DB:     db,
	}
}

// adminSession creates the first worker, who is always an admin, and logs in as them.
func adminSession(t *testing.T, ctx *Context) *Session {
	t.Helper()

	worker, err := ctx.CreateWorker("supervisor", "secret", "pipeline", models.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, worker.Role)

	ctx.Session = &Session{Worker: worker}
	return ctx.Session
}

func makeFolders(t *testing.T, root string, paths ...string) {
	t.Helper()

	for _, folder := range paths {
		require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(folder)), 0750))
	}
}

func writeTestFile(t *testing.T, path, content string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	return path
}

func TestMakeFoldersCreatesNestedFolders(t *testing.T) {
	root := t.TempDir()
	makeFolders(t, root, "ProjectA/SEQ010/SH010/v001", "ProjectB")

	assert.True(t, IsDir(filepath.Join(root, "ProjectA", "SEQ010", "SH010", "v001")))
	assert.True(t, IsDir(filepath.Join(root, "ProjectB")))
}
