package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/exam-session-api/internal/config"
	"github.com/yourusername/exam-session-api/internal/pkg/lock"
)

func fileConfig(dir string) *config.Config {
	return &config.Config{
		Storage:      config.StorageConfig{Driver: config.StorageDriverFile, DataDir: dir},
		SecondChance: config.SecondChanceConfig{Password: "secret"},
	}
}

func TestOpenStorage_FileDriver(t *testing.T) {
	dir := t.TempDir()

	storage, err := OpenStorage(fileConfig(dir))
	require.NoError(t, err)
	defer storage.Close()

	assert.FileExists(t, filepath.Join(dir, "users.json"))
	assert.FileExists(t, filepath.Join(dir, "testResults.json"))
}

func TestNewLocker_InMemoryWithoutRedis(t *testing.T) {
	locker, closeFn, err := NewLocker(fileConfig(t.TempDir()))
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, &lock.KeyedMutex{}, locker)
}

func TestNewTestSessionService_FileDriver(t *testing.T) {
	svc, cleanup, err := NewTestSessionService(fileConfig(t.TempDir()))
	require.NoError(t, err)
	defer cleanup()

	res, err := svc.Authenticate(context.Background(), "bob", "pw")
	require.NoError(t, err)
	assert.True(t, res.Created)
}

func TestLoadDotEnv_KeepsExistingVariables(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SECOND_CHANCE_PASSWORD=from-dotenv\n"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	t.Setenv("SECOND_CHANCE_PASSWORD", "from-env")
	LoadDotEnv()

	assert.Equal(t, "from-env", os.Getenv("SECOND_CHANCE_PASSWORD"))
}
