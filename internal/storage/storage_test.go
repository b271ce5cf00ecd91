package storage_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pipeforge/lead-api/internal/config"
	"github.com/pipeforge/lead-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalStorage_UploadDownloadDelete(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	content := "lead_number,company_name\nLEAD-00001,Initech\n"

	path, size, err := store.Upload(ctx, "leads-acme-20260831.csv", "text/csv", strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), size)
	assert.Equal(t, ".csv", filepath.Ext(path))

	rc, err := store.Download(ctx, path)
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))

	require.NoError(t, store.Delete(ctx, path))

	_, err = store.Download(ctx, path)
	assert.Error(t, err)
}

func TestLocalStorage_DeleteMissingFileIsNoop(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "aa/bb/never-existed.csv"))
}

func TestLocalStorage_CreatesBasePath(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "exports")

	_, err := storage.NewLocalStorage(base)
	require.NoError(t, err)

	info, err := os.Stat(base)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewStorage_ModeSelection(t *testing.T) {
	logger := zap.NewNop()

	store, err := storage.NewStorage(&config.StorageConfig{
		Mode:          "local",
		LocalBasePath: t.TempDir(),
	}, logger)
	require.NoError(t, err)
	assert.IsType(t, &storage.LocalStorage{}, store)

	_, err = storage.NewStorage(&config.StorageConfig{Mode: "cloud"}, logger)
	assert.Error(t, err)

	_, err = storage.NewStorage(&config.StorageConfig{Mode: "carrier-pigeon"}, logger)
	assert.Error(t, err)
}
