package main

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCopyFilesShouldCreateDirectoriesAndCopy(t *testing.T) {
	ctx := testContext(t)
	source := t.TempDir()
	destination := t.TempDir()

	first := writeTestFile(t, filepath.Join(source, "comp_v001.nk"), "set cut_paste_input [stack 0]\n")
	second := writeTestFile(t, filepath.Join(source, "plate.0001.exr"), "not really an exr")

	results := ctx.CopyFiles(context.Background(), []CopyRequest{
		{Source: first, Destination: filepath.Join(destination, "ProjectA", "SEQ010", "comp_v001.nk")},
		{Source: second, Destination: filepath.Join(destination, "ProjectA", "SEQ010", "plates", "plate.0001.exr")},
	})

	require.Len(t, results, 2)

	for _, result := range results {
		assert.NoError(t, result.Err)
		assert.False(t, result.Skipped)

		same, err := CompareFiles(result.Request.Source, result.Request.Destination)
		assert.NoError(t, err)
		assert.True(t, same)
		assert.False(t, IsFile(result.Request.Destination+".part"))
	}

	assert.Equal(t, int64(len("not really an exr")), results[1].Bytes)
}

func TestCopyFilesShouldSkipIdenticalDestination(t *testing.T) {
	ctx := testContext(t)
	root := t.TempDir()

	source := writeTestFile(t, filepath.Join(root, "a.txt"), "same")
	destination := writeTestFile(t, filepath.Join(root, "b.txt"), "same")

	results := ctx.CopyFiles(context.Background(), []CopyRequest{{Source: source, Destination: destination}})

	assert.NoError(t, results[0].Err)
	assert.True(t, results[0].Skipped)
}

func TestCopyFilesShouldNotOverwriteDifferentFileUnlessAsked(t *testing.T) {
	ctx := testContext(t)
	root := t.TempDir()

	source := writeTestFile(t, filepath.Join(root, "a.txt"), "new render")
	destination := writeTestFile(t, filepath.Join(root, "b.txt"), "old render")

	results := ctx.CopyFiles(context.Background(), []CopyRequest{{Source: source, Destination: destination}})
	assert.ErrorIs(t, results[0].Err, ErrNotOverwritingExistingDifferentFile)

	content, err := os.ReadFile(destination)
	assert.NoError(t, err)
	assert.Equal(t, "old render", string(content))

	results = ctx.CopyFiles(context.Background(), []CopyRequest{{Source: source, Destination: destination, Overwrite: true}})
	assert.NoError(t, results[0].Err)

	content, err = os.ReadFile(destination)
	assert.NoError(t, err)
	assert.Equal(t, "new render", string(content))
}

func TestCopyFilesShouldReportMissingSourceAndContinue(t *testing.T) {
	ctx := testContext(t)
	root := t.TempDir()

	good := writeTestFile(t, filepath.Join(root, "good.txt"), "ok")

	results := ctx.CopyFiles(context.Background(), []CopyRequest{
		{Source: filepath.Join(root, "missing.txt"), Destination: filepath.Join(root, "out", "missing.txt")},
		{Source: good, Destination: filepath.Join(root, "out", "good.txt")},
	})

	assert.ErrorIs(t, results[0].Err, os.ErrNotExist)
	assert.NoError(t, results[1].Err)
	assert.True(t, IsFile(filepath.Join(root, "out", "good.txt")))
}

func TestCopyFilesShouldTimeOut(t *testing.T) {
	ctx := testContext(t)
	ctx.Config.CopyTimeout = time.Nanosecond
	root := t.TempDir()

	source := writeTestFile(t, filepath.Join(root, "big.bin"), "0123456789abcdef")
	destination := filepath.Join(root, "out", "big.bin")

	results := ctx.CopyFiles(context.Background(), []CopyRequest{{Source: source, Destination: destination}})

	assert.ErrorIs(t, results[0].Err, context.DeadlineExceeded)
	assert.False(t, IsFile(destination))
	assert.False(t, IsFile(destination+".part"))
}

func TestCopyFileInChunks(t *testing.T) {
	root := t.TempDir()
	source := writeTestFile(t, filepath.Join(root, "a.txt"), "abcdefghij")
	destination := filepath.Join(root, "b.txt")

	written, err := copyFile(context.Background(), source, destination, 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(10), written)

	content, err := os.ReadFile(destination)
	assert.NoError(t, err)
	assert.Equal(t, "abcdefghij", string(content))
}

func TestCopyFileStopsWhenCancelled(t *testing.T) {
	root := t.TempDir()
	source := writeTestFile(t, filepath.Join(root, "a.txt"), "abcdefghij")
	destination := filepath.Join(root, "b.txt")

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := copyFile(cancelled, source, destination, 3)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsFile(destination))
	assert.False(t, IsFile(destination+".part"))
}
