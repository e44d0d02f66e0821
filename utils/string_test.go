package utils

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestPluralize(t *testing.T) {
	assert.Equal(t, "0 batches", Pluralize("batch", 0))
	assert.Equal(t, "1 batch", Pluralize("batch", 1))
	assert.Equal(t, "2 shots", Pluralize("shot", 2))
	assert.Equal(t, "1 sequence", Pluralize("sequence", 1))
	assert.Equal(t, "3 entries", Pluralize("entry", 3))
	assert.Equal(t, "2 keys", Pluralize("key", 2))
	assert.Equal(t, "1,500 files", Pluralize("file", 1500))
}

func TestIsInArray(t *testing.T) {
	assert.True(t, IsInArray(".git", []string{".git", "_trash"}))
	assert.False(t, IsInArray(".GIT", []string{".git"}))
	assert.False(t, IsInArray("a", nil))
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "shot01", NormalizeName("Shot01"))
	assert.Equal(t, "shot01", NormalizeName("  shot01 "))
	assert.Equal(t, "seq a", NormalizeName("SEQ A\t"))
}
