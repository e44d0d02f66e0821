package main

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestParseVersionFolderAcceptsThreeDigits(t *testing.T) {
	for number := uint(0); number < 1000; number++ {
		name := FormatVersionFolder(number)
		parsed, ok := ParseVersionFolder(name)

		assert.True(t, ok, name)
		assert.Equal(t, number, parsed, name)
	}
}

func TestParseVersionFolderRejectsOtherForms(t *testing.T) {
	for _, name := range []string{"v7", "v07", "version007", "V007", "v0001", "v00a", " v001", "v001 ", "v001_comp", "", "v"} {
		_, ok := ParseVersionFolder(name)
		assert.False(t, ok, name)
	}
}

func TestFormatVersionFolder(t *testing.T) {
	assert.Equal(t, "v001", FormatVersionFolder(1))
	assert.Equal(t, "v042", FormatVersionFolder(42))
}
