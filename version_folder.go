package main

import (
	"fmt"
	"regexp"
	"strconv"
)

var versionFolderPattern = regexp.MustCompile(`^v([0-9]{3})$`)

// ParseVersionFolder accepts exactly "v" followed by three digits, e.g. "v007" is version 7.
func ParseVersionFolder(name string) (uint, bool) {
	match := versionFolderPattern.FindStringSubmatch(name)

	if match == nil {
		return 0, false
	}

	number, err := strconv.ParseUint(match[1], 10, 32)

	if err != nil {
		return 0, false
	}

	return uint(number), true
}

func FormatVersionFolder(number uint) string {
	return fmt.Sprintf("v%03d", number)
}
