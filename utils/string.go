package utils

import (
	"fmt"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"strings"
)

func Pluralize(s string, count int64) string {
	if count == 1 {
		return fmt.Sprintf("1 %s", s)
	}

	lower := strings.ToLower(s)

	switch {
	// batches, matches
	case strings.HasSuffix(lower, "h"):
		s += "e"
	// entries
	case strings.HasSuffix(lower, "y") && !strings.HasSuffix(lower, "ey"):
		s = s[:len(s)-1] + "ie"
	}

	return fmt.Sprintf("%s %ss", humanize.Comma(count), s)
}

func PrintFormattedTitle(title string) {
	color.HiCyan(title)
	fmt.Println(strings.Repeat("=", len([]rune(title))))
}

func IsInArray(s string, values []string) bool {
	for _, value := range values {
		if s == value {
			return true
		}
	}

	return false
}

// NormalizeName is the key used to match folder names against stored names.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
