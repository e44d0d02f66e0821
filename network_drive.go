package main

import (
	"log"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
	"sync"
)

var driveLetterPattern = regexp.MustCompile(`^[A-Za-z]:$`)

// ParseNetUse reads the table printed by Windows "net use" into drive letter ("Z:") -> UNC path.
func ParseNetUse(output string) map[string]string {
	mappings := make(map[string]string)

	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)

		for i := 0; i+1 < len(fields); i++ {
			if driveLetterPattern.MatchString(fields[i]) && strings.HasPrefix(fields[i+1], `\\`) {
				mappings[strings.ToUpper(fields[i])] = fields[i+1]
				break
			}
		}
	}

	return mappings
}

func resolveMappedDrive(path string, mappings map[string]string) string {
	if len(path) < 2 || path[1] != ':' {
		return path
	}

	remote, found := mappings[strings.ToUpper(path[:2])]

	if !found {
		return path
	}

	return strings.TrimRight(remote, `\`) + path[2:]
}

var (
	netUseOnce     sync.Once
	netUseMappings map[string]string
)

// ResolveMappedDrive swaps a mapped drive letter for its UNC path on Windows, so a path keeps
// working for processes that do not share the user's drive mappings.
func ResolveMappedDrive(path string) string {
	if runtime.GOOS != "windows" {
		return path
	}

	netUseOnce.Do(func() {
		output, err := exec.Command("net", "use").Output()

		if err != nil {
			log.Printf("Could not list mapped network drives: %v", err)
			return
		}

		netUseMappings = ParseNetUse(string(output))
	})

	return resolveMappedDrive(path, netUseMappings)
}
