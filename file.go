package main

import (
	"os"
	"path/filepath"
	"pipe-tools/utils"
	"sort"
	"strings"
)

func IsDir(path string) bool {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return true
	}

	return false
}

func IsFile(path string) bool {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return true
	}

	return false
}

// listSubDirectories returns the immediate child folders of path, sorted by name.
func listSubDirectories(path string, namesToIgnore []string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(path)

	if err != nil {
		return nil, err
	}

	var directories []os.DirEntry

	for _, entry := range entries {
		if !entry.IsDir() || utils.IsInArray(entry.Name(), namesToIgnore) {
			continue
		}

		directories = append(directories, entry)
	}

	return directories, nil
}

// getPathsForMkdirs returns the smallest set of folders whose creation covers every file's parent.
func getPathsForMkdirs(filePaths []string) []string {
	var resolvedPaths []string

	parents := make([]string, 0, len(filePaths))

	for _, filePath := range filePaths {
		parents = append(parents, filepath.Dir(filePath))
	}

	sort.Slice(parents, func(i, j int) bool {
		return len(parents[i]) > len(parents[j])
	})

	for _, basePath := range parents {
		found := false
		prefix := basePath

		if !strings.HasSuffix(prefix, string(os.PathSeparator)) {
			prefix += string(os.PathSeparator)
		}

		for _, existingPath := range resolvedPaths {
			if existingPath == basePath || strings.HasPrefix(existingPath, prefix) {
				found = true
				break
			}
		}

		if !found {
			resolvedPaths = append(resolvedPaths, basePath)
		}
	}

	return resolvedPaths
}
