package main

import (
	"context"
	"fmt"
	"github.com/fsnotify/fsnotify"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Root, project, sequence and shot folders are watched; version folder contents are not.
const maxWatchDepth = 3

// Watch synchronises once, then again each time the tree under the root has been quiet for the
// configured debounce after a change. It returns when runCtx is cancelled.
func (ctx *Context) Watch(runCtx context.Context, rootPath string, onSync func(*SyncReport, error)) error {
	absoluteRootPath, err := ctx.resolveProjectRoot(rootPath)

	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()

	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	defer watcher.Close()

	synchronize := func() {
		report, err := ctx.Synchronize(absoluteRootPath)
		onSync(report, err)

		if err := ctx.addTreeWatches(watcher, absoluteRootPath, 0); err != nil {
			log.Printf("Could not watch \"%s\": %v", absoluteRootPath, err)
		}
	}

	synchronize()

	var debounce <-chan time.Time

	for {
		select {
		case <-runCtx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			log.Printf("Change detected: %s \"%s\"", event.Op, event.Name)

			if event.Has(fsnotify.Create) && IsDir(event.Name) {
				if depth := watchDepth(absoluteRootPath, event.Name); depth >= 0 && depth <= maxWatchDepth {
					if err := watcher.Add(event.Name); err != nil {
						log.Printf("Could not watch \"%s\": %v", event.Name, err)
					}
				}
			}

			debounce = time.After(ctx.Config.WatchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			log.Printf("Watcher error: %v", err)

		case <-debounce:
			debounce = nil
			synchronize()
		}
	}
}

func (ctx *Context) addTreeWatches(watcher *fsnotify.Watcher, folder string, depth int) error {
	if err := watcher.Add(folder); err != nil {
		return err
	}

	if depth >= maxWatchDepth {
		return nil
	}

	entries, err := listSubDirectories(folder, ctx.Config.FolderNamesToIgnore)

	if err != nil {
		return err
	}

	for _, entry := range entries {
		// Version folders are leaves
		if _, isVersion := ParseVersionFolder(entry.Name()); isVersion {
			continue
		}

		if err := ctx.addTreeWatches(watcher, filepath.Join(folder, entry.Name()), depth+1); err != nil {
			log.Printf("Could not watch \"%s\": %v", entry.Name(), err)
		}
	}

	return nil
}

// watchDepth is 0 for the root itself and -1 for paths outside it.
func watchDepth(root, path string) int {
	relative, err := filepath.Rel(root, path)

	if err != nil || relative == ".." || strings.HasPrefix(relative, ".."+string(os.PathSeparator)) {
		return -1
	}

	if relative == "." {
		return 0
	}

	return strings.Count(relative, string(os.PathSeparator)) + 1
}
