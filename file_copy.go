package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"io"
	"log"
	"os"
	"path/filepath"
	"pipe-tools/crypto"
	"pipe-tools/utils"
	"time"
)

const maxRetryDelay = 30 * time.Second

type CopyRequest struct {
	Source      string
	Destination string
	// Overwrite replaces a destination whose contents differ from the source
	Overwrite bool
}

type CopyResult struct {
	Request CopyRequest
	Bytes   int64
	// Skipped is set when the destination already had the same contents
	Skipped bool
	Err     error
}

// CopyFiles copies every request, at most max_concurrent_file_operations at a time. A failed copy
// is reported in its result and does not stop the others.
func (ctx *Context) CopyFiles(runCtx context.Context, requests []CopyRequest) []CopyResult {
	results := make([]CopyResult, len(requests))

	if len(requests) == 0 {
		return results
	}

	requests = append([]CopyRequest(nil), requests...)
	destinations := make([]string, len(requests))

	for i := range requests {
		requests[i].Destination = ResolveMappedDrive(requests[i].Destination)
		destinations[i] = requests[i].Destination
	}

	policy := ctx.retryPolicy()

	for _, folder := range getPathsForMkdirs(destinations) {
		err := utils.Retry(runCtx, policy, fmt.Sprintf("create folder \"%s\"", folder), func() error {
			return os.MkdirAll(folder, 0750)
		})

		if err != nil {
			log.Printf("Could not create destination folder \"%s\": %v", folder, err)
		}
	}

	utils.ConsoleAndLogPrintf("Copying %s", utils.Pluralize("file", int64(len(requests))))

	bar := progressbar.Default(int64(len(requests)))
	orchestrator := utils.NewTaskOrchestrator(runCtx, bar, ctx.Config.MaxConcurrentFileOperations)

	for i, request := range requests {
		i, request := i, request
		orchestrator.StartTask(func(taskCtx context.Context) error {
			results[i] = ctx.copyFileWithRetry(taskCtx, request)
			return results[i].Err
		})
	}

	// Errors are kept per result
	_ = orchestrator.WaitForTasks()

	var copied, skipped, failed int64
	var totalBytes uint64

	for _, result := range results {
		switch {
		case result.Err != nil:
			failed++
			log.Printf("Error copying \"%s\" to \"%s\": %v", result.Request.Source, result.Request.Destination, result.Err)
		case result.Skipped:
			skipped++
		default:
			copied++
			totalBytes += uint64(result.Bytes)
		}
	}

	utils.ConsoleAndLogPrintf("Copied %s (%s), %s already up to date, %s failed",
		utils.Pluralize("file", copied), humanize.Bytes(totalBytes), humanize.Comma(skipped), humanize.Comma(failed))

	return results
}

func (ctx *Context) retryPolicy() utils.RetryPolicy {
	return utils.RetryPolicy{
		Attempts:  ctx.Config.RetryAttempts,
		BaseDelay: ctx.Config.RetryBaseDelay,
		MaxDelay:  maxRetryDelay,
	}
}

func (ctx *Context) copyFileWithRetry(runCtx context.Context, request CopyRequest) CopyResult {
	result := CopyResult{Request: request}

	result.Err = utils.Retry(runCtx, ctx.retryPolicy(), fmt.Sprintf("copy \"%s\"", request.Source), func() error {
		state, err := compareDestination(request.Source, request.Destination)

		if err != nil {
			return err
		}

		if state == Same {
			result.Skipped = true
			return nil
		}

		if state == Different && !request.Overwrite {
			return ErrNotOverwritingExistingDifferentFile
		}

		attemptCtx, cancel := context.WithTimeout(runCtx, ctx.Config.CopyTimeout)
		defer cancel()

		written, err := copyFile(attemptCtx, request.Source, request.Destination, ctx.Config.CopyChunkSize)
		result.Bytes = written

		return err
	})

	return result
}

type ShouldOverWrite int

const (
	Indeterminate ShouldOverWrite = iota
	DestinationDoesNotExist
	Same
	Different
)

func compareDestination(source, destination string) (ShouldOverWrite, error) {
	_, destinationStatErr := os.Stat(destination)

	// Does a file already exist at the destination?
	if errors.Is(destinationStatErr, os.ErrNotExist) {
		return DestinationDoesNotExist, nil
	}

	if destinationStatErr != nil {
		return Indeterminate, destinationStatErr
	}

	filesAreTheSame, err := CompareFiles(source, destination)

	if err != nil {
		return Indeterminate, err
	}

	if filesAreTheSame {
		return Same, nil
	}

	return Different, nil
}

func checkDeadline(ctx context.Context) error {
	if deadline, ok := ctx.Deadline(); ok && !time.Now().Before(deadline) {
		return context.DeadlineExceeded
	}

	return ctx.Err()
}

// copyFile writes source to "<destination>.part" chunk by chunk, checks the copy against the source
// hash and only then renames it into place.
func copyFile(ctx context.Context, source, destination string, chunkSize int) (written int64, err error) {
	in, err := os.Open(filepath.Clean(source))

	if err != nil {
		return 0, err
	}

	defer in.Close()

	sourceInfo, err := in.Stat()

	if err != nil {
		return 0, err
	}

	partPath := destination + ".part"
	out, err := os.OpenFile(partPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0640)

	if err != nil {
		return 0, err
	}

	defer func() {
		if err != nil {
			_ = out.Close()
			_ = os.Remove(partPath)
		}
	}()

	if chunkSize < 1 {
		chunkSize = 1024 * 1024
	}

	buffer := make([]byte, chunkSize)

	for {
		if err = checkDeadline(ctx); err != nil {
			return written, err
		}

		n, readErr := in.Read(buffer)

		if n > 0 {
			var w int
			w, err = out.Write(buffer[:n])
			written += int64(w)

			if err != nil {
				return written, err
			}
		}

		if readErr == io.EOF {
			break
		}

		if readErr != nil {
			err = readErr
			return written, err
		}
	}

	if err = out.Close(); err != nil {
		return written, err
	}

	if err = verifyCopy(source, partPath); err != nil {
		return written, err
	}

	if err = os.Rename(partPath, destination); err != nil {
		return written, err
	}

	// Best effort
	if chtimesErr := os.Chtimes(destination, time.Now(), sourceInfo.ModTime()); chtimesErr != nil {
		log.Printf("Could not set modification time of \"%s\": %v", destination, chtimesErr)
	}

	return written, nil
}

func verifyCopy(source, copied string) error {
	sourceHash, err := crypto.HashFile(source)

	if err != nil {
		return err
	}

	copiedHash, err := crypto.HashFile(copied)

	if err != nil {
		return err
	}

	if sourceHash != copiedHash {
		return ErrCopyVerificationFailed
	}

	return nil
}
