package utils

import (
	"context"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
	"log"
)

// TaskOrchestrator runs tasks with at most maxConcurrentOperations in flight.
// A failing task does not stop the others.
type TaskOrchestrator struct {
	ctx   context.Context
	bar   *progressbar.ProgressBar
	group errgroup.Group
}

func NewTaskOrchestrator(ctx context.Context, bar *progressbar.ProgressBar, maxConcurrentOperations int64) *TaskOrchestrator {
	task := &TaskOrchestrator{
		ctx: ctx,
		bar: bar,
	}

	if maxConcurrentOperations < 1 {
		maxConcurrentOperations = 1
	}

	task.group.SetLimit(int(maxConcurrentOperations))
	return task
}

// StartTask blocks until a slot is free.
func (task *TaskOrchestrator) StartTask(fn func(ctx context.Context) error) {
	task.group.Go(func() error {
		defer task.finishTask()
		return fn(task.ctx)
	})
}

func (task *TaskOrchestrator) finishTask() {
	if task.bar == nil {
		return
	}

	err := task.bar.Add(1)

	if err != nil {
		log.Printf("failed to update progress bar: %v", err)
	}
}

// WaitForTasks returns the first task error, after every task has finished.
func (task *TaskOrchestrator) WaitForTasks() error {
	return task.group.Wait()
}
