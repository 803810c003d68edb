package async

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Task represents an asynchronous operation with a name and function.
type Task struct {
	Name string
	Func func(context.Context) error
}

// RunBounded runs every task with at most limit of them in flight and waits
// for all of them. Task errors are joined in task order.
// A limit below 1 is treated as 1.
func RunBounded(ctx context.Context, tasks []Task, limit int) error {
	if len(tasks) == 0 {
		return nil
	}
	if limit < 1 {
		limit = 1
	}

	errs := make([]error, len(tasks))
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for i, task := range tasks {
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer func() {
				<-sem
				wg.Done()
			}()
			if err := task.Func(ctx); err != nil {
				errs[i] = fmt.Errorf("%s: %w", task.Name, err)
			}
		}()
	}
	wg.Wait()

	return errors.Join(errs...)
}

// RunFailFast runs tasks in order with at most limit in flight. The first
// failure cancels the context handed to in-flight tasks and no further task
// is started. The returned error is the first failure.
func RunFailFast(ctx context.Context, tasks []Task, limit int) error {
	if len(tasks) == 0 {
		return nil
	}
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, task := range tasks {
		// errgroup releases a slot only after a failing task has cancelled gctx.
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := task.Func(gctx); err != nil {
				return fmt.Errorf("%s: %w", task.Name, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
