package calculator

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// 基于行的任务分配
type executor struct {
	workers int
}

type task struct {
	start int
	end   int
}

func newExecutor(workers int) *executor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &executor{workers: workers}
}

// 把 [0, total) 切分成任务, 每个 worker 大约分到两个
func (e *executor) split(total int) []task {
	if total <= 0 {
		return nil
	}
	taskLen, remainder := total/(e.workers*2), total%(e.workers*2)
	if taskLen == 0 {
		taskLen, remainder = 1, 0
	}

	tasks := make([]task, 0, e.workers*2+1)
	start := 0
	for start < total {
		end := start + taskLen
		if remainder > 0 {
			end++
			remainder--
		}
		if end > total {
			end = total
		}
		tasks = append(tasks, task{start: start, end: end})
		start = end
	}
	return tasks
}

// dispatchTask runs f over every task with at most e.workers in flight and
// returns the first error once all tasks have finished.
func (e *executor) dispatchTask(total int, f func(t task) error) error {
	var g errgroup.Group
	g.SetLimit(e.workers)
	for _, t := range e.split(total) {
		t := t
		g.Go(func() error {
			return f(t)
		})
	}
	return g.Wait()
}
