package calculator

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecutor_SplitCoversRange(t *testing.T) {
	for _, c := range []struct{ workers, total int }{
		{1, 1}, {4, 3}, {4, 20}, {3, 100}, {8, 7}, {2, 0},
	} {
		tasks := newExecutor(c.workers).split(c.total)
		next := 0
		for _, tk := range tasks {
			assert.Equal(t, next, tk.start)
			assert.Greater(t, tk.end, tk.start)
			next = tk.end
		}
		assert.Equal(t, c.total, next, "workers=%d total=%d", c.workers, c.total)
	}
}

func TestExecutor_DispatchTask(t *testing.T) {
	var done int64
	err := newExecutor(3).dispatchTask(50, func(tk task) error {
		atomic.AddInt64(&done, int64(tk.end-tk.start))
		return nil
	})
	assert.NoError(t, err)
	assert.EqualValues(t, 50, done)

	boom := errors.New("boom")
	err = newExecutor(3).dispatchTask(10, func(tk task) error {
		if tk.start == 0 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}
