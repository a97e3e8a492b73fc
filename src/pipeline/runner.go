package pipeline

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// Runner executes units concurrently and collects their results.
// Units are independent: no ordering guarantees, no shared state, no
// inter-unit communication.
type Runner struct {
	RootDir string
	Workers int // max concurrent units; 0 = NumCPU

	// OnFinish, when set, is called as each unit completes. Calls are
	// serialized.
	OnFinish func(Result)
}

// Run executes all units and returns their results sorted by job then cell.
// The only error paths are context cancellation; tool failures are results,
// not errors.
func (r *Runner) Run(ctx context.Context, units []Unit) ([]Result, error) {
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var (
		mu      sync.Mutex
		results []Result
		wg      sync.WaitGroup
	)

	sem := semaphore.NewWeighted(int64(workers))

	for _, unit := range units {
		if err := sem.Acquire(ctx, 1); err != nil {
			break // context cancelled — report what finished
		}
		wg.Add(1)
		go func(u Unit) {
			defer wg.Done()
			defer sem.Release(1)

			res := r.runUnit(ctx, u)

			mu.Lock()
			results = append(results, res)
			if r.OnFinish != nil {
				r.OnFinish(res)
			}
			mu.Unlock()
		}(unit)
	}

	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Job != b.Job {
			return a.Job < b.Job
		}
		return a.Cell < b.Cell
	})

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func (r *Runner) runUnit(ctx context.Context, u Unit) Result {
	res := Result{
		Job:      u.Job,
		Cell:     u.Cell,
		Advisory: u.Advisory,
		Status:   StatusRunning,
		Started:  time.Now(),
	}

	if u.InProcess != nil {
		out, ok, err := u.InProcess(ctx, r.RootDir)
		res.Output = out
		if err != nil {
			res.Output += err.Error() + "\n"
			ok = false
		}
		if ok {
			res.Status = StatusSucceeded
		} else {
			res.Status = StatusFailed
			res.ExitCode = 1
		}
	} else {
		out, code := runCommand(ctx, r.RootDir, u.Command)
		res.Output = out
		res.ExitCode = code
		if code == 0 {
			res.Status = StatusSucceeded
		} else {
			res.Status = StatusFailed
		}
	}

	res.Duration = time.Since(res.Started)
	return res
}
