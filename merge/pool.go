package merge

import (
	"fmt"
	"sync"
)

// MergeAll runs every job and returns the results in job order. With workers
// of 1 or less the jobs run one after another; otherwise at most workers
// merges run at once. The first failure, or cancellation of the Merger's
// context, stops new jobs from starting and is returned once the running ones
// finish, together with the results of the jobs that did complete.
func (m *Merger) MergeAll(jobs []Job, workers int) ([]Result, error) {
	targets := make(map[string]Job, len(jobs))
	for _, job := range jobs {
		target := OutputName(m.Dir, job)
		if prev, exists := targets[target]; exists {
			return nil, fmt.Errorf("%s and %s would both be merged into %s", prev, job, target)
		}
		targets[target] = job
	}

	results := make([]Result, len(jobs))
	done := make([]bool, len(jobs))

	if workers <= 1 {
		for i, job := range jobs {
			if err := m.ctx().Err(); err != nil {
				return completed(results, done), err
			}

			res, err := m.Merge(job)
			if err != nil {
				return completed(results, done), err
			}
			results[i] = res
			done[i] = true
		}

		return results, nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}
	failed := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return firstErr != nil
	}

	// Will block after `workers` simultaneous merges are running
	semaphore := make(chan struct{}, workers)

	for i, job := range jobs {
		semaphore <- struct{}{}
		if err := m.ctx().Err(); err != nil {
			fail(err)
		}
		if failed() {
			<-semaphore
			break
		}

		wg.Add(1)
		go func(i int, job Job) {
			defer wg.Done()
			defer func() { <-semaphore }()

			res, err := m.Merge(job)
			if err != nil {
				fail(err)
				return
			}

			mu.Lock()
			defer mu.Unlock()
			results[i] = res
			done[i] = true
		}(i, job)
	}

	wg.Wait()

	if firstErr != nil {
		return completed(results, done), firstErr
	}

	return results, nil
}

func completed(results []Result, done []bool) []Result {
	out := make([]Result, 0, len(results))
	for i, res := range results {
		if done[i] {
			out = append(out, res)
		}
	}

	return out
}
