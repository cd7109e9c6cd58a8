package convex

import "sync"

// parallel calls fn once for every item. The items are cut in contiguous parts, one
// goroutine per part, and at most workers parts.
func parallel[T any](items []T, workers int, fn func(item T)) {
	if len(items) == 0 {
		return
	}
	size := (len(items) + workers - 1) / max(1, workers)

	var wg sync.WaitGroup
	for start := 0; start < len(items); start += size {
		part := items[start:min(start+size, len(items))]

		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, item := range part {
				fn(item)
			}
		}()
	}
	wg.Wait()
}
