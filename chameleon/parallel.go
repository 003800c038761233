package chameleon

import "golang.org/x/sync/errgroup"

// rowRange is a half-open range of rows handled by one worker.
type rowRange struct {
	start, end int
}

// splitRows divides n rows into at most numWorkers contiguous ranges, in
// ascending order. It returns a single range when numWorkers <= 1.
func splitRows(n, numWorkers int) []rowRange {
	if n <= 0 {
		return nil
	}
	if numWorkers <= 1 || n == 1 {
		return []rowRange{{0, n}}
	}

	rowsPerWorker := (n + numWorkers - 1) / numWorkers
	ranges := make([]rowRange, 0, numWorkers)
	for w := 0; w < numWorkers; w++ {
		start := w * rowsPerWorker
		if start >= n {
			break
		}
		ranges = append(ranges, rowRange{start, min(start+rowsPerWorker, n)})
	}
	return ranges
}

// forEachRowRange runs fn once per range returned by splitRows. Ranges never
// overlap, so fn may write to per-row storage without synchronization. With
// a single range fn runs on the calling goroutine.
func forEachRowRange(n, numWorkers int, fn func(w int, r rowRange) error) error {
	ranges := splitRows(n, numWorkers)
	if len(ranges) == 1 {
		return fn(0, ranges[0])
	}

	var g errgroup.Group
	for w, r := range ranges {
		g.Go(func() error {
			return fn(w, r)
		})
	}
	return g.Wait()
}
