package analyze

import (
	"fmt"
	"runtime"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/spectrokit/spectrokit/internal/logging"
)

// Progress describes one completed file attempt. Sent to the observer in
// completion order, exactly once per input file, success or not.
type Progress struct {
	File string
	Err  error
}

// BatchStats summarizes a finished run.
type BatchStats struct {
	Attempted int
	Succeeded int
}

// RunBatch fans the per-file analyzer out over a fixed-size worker pool
// and collects results as they complete. Workers share nothing mutable:
// each file's waveform lives and dies inside its own worker invocation.
//
// Whole-file failures, including panics escaping a feature or decoder,
// are recovered here, logged with the file path, and excluded from the
// returned results. The returned slice is sorted back into the original
// discovery order so reports are reproducible run to run.
func RunBatch(files []string, opts Options, workers int, observer func(Progress)) ([]Result, BatchStats) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) {
		workers = len(files)
	}

	type item struct {
		index  int
		result *Result
		err    error
	}

	jobs := make(chan int, len(files))
	completions := make(chan item, len(files))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				res, err := analyzeGuarded(files[idx], opts)
				completions <- item{index: idx, result: res, err: err}
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(completions)
	}()

	indexed := make([]*Result, len(files))
	stats := BatchStats{Attempted: len(files)}
	for c := range completions {
		if c.err != nil {
			logging.Logger.Error("file analysis failed",
				zap.String("file", files[c.index]),
				zap.Error(c.err))
		} else {
			indexed[c.index] = c.result
			stats.Succeeded++
		}
		if observer != nil {
			observer(Progress{File: files[c.index], Err: c.err})
		}
	}

	results := make([]Result, 0, stats.Succeeded)
	for _, r := range indexed {
		if r != nil {
			results = append(results, *r)
		}
	}
	return results, stats
}

// analyzeGuarded isolates one file's analysis, converting panics into
// ordinary per-file errors so a misbehaving decoder cannot abort the
// batch.
func analyzeGuarded(path string, opts Options) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("panic analyzing %s: %v", path, r)
		}
	}()
	return AnalyzeFile(path, opts)
}

// SortByFile orders results lexically by path. Used when re-reading
// persisted reports whose origin ordering is unknown.
func SortByFile(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].File < results[j].File
	})
}
