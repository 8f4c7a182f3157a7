// Package parallel provides chunked parallel iteration for the Axon ML
// framework's host kernels.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 1024,
	}
}

// For executes f(i) for i in [0, n). Iterations must be independent: f runs
// concurrently across chunks when parallelism pays off, sequentially when it
// is disabled or n is below the chunk threshold.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// ForRows executes f(row) for every row of a rows-by-cols layout. Whether to
// parallelize is decided on the total element count, not the row count, so
// wide tensors with few rows still fan out.
func ForRows(rows, cols int, f func(row int), cfg Config) {
	if rows*cols < cfg.MinChunkSize {
		cfg.Enabled = false
	}
	cfg.MinChunkSize = 1
	For(rows, f, cfg)
}
