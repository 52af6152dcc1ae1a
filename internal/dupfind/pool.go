package dupfind

import (
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/idelchi/dupfind/internal/logging"
)

const taskBufferSize = 256

// hashResult is the outcome of fingerprinting a single entry.
type hashResult struct {
	entry FileEntry
	err   error
}

// hashPool fingerprints files on a bounded set of workers. Completion
// order is nondeterministic; callers must reassemble and sort results
// before any ordering-sensitive step.
type hashPool struct {
	fp      Fingerprinter
	workers int
	tasks   chan FileEntry
	results chan hashResult
	wg      sync.WaitGroup
	pool    *ants.Pool
}

// newHashPool creates a pool of the given size. Zero or negative means
// one worker per CPU core.
func newHashPool(fp Fingerprinter, workers int) (*hashPool, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}

	return &hashPool{
		fp:      fp,
		workers: workers,
		tasks:   make(chan FileEntry, taskBufferSize),
		results: make(chan hashResult, taskBufferSize),
		pool:    pool,
	}, nil
}

// start launches the workers. Results must be drained until the channel
// closes, which happens after close has been called and every pending
// task finished.
func (p *hashPool) start() {
	logging.Get().Debug().Int("workers", p.workers).Msg("starting hash pool")

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)

		if err := p.pool.Submit(p.worker); err != nil {
			// The pool was sized for exactly this many workers, so
			// Submit only fails once the pool has been released.
			p.wg.Done()
		}
	}

	go func() {
		p.wg.Wait()
		close(p.results)
		p.pool.Release()
	}()
}

func (p *hashPool) worker() {
	defer p.wg.Done()

	for entry := range p.tasks {
		digest, err := p.fp.Fingerprint(entry.Path)
		entry.Digest = digest
		p.results <- hashResult{entry: entry, err: err}
	}
}

// add queues an entry for fingerprinting.
func (p *hashPool) add(entry FileEntry) {
	p.tasks <- entry
}

// close signals that no more tasks will be added.
func (p *hashPool) close() {
	close(p.tasks)
}

// hashEntries fingerprints every entry of every bucket in parallel and
// returns the successfully hashed entries sorted back into path order,
// plus the number of files dropped due to read errors. A file that
// cannot be read is excluded from duplicate consideration; the run
// continues for all other files.
func hashEntries(fp Fingerprinter, buckets [][]FileEntry, workers int) (hashed []FileEntry, failures int64, err error) {
	log := logging.Get()

	pool, err := newHashPool(fp, workers)
	if err != nil {
		return nil, 0, err
	}

	pool.start()

	go func() {
		for _, bucket := range buckets {
			for _, entry := range bucket {
				pool.add(entry)
			}
		}

		pool.close()
	}()

	for result := range pool.results {
		if result.err != nil {
			log.Warn().Err(result.err).Str("path", result.entry.Path).Msg("excluding unreadable file")
			failures++

			continue
		}

		hashed = append(hashed, result.entry)
	}

	sortByPath(hashed)

	return hashed, failures, nil
}
