package dupfind

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/idelchi/dupfind/internal/logging"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// startProgressReporter invokes hook(files, bytes) on each tick until ctx is done.
func startProgressReporter(ctx context.Context, coll *collector, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				files, bytes := coll.counts()
				hook(files, bytes)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Run performs a duplicate scan over opt.Roots and returns the report.
//
// The pipeline runs strictly forward: walk, bucket by size, fingerprint
// surviving buckets on the hash pool, regroup by (size, fingerprint).
// Unreadable paths and files are skipped with a warning; Run fails only
// on invalid configuration, cancellation, or when every root is
// unusable. An interrupted run produces no report.
func Run(ctx context.Context, opt Options, progressHook func(int64, int64)) (*Report, error) {
	log := logging.Get()

	if len(opt.Roots) == 0 {
		opt.Roots = []string{"."}
	}

	if opt.MaxDepth < 0 {
		return nil, fmt.Errorf("max depth cannot be negative: %d", opt.MaxDepth)
	}

	excludes := make([]*regexp.Regexp, 0, len(opt.Excludes))

	for _, pattern := range opt.Excludes {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compiling exclusion pattern %q: %w", pattern, err)
		}

		excludes = append(excludes, re)
	}

	// Child context so the progress reporter is always cleaned up.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()

	coll := newCollector()

	startProgressReporter(ctx, coll, progressHook, opt.ProgressInterval)

	if err := walkRoots(ctx, opt, excludes, coll); err != nil {
		return nil, err
	}

	entries := coll.sorted()
	log.Debug().Int("files", len(entries)).Msg("walk complete")

	buckets, singletons := bucketBySize(entries)
	log.Debug().Int("buckets", len(buckets)).Int("singletons", len(singletons)).Msg("size bucketing complete")

	hashed, failures, err := hashEntries(SHA256Fingerprinter{}, buckets, opt.Workers)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := summarize(groupEntries(hashed, singletons))
	report.FilesScanned = int64(len(entries))
	report.Warnings = coll.warningCount() + failures
	report.Elapsed = time.Since(start)

	return report, nil
}
