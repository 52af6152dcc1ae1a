package dupfind

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"

	"github.com/idelchi/dupfind/internal/logging"
)

// collector aggregates walk output from concurrent fastwalk callbacks
// using a mutex.
type collector struct {
	mu       sync.Mutex
	entries  []FileEntry
	seen     map[string]struct{}
	files    int64
	bytes    int64
	warnings int64
}

func newCollector() *collector {
	return &collector{
		seen: make(map[string]struct{}),
	}
}

// add records a discovered file unless its absolute path has been seen
// already, which happens when given roots overlap.
func (c *collector) add(entry FileEntry, abs string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, dup := c.seen[abs]; dup {
		return
	}

	c.seen[abs] = struct{}{}
	c.entries = append(c.entries, entry)
	c.files++
	c.bytes += entry.Size
}

// warn counts a skipped path. This operation is protected by a mutex
// since fastwalk calls the callback from multiple goroutines.
func (c *collector) warn() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warnings++
}

// warningCount returns the number of paths skipped so far.
func (c *collector) warningCount() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.warnings
}

// counts returns the running file and byte totals for progress display.
func (c *collector) counts() (files, bytes int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.files, c.bytes
}

// sorted returns the collected entries in lexicographic path order.
// Every later stage relies on this order: it fixes the canonical member
// of each duplicate group and the order groups are reported in.
func (c *collector) sorted() []FileEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make([]FileEntry, len(c.entries))
	copy(entries, c.entries)

	sortByPath(entries)

	return entries
}

// relDepth returns the depth of path below root: 0 for entries directly
// inside root, -1 for the root itself.
func relDepth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return -1
	}

	return strings.Count(rel, string(filepath.Separator))
}

// excludedBy returns the first pattern matching path, or nil.
func excludedBy(path string, patterns []*regexp.Regexp) *regexp.Regexp {
	fPath := filepath.ToSlash(path)

	for _, re := range patterns {
		if re.MatchString(fPath) {
			return re
		}
	}

	return nil
}

// walkRoots enumerates regular files under every root, bounded by
// opt.MaxDepth, and feeds them into coll. Per-path errors are warnings;
// the only fatal conditions are cancellation and every root being
// unusable.
func walkRoots(ctx context.Context, opt Options, excludes []*regexp.Regexp, coll *collector) error {
	log := logging.Get()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	conf := &fastwalk.Config{
		Follow: false, // never descend into directory symlinks
	}

	usable := 0

	for _, root := range opt.Roots {
		root = filepath.Clean(root)

		if statInfo, err := os.Stat(root); err != nil {
			log.Warn().Err(err).Str("root", root).Msg("skipping unreadable root")
			coll.warn()

			continue
		} else if !statInfo.IsDir() {
			log.Warn().Str("root", root).Msg("skipping root: not a directory")
			coll.warn()

			continue
		}

		usable++

		// Display rule: relative to cwd when the root lies under it,
		// absolute otherwise.
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return fmt.Errorf("resolving absolute path for %q: %w", root, err)
		}

		relToRoot, err := filepath.Rel(cwd, absRoot)
		outsideCwd := err != nil || strings.HasPrefix(relToRoot, "..")

		walkErr := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				log.Warn().Err(err).Str("path", path).Msg("skipping path")
				coll.warn()

				return nil
			}

			select {
			case <-ctx.Done():
				return context.Canceled
			default:
			}

			depth := relDepth(root, path)

			if d.IsDir() {
				if depth >= opt.MaxDepth {
					return filepath.SkipDir
				}

				return nil
			}

			if depth > opt.MaxDepth {
				return nil
			}

			if matched := excludedBy(path, excludes); matched != nil {
				log.Debug().Str("path", path).Str("pattern", matched.String()).Msg("excluded by pattern")

				return nil
			}

			size, ok := entrySize(d, path, opt.DerefSymlinks, coll)
			if !ok {
				return nil
			}

			if size < opt.MinSize {
				return nil
			}

			abs, absErr := filepath.Abs(path)
			if absErr != nil {
				abs = path
			}

			coll.add(FileEntry{Path: displayPath(cwd, path, abs, outsideCwd), Size: size}, abs)

			return nil
		})
		if walkErr != nil {
			return walkErr
		}
	}

	if usable == 0 {
		return fmt.Errorf("no readable root directories among %v", opt.Roots)
	}

	return nil
}

// entrySize resolves the size of a walk entry, applying the symlink
// policy. The second return is false when the entry does not count as a
// regular file.
func entrySize(d fs.DirEntry, path string, deref bool, coll *collector) (int64, bool) {
	log := logging.Get()

	if d.Type()&fs.ModeSymlink != 0 {
		if !deref {
			return 0, false
		}

		// Dereference: compare the link by its target's content.
		info, err := os.Stat(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("skipping broken symlink")
			coll.warn()

			return 0, false
		}

		if !info.Mode().IsRegular() {
			return 0, false
		}

		return info.Size(), true
	}

	if !d.Type().IsRegular() {
		return 0, false
	}

	info, err := d.Info()
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("skipping file: stat failed")
		coll.warn()

		return 0, false
	}

	return info.Size(), true
}

// displayPath returns the path as it appears in reports.
func displayPath(cwd, path, abs string, outsideCwd bool) string {
	if outsideCwd {
		return abs
	}

	rel, err := filepath.Rel(cwd, abs)
	if err != nil {
		return path
	}

	return rel
}
