package dupfind

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func makeBucket(t *testing.T, dir string, contents map[string]string) []FileEntry {
	t.Helper()

	bucket := make([]FileEntry, 0, len(contents))

	for name, content := range contents {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("creating file: %v", err)
		}

		bucket = append(bucket, FileEntry{Path: path, Size: int64(len(content))})
	}

	sortByPath(bucket)

	return bucket
}

func TestHashEntries_ResultsSortedByPath(t *testing.T) {
	dir := t.TempDir()

	bucket := makeBucket(t, dir, map[string]string{
		"zeta.txt":  "aaaa",
		"alpha.txt": "bbbb",
		"mid.txt":   "cccc",
	})

	hashed, failures, err := hashEntries(SHA256Fingerprinter{}, [][]FileEntry{bucket}, 4)
	if err != nil {
		t.Fatalf("hashEntries() error = %v", err)
	}

	if failures != 0 {
		t.Errorf("expected no failures, got %d", failures)
	}

	if len(hashed) != 3 {
		t.Fatalf("expected 3 hashed entries, got %d", len(hashed))
	}

	for i, want := range []string{"alpha.txt", "mid.txt", "zeta.txt"} {
		if filepath.Base(hashed[i].Path) != want {
			t.Errorf("hashed[%d] = %q, want basename %q", i, hashed[i].Path, want)
		}

		if hashed[i].Digest == (Digest{}) {
			t.Errorf("hashed[%d] has zero digest", i)
		}
	}
}

func TestHashEntries_WorkerCountDoesNotChangeOutput(t *testing.T) {
	dir := t.TempDir()

	contents := make(map[string]string, 20)
	for i := 0; i < 20; i++ {
		contents[fmt.Sprintf("file%02d.txt", i)] = fmt.Sprintf("content-%d", i%5)
	}

	bucket := makeBucket(t, dir, contents)

	baseline, _, err := hashEntries(SHA256Fingerprinter{}, [][]FileEntry{bucket}, 1)
	if err != nil {
		t.Fatalf("hashEntries() error = %v", err)
	}

	for _, workers := range []int{2, 4, 8} {
		hashed, _, err := hashEntries(SHA256Fingerprinter{}, [][]FileEntry{bucket}, workers)
		if err != nil {
			t.Fatalf("hashEntries(workers=%d) error = %v", workers, err)
		}

		if len(hashed) != len(baseline) {
			t.Fatalf("workers=%d: expected %d entries, got %d", workers, len(baseline), len(hashed))
		}

		for i := range baseline {
			if hashed[i] != baseline[i] {
				t.Errorf("workers=%d: entry %d differs: %v vs %v", workers, i, hashed[i], baseline[i])
			}
		}
	}
}

func TestHashEntries_UnreadableFileExcluded(t *testing.T) {
	dir := t.TempDir()

	bucket := makeBucket(t, dir, map[string]string{
		"good.txt": "data",
	})

	bucket = append(bucket, FileEntry{Path: filepath.Join(dir, "vanished.txt"), Size: 4})
	sortByPath(bucket)

	hashed, failures, err := hashEntries(SHA256Fingerprinter{}, [][]FileEntry{bucket}, 2)
	if err != nil {
		t.Fatalf("hashEntries() error = %v", err)
	}

	if failures != 1 {
		t.Errorf("expected 1 failure, got %d", failures)
	}

	if len(hashed) != 1 || filepath.Base(hashed[0].Path) != "good.txt" {
		t.Errorf("expected only good.txt to survive, got %v", hashed)
	}
}

func TestHashEntries_NoBuckets(t *testing.T) {
	hashed, failures, err := hashEntries(SHA256Fingerprinter{}, nil, 2)
	if err != nil {
		t.Fatalf("hashEntries() error = %v", err)
	}

	if len(hashed) != 0 || failures != 0 {
		t.Errorf("expected empty result, got %v (%d failures)", hashed, failures)
	}
}
