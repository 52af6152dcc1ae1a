package dupfind

import (
	"testing"
)

func TestBucketBySize_PrunesSingletons(t *testing.T) {
	entries := []FileEntry{
		{Path: "a.txt", Size: 6},
		{Path: "b.txt", Size: 3},
		{Path: "c.txt", Size: 6},
		{Path: "d.txt", Size: 9},
	}

	buckets, singletons := bucketBySize(entries)

	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(buckets))
	}

	if len(buckets[0]) != 2 || buckets[0][0].Path != "a.txt" || buckets[0][1].Path != "c.txt" {
		t.Errorf("unexpected bucket contents: %v", buckets[0])
	}

	if len(singletons) != 2 {
		t.Fatalf("expected 2 singletons, got %d", len(singletons))
	}

	if singletons[0].Path != "b.txt" || singletons[1].Path != "d.txt" {
		t.Errorf("unexpected singletons: %v", singletons)
	}
}

func TestBucketBySize_PreservesEntryOrder(t *testing.T) {
	entries := []FileEntry{
		{Path: "a.txt", Size: 4},
		{Path: "b.txt", Size: 4},
		{Path: "c.txt", Size: 4},
	}

	buckets, singletons := bucketBySize(entries)

	if len(singletons) != 0 {
		t.Fatalf("expected no singletons, got %v", singletons)
	}

	if len(buckets) != 1 || len(buckets[0]) != 3 {
		t.Fatalf("expected one bucket of 3, got %v", buckets)
	}

	for i, want := range []string{"a.txt", "b.txt", "c.txt"} {
		if buckets[0][i].Path != want {
			t.Errorf("bucket[%d] = %q, want %q", i, buckets[0][i].Path, want)
		}
	}
}

func TestBucketBySize_Empty(t *testing.T) {
	buckets, singletons := bucketBySize(nil)

	if len(buckets) != 0 || len(singletons) != 0 {
		t.Errorf("expected empty output, got %v / %v", buckets, singletons)
	}
}
