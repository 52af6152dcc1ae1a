package dupfind

// bucketBySize splits entries into size buckets. Buckets with a single
// member cannot contain duplicates and are returned separately as
// singletons so they skip hashing but still count as unique contents.
//
// Entries must already be in path order; each bucket preserves it.
func bucketBySize(entries []FileEntry) (buckets [][]FileEntry, singletons []FileEntry) {
	bySize := make(map[int64][]FileEntry)
	order := make([]int64, 0)

	for _, entry := range entries {
		if _, ok := bySize[entry.Size]; !ok {
			order = append(order, entry.Size)
		}

		bySize[entry.Size] = append(bySize[entry.Size], entry)
	}

	for _, size := range order {
		bucket := bySize[size]
		if len(bucket) < 2 {
			singletons = append(singletons, bucket[0])

			continue
		}

		buckets = append(buckets, bucket)
	}

	return buckets, singletons
}
