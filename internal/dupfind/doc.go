// Package dupfind implements the duplicate-file detection pipeline.
//
// It walks directory trees using fastwalk for parallel traversal,
// buckets files by exact size to avoid needless hashing, fingerprints
// candidate files with SHA-256 on a bounded worker pool, and groups
// byte-identical files into duplicate sets with a deterministic
// canonical member.
package dupfind
