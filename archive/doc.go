// Package archive provides backup export and import for the nursery store.
//
// An archive is a versioned JSON envelope holding the whole nursery
// document plus a BLAKE2b checksum of it, so a restore can detect a
// truncated or hand-edited file before touching the store. Import of
// multiple archive files parses and verifies them concurrently on a
// worker pool; the store itself is still written sequentially because
// every write goes through the single-document lock.
package archive
