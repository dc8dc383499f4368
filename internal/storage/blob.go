package storage

import "io"

// BlobStore holds assignment upload files. Keys are opaque handles
// recorded on submissions; contents are never interpreted.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
}
