package storage

import "io"

// BlobStore retains generated instrument packages for later download.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
}
