package storage

import "io"

type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	// Append adds data to the end of key as a single write.
	Append(key string, data []byte) error
}
