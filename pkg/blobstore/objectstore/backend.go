// Package objectstore implements a blobstore.Backend backed by a
// Google Cloud Storage bucket.
package objectstore

import (
	"context"
	"errors"
	"io"

	"github.com/ferrostorage/blobvault/pkg/blobstore"
	"github.com/ferrostorage/blobvault/pkg/util"

	"cloud.google.com/go/storage"

	"google.golang.org/grpc/codes"
)

type backend struct {
	bucket    *storage.BucketHandle
	keyPrefix string
}

// NewBackend returns a blobstore.Backend registered under
// blobstore.Google that stores objects in bucket under keyPrefix.
// References are the object's key (keyPrefix + versionedHash).
func NewBackend(bucket *storage.BucketHandle, keyPrefix string) blobstore.Backend {
	return &backend{bucket: bucket, keyPrefix: keyPrefix}
}

func (b *backend) Name() blobstore.BackendName {
	return blobstore.Google
}

func (b *backend) Store(ctx context.Context, versionedHash string, data []byte) (string, error) {
	key := b.keyPrefix + versionedHash
	w := b.bucket.Object(key).NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", util.StatusWrap(err, "Failed to write object")
	}
	if err := w.Close(); err != nil {
		return "", util.StatusWrap(err, "Failed to finalize object")
	}
	return key, nil
}

func (b *backend) Fetch(ctx context.Context, reference string) ([]byte, error) {
	r, err := b.bucket.Object(reference).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, util.StatusWrapWithCode(err, codes.NotFound, "Object not found")
	}
	if err != nil {
		return nil, util.StatusWrap(err, "Failed to open object")
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, util.StatusWrap(err, "Failed to read object")
	}
	return data, nil
}
