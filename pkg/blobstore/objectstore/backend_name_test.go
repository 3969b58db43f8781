package objectstore

import (
	"testing"

	"github.com/ferrostorage/blobvault/pkg/blobstore"

	"github.com/stretchr/testify/require"
)

func TestBackendName(t *testing.T) {
	b := &backend{keyPrefix: "blobs/"}
	require.Equal(t, blobstore.Google, b.Name())
}
