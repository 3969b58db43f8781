package swarm

import (
	"testing"

	"github.com/ferrostorage/blobvault/pkg/blobstore"

	"github.com/stretchr/testify/require"
)

func TestBackendName(t *testing.T) {
	b := &backend{}
	require.Equal(t, blobstore.Swarm, b.Name())
}
