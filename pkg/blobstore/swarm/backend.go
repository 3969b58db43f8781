// Package swarm implements a blobstore.Backend over a content-addressed
// network store, reachable through an IPFS-compatible HTTP API.
package swarm

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ferrostorage/blobvault/pkg/blobstore"
	"github.com/ferrostorage/blobvault/pkg/util"

	shell "github.com/ipfs/go-ipfs-api"

	"google.golang.org/grpc/codes"
)

type backend struct {
	shell *shell.Shell
}

// NewBackend returns a blobstore.Backend registered under
// blobstore.Swarm that reaches the content-addressed network through
// the API server at apiURL. References are the content identifiers
// (CIDs) the network assigns the data; versionedHash plays no role in
// addressing, since the network derives its own reference from the
// content.
func NewBackend(apiURL string) (blobstore.Backend, error) {
	sh := shell.NewShell(apiURL)
	if _, err := sh.ID(); err != nil {
		return nil, fmt.Errorf("failed to connect to content-addressed network: %w", err)
	}
	return &backend{shell: sh}, nil
}

func (b *backend) Name() blobstore.BackendName {
	return blobstore.Swarm
}

func (b *backend) Store(ctx context.Context, versionedHash string, data []byte) (string, error) {
	cid, err := b.shell.Add(bytes.NewReader(data))
	if err != nil {
		return "", util.StatusWrap(err, "Failed to add content")
	}
	return cid, nil
}

func (b *backend) Fetch(ctx context.Context, reference string) ([]byte, error) {
	r, err := b.shell.Cat(reference)
	if err != nil {
		return nil, util.StatusWrapWithCode(err, codes.NotFound, "Content not found")
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, util.StatusWrap(err, "Failed to read content")
	}
	return data, nil
}
