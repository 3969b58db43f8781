package postgres_test

import (
	"context"
	"testing"

	"github.com/ferrostorage/blobvault/pkg/blobstore/postgres"

	"github.com/stretchr/testify/require"
)

func TestNewBackendRequiresConnectionString(t *testing.T) {
	_, err := postgres.NewBackend(context.Background(), postgres.Config{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "connection string is required")
}
