package blobstore

import "context"

// BackendName is a stable tag identifying the kind of a storage
// backend. The set of valid names is closed but extensible: adding a
// new kind of backend only requires a new constant and an
// implementation of Backend, not a change to Manager.
type BackendName string

// Backend kinds known to this module's reference implementations. A
// Manager is free to be constructed with BackendName values outside
// this set; the manager itself attaches no meaning to any of them.
const (
	Postgres BackendName = "POSTGRES"
	Google   BackendName = "GOOGLE"
	Swarm    BackendName = "SWARM"
)

// Backend is the uniform capability every storage driver offers to
// Manager. Implementations are independent siblings: a new backend is
// added by implementing this interface and registering an instance
// under a BackendName, never by subclassing an existing one.
//
// Implementations must be safe for concurrent use: a single Backend
// instance may be called from multiple goroutines at once, as Manager
// fans out Store and Fetch calls in parallel.
type Backend interface {
	// Name returns the tag this backend was registered under. It
	// must remain stable for the lifetime of the backend.
	Name() BackendName

	// Store persists data under versionedHash and returns the
	// opaque reference under which it can later be retrieved via
	// Fetch. Store is not assumed to be idempotent; a caller that
	// stores the same versionedHash twice is assumed to have
	// intended that.
	Store(ctx context.Context, versionedHash string, data []byte) (reference string, err error)

	// Fetch retrieves the bytes previously returned by Store under
	// reference. It fails if reference is absent or the backend is
	// unavailable. A reference returned by one backend is not
	// assumed to be meaningful to another.
	Fetch(ctx context.Context, reference string) (data []byte, err error)
}
