package blobstore

import (
	"context"

	"github.com/ferrostorage/blobvault/pkg/util"
)

// Manager is the BlobStorageManager: it owns a fixed, named collection
// of storage backends and coordinates fan-out reads and writes across
// them. A blob is considered stored if any one backend accepts it, and
// retrieved if any one backend returns it.
//
// Manager's backend map is read-only after construction, so it
// requires no locking of its own. The backends themselves are shared
// across concurrent calls and must be internally thread-safe; Manager
// does not own their lifetime.
type Manager struct {
	backends map[BackendName]Backend
	chainID  int64

	// errorLogger receives those per-backend failures subsumed into a
	// partial success (and therefore never surfaced to the caller as a
	// returned error) that util.IsInfrastructureError classifies as
	// infrastructure failures.
	errorLogger util.ErrorLogger
}

// NewManager constructs a Manager over backends, keyed by the name
// each one is addressed under. chainID is stored verbatim and exposed
// via ChainID; this layer does not interpret it.
//
// NewManager fails with NoBackendsConfiguredError if backends is
// empty. The set of backends is fixed for the lifetime of the Manager;
// there is no later way to add or remove one.
func NewManager(backends map[BackendName]Backend, chainID int64) (*Manager, error) {
	if len(backends) == 0 {
		return nil, &NoBackendsConfiguredError{}
	}
	copied := make(map[BackendName]Backend, len(backends))
	for name, backend := range backends {
		copied[name] = backend
	}
	return &Manager{
		backends:    copied,
		chainID:     chainID,
		errorLogger: util.DefaultErrorLogger,
	}, nil
}

// ChainID returns the opaque chain identifier the Manager was
// constructed with.
func (m *Manager) ChainID() int64 {
	return m.chainID
}

// GetStorage returns the backend registered under name, or false if no
// such backend is registered. It raises no error for absence; it is a
// lookup primitive, not an operation.
func (m *Manager) GetStorage(name BackendName) (Backend, bool) {
	backend, ok := m.backends[name]
	return backend, ok
}

// readAttempt is the outcome of invoking Fetch on a single backend on
// behalf of GetBlob.
type readAttempt struct {
	result *BlobReadResult
	err    backendFailure
}

// GetBlob fans out Fetch to the backends named by descriptors and
// returns the first one that succeeds. descriptors must be non-empty.
//
// Descriptors naming a backend that is not registered in the Manager
// are filtered out before the fan-out; they contribute a "File not
// found" entry to the aggregate error if every attempt fails. The
// order in which concurrent successes are preferred is unspecified.
func (m *Manager) GetBlob(ctx context.Context, descriptors ...BlobReadDescriptor) (*BlobReadResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan readAttempt, len(descriptors))
	for _, descriptor := range descriptors {
		descriptor := descriptor
		backend, ok := m.backends[descriptor.Storage]
		if !ok {
			results <- readAttempt{err: backendFailure{storage: descriptor.Storage, cause: errUnknownBackend}}
			continue
		}
		go func() {
			data, err := backend.Fetch(ctx, descriptor.Reference)
			if err != nil {
				results <- readAttempt{err: backendFailure{storage: descriptor.Storage, cause: err}}
				return
			}
			results <- readAttempt{result: &BlobReadResult{Storage: descriptor.Storage, Data: data}}
		}()
	}

	failures := make([]backendFailure, 0, len(descriptors))
	for i := 0; i < len(descriptors); i++ {
		attempt := <-results
		if attempt.result != nil {
			return attempt.result, nil
		}
		failures = append(failures, attempt.err)
	}
	return nil, &AllReadsFailedError{Failures: failures}
}

// writeAttempt is the outcome of invoking Store on a single backend on
// behalf of StoreBlob.
type writeAttempt struct {
	reference *BlobReference
	err       *backendFailure
}

// StoreBlob fans out Store for blob to every backend named by
// options.SelectedStorages, or to every registered backend if options
// is nil or SelectedStorages is empty.
//
// If SelectedStorages names a backend that is not registered, the call
// fails with SelectedBackendsUnavailableError before any write is
// attempted. If every targeted backend fails, the call fails with
// AllWritesFailedError. Otherwise it returns a StoreResult combining
// whichever backends succeeded and whichever failed; a partial failure
// is a normal return, not an error.
func (m *Manager) StoreBlob(ctx context.Context, blob Blob, options *StoreOptions) (*StoreResult, error) {
	targets, err := m.resolveTargets(options)
	if err != nil {
		return nil, err
	}

	results := make(chan writeAttempt, len(targets))
	for _, backend := range targets {
		backend := backend
		go func() {
			reference, err := backend.Store(ctx, blob.VersionedHash, blob.Data)
			if err != nil {
				results <- writeAttempt{err: &backendFailure{storage: backend.Name(), cause: err}}
				return
			}
			results <- writeAttempt{reference: &BlobReference{Storage: backend.Name(), Reference: reference}}
		}()
	}

	references := make([]BlobReference, 0, len(targets))
	storeErrors := make([]StoreError, 0, len(targets))
	failures := make([]backendFailure, 0, len(targets))
	for i := 0; i < len(targets); i++ {
		attempt := <-results
		if attempt.reference != nil {
			references = append(references, *attempt.reference)
			continue
		}
		storeErrors = append(storeErrors, StoreError{Storage: attempt.err.storage, Cause: attempt.err.cause})
		failures = append(failures, *attempt.err)
	}

	if len(references) == 0 {
		return nil, &AllWritesFailedError{VersionedHash: blob.VersionedHash, Failures: failures}
	}
	for _, storeErr := range storeErrors {
		wrapped := util.StatusWrap(storeErr.Cause, string(storeErr.Storage))
		if util.IsInfrastructureError(wrapped) {
			m.errorLogger.Log(wrapped)
		}
	}
	return &StoreResult{References: references, Errors: storeErrors}, nil
}

// resolveTargets computes the effective set of backends StoreBlob
// should write to, validating a selection if one was given.
func (m *Manager) resolveTargets(options *StoreOptions) ([]Backend, error) {
	if options == nil || len(options.SelectedStorages) == 0 {
		targets := make([]Backend, 0, len(m.backends))
		for _, backend := range m.backends {
			targets = append(targets, backend)
		}
		return targets, nil
	}

	targets := make([]Backend, 0, len(options.SelectedStorages))
	var missing []BackendName
	for _, name := range options.SelectedStorages {
		backend, ok := m.backends[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		targets = append(targets, backend)
	}
	if len(missing) > 0 {
		return nil, &SelectedBackendsUnavailableError{Missing: missing}
	}
	return targets, nil
}
