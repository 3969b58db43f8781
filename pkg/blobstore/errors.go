package blobstore

import (
	"fmt"
	"strings"
)

// NoBackendsConfiguredError is returned by NewManager when constructed
// with an empty backend map. It is a caller misconfiguration, not a
// transient condition.
type NoBackendsConfiguredError struct{}

func (e *NoBackendsConfiguredError) Error() string {
	return "No blob storages provided"
}

// SelectedBackendsUnavailableError is returned by StoreBlob's
// pre-flight check when StoreOptions.SelectedStorages names one or
// more backends that are not registered in the manager. No write is
// attempted when this error is returned.
type SelectedBackendsUnavailableError struct {
	Missing []BackendName
}

func (e *SelectedBackendsUnavailableError) Error() string {
	names := make([]string, len(e.Missing))
	for i, n := range e.Missing {
		names[i] = string(n)
	}
	return fmt.Sprintf("Some of the selected storages are not available: %s", strings.Join(names, ", "))
}

// backendFailure pairs a backend name with the error it produced
// during a fan-out. It is the shared carrier behind both aggregate
// error types below, rendered to their pinned string forms only at
// the boundary so provenance survives until then.
type backendFailure struct {
	storage BackendName
	cause   error
}

// AllReadsFailedError is returned by GetBlob when every descriptor
// either named an unregistered backend or the backend it named failed
// to fetch the blob.
type AllReadsFailedError struct {
	Failures []backendFailure
}

func (e *AllReadsFailedError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = fmt.Sprintf("%s - %s", f.storage, f.cause.Error())
	}
	return fmt.Sprintf("Failed to get blob from any of the storages: %s", strings.Join(parts, ", "))
}

// errUnknownBackend is the error text synthesized for descriptors
// naming a backend the manager does not have registered; it is not a
// failure attributable to the backend itself.
var errUnknownBackend = fmt.Errorf("File not found")

// AllWritesFailedError is returned by StoreBlob when every target
// backend in the effective selection failed to store the blob.
type AllWritesFailedError struct {
	VersionedHash string
	Failures      []backendFailure
}

func (e *AllWritesFailedError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = fmt.Sprintf("%s: %s", f.storage, f.cause.Error())
	}
	return fmt.Sprintf("Failed to upload blob %s to any of the storages: %s", e.VersionedHash, strings.Join(parts, ", "))
}
