package blobstore

// Blob is a caller-supplied payload to be stored. VersionedHash is
// treated as an opaque identifier; Manager neither derives it nor
// validates it against Data.
type Blob struct {
	VersionedHash string
	Data          []byte
}

// BlobReference names where a successfully stored blob can later be
// retrieved from. Reference is backend-defined and opaque to Manager.
type BlobReference struct {
	Storage   BackendName
	Reference string
}

// BlobReadDescriptor names a single backend and a reference within it,
// used as input to GetBlob. A descriptor whose Storage is not
// registered in the target Manager cannot succeed.
type BlobReadDescriptor struct {
	Storage   BackendName
	Reference string
}

// BlobReadResult is the outcome of a successful GetBlob call: the
// backend that produced Data and the bytes it returned.
type BlobReadResult struct {
	Storage BackendName
	Data    []byte
}

// StoreError records a single backend's failure during a storeBlob
// fan-out. Cause preserves the backend's original error verbatim.
type StoreError struct {
	Storage BackendName
	Cause   error
}

// StoreResult is the outcome of a storeBlob call that stored the blob
// on at least one backend. References holds one entry per backend
// that succeeded; Errors holds one entry per backend that failed. A
// backend never appears in both lists, and References is never empty.
type StoreResult struct {
	References []BlobReference
	Errors     []StoreError
}

// StoreOptions configures a StoreBlob call. A nil *StoreOptions, or one
// with a nil SelectedStorages, means "fan out to every backend
// registered in the manager".
type StoreOptions struct {
	// SelectedStorages, if non-empty, restricts the fan-out to this
	// subset of backend names. All of them must be registered in
	// the manager, or the call fails before any write is attempted.
	SelectedStorages []BackendName
}
