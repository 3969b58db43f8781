package util

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// StatusWrap prepends a string to the message of an existing error.
func StatusWrap(err error, msg string) error {
	p := status.Convert(err).Proto()
	p.Message = fmt.Sprintf("%s: %s", msg, p.Message)
	return status.ErrorProto(p)
}

// StatusWrapWithCode prepends a string to the message of an existing
// error, while replacing the error code.
func StatusWrapWithCode(err error, code codes.Code, msg string) error {
	p := status.Convert(err).Proto()
	p.Code = int32(code)
	p.Message = fmt.Sprintf("%s: %s", msg, p.Message)
	return status.ErrorProto(p)
}

// IsInfrastructureError returns true if an error is caused by a failure
// of the infrastructure, as opposed to it being caused by a parameter
// provided by the caller.
//
// This function may, for example, be used to determine whether a call
// should be retried.
func IsInfrastructureError(err error) bool {
	code := status.Code(err)
	return code == codes.Internal || code == codes.Unavailable || code == codes.Unknown
}
