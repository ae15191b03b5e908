package errors

// InvalidArgument reports user-fixable input problems.
func InvalidArgument(format string, args ...interface{}) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// Unauthenticated reports missing or invalid credentials. The message is
// deliberately generic so callers cannot distinguish why authentication
// failed.
func Unauthenticated(format string, args ...interface{}) *Error {
	return Newf(CodeUnauthenticated, format, args...)
}

// NotFound reports a missing resource. Ownership-scoped lookups use the same
// code whether the row is absent or owned by someone else.
func NotFound(format string, args ...interface{}) *Error {
	return Newf(CodeNotFound, format, args...)
}

// AlreadyExists reports a uniqueness conflict.
func AlreadyExists(format string, args ...interface{}) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// RateLimited reports that the caller exceeded its request budget.
func RateLimited(format string, args ...interface{}) *Error {
	return Newf(CodeRateLimited, format, args...)
}

// Unavailable reports an unreachable or failing upstream dependency.
func Unavailable(format string, args ...interface{}) *Error {
	return Newf(CodeUnavailable, format, args...)
}

// BadUpstream reports upstream data that could not be interpreted.
func BadUpstream(format string, args ...interface{}) *Error {
	return Newf(CodeBadUpstream, format, args...)
}

// Internal reports an unexpected failure.
func Internal(format string, args ...interface{}) *Error {
	return Newf(CodeInternal, format, args...)
}
