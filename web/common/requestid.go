package common

const (
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey holds the request id in the gin context.
	RequestIDKey = "requestID"
)
