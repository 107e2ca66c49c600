package http

const (
	CodeUnknown           = "UNKNOWN"
	CodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeNotAcceptable     = "NOT_ACCEPTABLE"
	CodeRateLimited       = "RATE_LIMITED"
	CodeRequestTooLarge   = "REQUEST_TOO_LARGE"
	CodeInternal          = "INTERNAL_ERROR"
)
