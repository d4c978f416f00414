package common

const (
	// MaxFormBody limits form-encoded request bodies for submit/login endpoints.
	MaxFormBody = 1 << 20
)
