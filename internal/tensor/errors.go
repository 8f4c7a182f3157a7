package tensor

import "errors"

// Common errors.
var (
	ErrInvalidShape         = errors.New("invalid shape")
	ErrInvalidDType         = errors.New("invalid dtype")
	ErrOutOfRange           = errors.New("index out of range")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrCorrupted            = errors.New("corrupted tensor data")
	ErrBackendMismatch      = errors.New("backend cannot materialize buffer")
	ErrCloneUnsupported     = errors.New("backend does not support cloning")
)
