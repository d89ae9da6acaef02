package plog

import (
	"strconv"

	"github.com/pkg/errors"
)

const (
	// Error messages used across logger operations (used for testing).
	_ERROR_MESSAGE_NOT_INITIALIZED   = "logger is not initialized (use NewLogger)"
	_ERROR_MESSAGE_INTERCEPTOR_ITEM  = "interceptor produced a log item without tag or message"
	_ERROR_MESSAGE_UNKNOWN_LEVEL     = "unknown log level"
	_ERROR_MESSAGE_PANIC_PRINTING    = "panic printing log"
	_ERROR_UNKNOWN_PANIC_TEXT        = "[no panic description]"
	_ERROR_MESSAGE_INTERCEPTOR_INDEX = "interceptor #"
)

var (
	ErrNotInitialized      = errors.New(_ERROR_MESSAGE_NOT_INITIALIZED)
	ErrInterceptorContract = errors.New(_ERROR_MESSAGE_INTERCEPTOR_ITEM)
)

// InterceptorError is the panic value raised when an interceptor breaks the
// item contract. It carries the offending item.
type InterceptorError struct {
	Index int     // position of the interceptor in the chain
	Item  LogItem // what the interceptor returned
}

func (e *InterceptorError) Error() string {
	return _ERROR_MESSAGE_INTERCEPTOR_INDEX + strconv.Itoa(e.Index) + ": " + ErrInterceptorContract.Error()
}

func (e *InterceptorError) Unwrap() error {
	return ErrInterceptorContract
}
