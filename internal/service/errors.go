package service

import "errors"

// ErrInvalidSymbol indicates an empty symbol in a query.
var ErrInvalidSymbol = errors.New("symbol is required")

// ErrAsyncDisabled indicates the async relay queue is not configured.
var ErrAsyncDisabled = errors.New("async relay is disabled")

// ErrInternal indicates an internal server error.
var ErrInternal = errors.New("internal error")

// ErrInternalQueue indicates an internal queue error.
var ErrInternalQueue = errors.New("internal queue error")
