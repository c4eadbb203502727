package refdata

import "errors"

// ErrDifferentArrayLength is returned when relay input sequences differ in length.
var ErrDifferentArrayLength = errors.New("different array length")

// ErrRefDataNotAvailable is returned for a symbol that was never relayed or never resolved.
var ErrRefDataNotAvailable = errors.New("ref data is not available")

// ErrInvalidQuoteRate is returned when the quote leg of a cross rate has a zero rate.
var ErrInvalidQuoteRate = errors.New("invalid quote rate")

// ErrRateOverflow is returned when a cross-rate product does not fit in 256 bits.
var ErrRateOverflow = errors.New("cross rate overflow")

// ErrNotInitialized is returned when the store slot has never been initialized.
var ErrNotInitialized = errors.New("reference store not initialized")
