package domain

import "errors"

var (
	// ErrNoBarcode covers both "no barcode in the image" and
	// "bytes are not a decodable image": the caller cannot tell
	// the difference and neither outcome is a fault.
	ErrNoBarcode = errors.New("barcode not detected")

	// ErrNotFound means the GTIN is absent from the catalog.
	ErrNotFound = errors.New("product not found")

	// ErrUnavailable is a transient catalog failure: timeout,
	// connection error or a 5xx answer. Retryable.
	ErrUnavailable = errors.New("catalog unavailable")
)
