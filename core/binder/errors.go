package binder

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedMediaType indicates a Content-Type other than application/json.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrMissingContentType indicates the request has no Content-Type header.
	// It wraps ErrUnsupportedMediaType so both map to the same status.
	ErrMissingContentType = fmt.Errorf("%w: missing content type", ErrUnsupportedMediaType)

	// ErrFailedToParseJSON indicates a malformed body or one that doesn't
	// match the target type.
	ErrFailedToParseJSON = errors.New("failed to parse JSON request body")

	// ErrEmptyBody indicates the request carried no JSON value.
	ErrEmptyBody = errors.New("empty request body")

	// ErrBodyTooLarge indicates the body exceeds the binder limit.
	ErrBodyTooLarge = errors.New("request body too large")
)
