package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// DefaultMaxJSONSize is the default maximum size for JSON request bodies (1MB).
const DefaultMaxJSONSize = 1 << 20

// Func decodes the request into v.
type Func func(r *http.Request, v any) error

// JSON returns a binder limited to DefaultMaxJSONSize.
func JSON() Func {
	return JSONWithLimit(DefaultMaxJSONSize)
}

// JSONWithLimit returns a binder that reads at most limit bytes.
// A non-positive limit falls back to DefaultMaxJSONSize.
func JSONWithLimit(limit int64) Func {
	if limit <= 0 {
		limit = DefaultMaxJSONSize
	}
	return func(r *http.Request, v any) error {
		// Fail fast on cancelled requests.
		if err := r.Context().Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrFailedToParseJSON, err)
		}

		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return fmt.Errorf("%w, expected application/json", ErrMissingContentType)
		}
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUnsupportedMediaType, err)
		}
		if mediaType != "application/json" {
			return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, mediaType)
		}

		if r.Body == nil {
			return ErrEmptyBody
		}

		// One extra byte tells an exact fit from an oversized body.
		body, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
		if err != nil {
			var maxBytes *http.MaxBytesError
			if errors.As(err, &maxBytes) {
				return fmt.Errorf("%w: %w", ErrBodyTooLarge, err)
			}
			return fmt.Errorf("%w: read body: %w", ErrFailedToParseJSON, err)
		}
		if int64(len(body)) > limit {
			return fmt.Errorf("%w (max %d bytes)", ErrBodyTooLarge, limit)
		}
		if len(bytes.TrimSpace(body)) == 0 {
			return ErrEmptyBody
		}

		dec := json.NewDecoder(bytes.NewReader(body))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("%w: %w", ErrFailedToParseJSON, err)
		}

		var extra json.RawMessage
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: unexpected data after JSON value", ErrFailedToParseJSON)
		}
		return nil
	}
}
