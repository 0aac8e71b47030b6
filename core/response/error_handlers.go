package response

import (
	"errors"
	"net/http"
)

// statusCode is an interface that errors can implement
// to provide a custom HTTP status code.
type statusCode interface {
	StatusCode() int
}

// ToHTTPError converts any error to an HTTPError.
func ToHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCode
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &sc):
		status = sc.StatusCode()
	case errors.As(err, &maxBytes):
		status = http.StatusRequestEntityTooLarge
	}

	base, ok := httpErrorsByStatus[status]
	if !ok {
		base = ErrInternalServerError
	}

	return base.WithError(err)
}

// ErrorHandler renders err as plain text.
func ErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	httpErr := ToHTTPError(err)
	render(w, r, StringWithStatus(httpErr.Error(), httpErr.Status))
}

// JSONErrorHandler renders err as a JSON HTTPError body.
func JSONErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	httpErr := ToHTTPError(err)
	render(w, r, JSONWithStatus(httpErr, httpErr.Status))
}

// render is the last resort path: a failing renderer degrades to http.Error.
func render(w http.ResponseWriter, r *http.Request, resp Renderer) {
	if err := resp(w, r); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
