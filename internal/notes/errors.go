package notes

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound  = notFoundError{}
	ErrInvalidID = errors.New("invalid note id")
	ErrNilStore  = errors.New("notes: nil store")
)

// notFoundError carries its HTTP status so the router's error handler
// renders a 404 without the store importing the response package.
type notFoundError struct{}

func (notFoundError) Error() string { return "note not found" }

func (notFoundError) StatusCode() int { return http.StatusNotFound }
