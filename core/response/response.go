package response

import (
	"net/http"
)

// Renderer writes a complete response. Rendering errors are handled by the
// router's error handler unless the response was already written.
type Renderer func(w http.ResponseWriter, r *http.Request) error

// String creates a text/plain response with 200 OK status.
func String(content string) Renderer {
	return StringWithStatus(content, http.StatusOK)
}

// StringWithStatus creates a text/plain response with custom status code.
func StringWithStatus(content string, status int) Renderer {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		if content != "" {
			_, err := w.Write([]byte(content))
			return err
		}
		return nil
	}
}

// NoContent creates a 204 No Content response.
func NoContent() Renderer {
	return Status(http.StatusNoContent)
}

// Status creates an empty response with the specified status code.
func Status(code int) Renderer {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(code)
		return nil
	}
}
