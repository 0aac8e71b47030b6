package response

import (
	"encoding/json"
	"net/http"
)

// JSON creates an application/json response with 200 OK status.
func JSON(v any) Renderer {
	return JSONWithStatus(v, http.StatusOK)
}

// JSONWithStatus creates an application/json response with custom status code.
// A zero status means 200, or 204 when v is nil. v is encoded before anything
// is written, so an encoding error leaves the response untouched.
func JSONWithStatus(v any, status int) Renderer {
	return func(w http.ResponseWriter, r *http.Request) error {
		if status == 0 {
			if v == nil {
				status = http.StatusNoContent
			} else {
				status = http.StatusOK
			}
		}

		switch status {
		case http.StatusNoContent, http.StatusNotModified:
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(status)
			return nil
		}

		body, err := EncodeJSON(v)
		if err != nil {
			return err
		}
		return JSONBytes(body, status)(w, r)
	}
}

// EncodeJSON encodes v the way JSON renders it, newline terminated.
func EncodeJSON(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// JSONBytes writes an already encoded JSON body.
func JSONBytes(body []byte, status int) Renderer {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_, err := w.Write(body)
		return err
	}
}
