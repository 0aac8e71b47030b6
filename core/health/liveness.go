package health

import (
	"net/http"

	"github.com/dmitrymomot/promisemux"
	"github.com/dmitrymomot/promisemux/core/response"
	"github.com/dmitrymomot/promisemux/core/router"
)

// Liveness indicates if the service process is running.
// Always returns "ALIVE" with 200 OK. No dependency checks.
func Liveness(w http.ResponseWriter, r *http.Request, next router.Next) (any, error) {
	return promisemux.Resolve(response.String("ALIVE")), nil
}

// NoContent returns HTTP 204 without body. Ideal for high-frequency checks.
func NoContent(w http.ResponseWriter, r *http.Request, next router.Next) (any, error) {
	return promisemux.Resolve(response.NoContent()), nil
}
