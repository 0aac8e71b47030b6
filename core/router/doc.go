// Package router implements a callback driven HTTP router: handlers receive
// the response writer, the request and a Next continuation, and decide
// themselves whether the chain advances.
//
//	r := router.New()
//
//	r.Use("", func(w http.ResponseWriter, r *http.Request, next router.Next) {
//		w.Header().Set("X-Powered-By", "promisemux")
//		next(nil)
//	})
//
//	r.Param("id", func(w http.ResponseWriter, r *http.Request, next router.Next, id string) {
//		if _, err := uuid.Parse(id); err != nil {
//			next(response.ErrBadRequest)
//			return
//		}
//		next(nil)
//	})
//
//	r.Handle(http.MethodGet, "/users/{id}", func(w http.ResponseWriter, r *http.Request, next router.Next) {
//		_ = router.Finish(w, r, response.JSON(map[string]string{"id": router.URLParam(r, "id")}))
//	})
//
// # Dispatch
//
// For a matched route the chain is: middleware registered with Use whose
// pattern prefixes the request path (registration order), then parameter
// handlers for every URL parameter of the matched route, then the route
// handlers. Path matching is done by chi, so patterns use chi syntax
// ({id}, {id:[0-9]+}, /*).
//
// Handlers run one at a time on the goroutine serving the request. After each
// handler the dispatcher waits for the first of:
//
//   - next(nil): advance to the following handler
//   - next(err): stop and pass err to the error handler
//   - Finish(w, r, render): run render on the serving goroutine and stop
//   - the request context being done: stop without writing
//
// A handler that writes the response itself and returns without calling next
// also ends the chain.
//
// Next may be called from any goroutine and only its first call counts.
// A chain that never continues or finishes stalls until the request context
// ends; the router has no timeout of its own.
//
// Falling off the end of a chain without a written response is reported to
// the error handler as ErrNotFound (or ErrMethodNotAllowed, with an Allow
// header, when the path exists for other methods).
//
// # Lifecycle
//
// Registration is not synchronized with dispatch: register everything before
// serving requests.
package router
