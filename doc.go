// Package promisemux lets handlers that return deferred results be registered
// on a callback driven router without forwarding errors or completion by hand.
//
// A handler returns (value, error). The facade maps that onto the router's
// Next continuation:
//
//   - a returned error or a panic calls next(err)
//   - an immediate value calls next(nil), even from the last handler
//   - a Deferred value is observed once: failure calls next(err); success calls
//     next(nil), except for the last handler of a route registration whose
//     non-empty value finalizes the response
//
// Finalizing encodes the value as JSON with status 200. A value that is a
// response.Renderer is rendered as is, which lets a handler pick the status
// code or content type.
//
//	mux := promisemux.NewDefault()
//
//	mux.Param("id", func(w http.ResponseWriter, r *http.Request, next router.Next, id string) (any, error) {
//		if _, err := uuid.Parse(id); err != nil {
//			return nil, response.ErrBadRequest
//		}
//		return nil, nil
//	})
//
//	mux.Get("/users/{id}", auth, func(w http.ResponseWriter, r *http.Request, next router.Next) (any, error) {
//		return promisemux.Go(r.Context(), func(ctx context.Context) (any, error) {
//			return users.Get(ctx, router.URLParam(r, "id"))
//		}), nil
//	})
//
// # Empty values
//
// Only the last handler of a registration call finalizes, and only when the
// resolved value is non-empty. nil, typed nil pointers, maps and slices,
// false, numeric zero, NaN and "" are empty: such a terminal handler continues
// the chain instead, which usually ends in a 404. Return a non-nil empty slice
// or a response.Renderer when an empty result must still be sent.
//
// # Middleware and parameter handlers
//
// Handlers registered with Use never finalize. Parameter handlers registered
// with Param always continue once their deferred result resolves.
//
// # Cancellation
//
// There is none: a deferred result that never settles stalls the chain until
// the request context ends.
package promisemux
