// Package response renders HTTP responses for promisemux handlers.
//
// A Renderer writes headers, status and body to an http.ResponseWriter.
// Terminal handlers can resolve to a Renderer to control the status code or
// content type of a finalized response; any other resolved value is encoded
// with JSON.
//
//	func createUser(w http.ResponseWriter, r *http.Request, next router.Next) (any, error) {
//		return async.Async(r.Context(), r, func(ctx context.Context, r *http.Request) (response.Renderer, error) {
//			user, err := users.Create(ctx, r)
//			if err != nil {
//				return nil, err
//			}
//			return response.JSONWithStatus(user, http.StatusCreated), nil
//		}), nil
//	}
//
// # Errors
//
// HTTPError carries a status code, a machine readable code and a message.
// The error handlers (ErrorHandler, JSONErrorHandler) convert any error to an
// HTTPError: HTTPError values are used as is, errors implementing
// StatusCode() int are mapped by status, everything else becomes 500.
//
//	return nil, response.ErrNotFound.WithMessage("note not found")
package response
