// Package binder decodes HTTP request bodies into Go values.
//
// Only JSON is supported. The binder checks the Content-Type header, caps
// the body size, rejects unknown fields and rejects trailing data after the
// first JSON value:
//
//	var in CreateNoteInput
//	if err := binder.JSON()(r, &in); err != nil {
//		switch {
//		case errors.Is(err, binder.ErrUnsupportedMediaType):
//			// 415
//		case errors.Is(err, binder.ErrBodyTooLarge):
//			// 413
//		default:
//			// 400
//		}
//	}
//
// A body already wrapped by http.MaxBytesReader keeps its *http.MaxBytesError
// in the returned chain, so errors.As works alongside ErrBodyTooLarge.
package binder
