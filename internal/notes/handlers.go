package notes

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/promisemux"
	"github.com/dmitrymomot/promisemux/core/binder"
	"github.com/dmitrymomot/promisemux/core/response"
	"github.com/dmitrymomot/promisemux/core/router"
)

// Register mounts the notes API under /notes.
//
//	GET    /notes       list notes
//	POST   /notes       create a note
//	GET    /notes/{id}  fetch a note
//	PUT    /notes/{id}  replace title and body
//	DELETE /notes/{id}  delete a note
//
// The {id} parameter handler rejects malformed IDs and unknown notes before
// any route handler runs.
func Register(mux *promisemux.Router, store Store) {
	if store == nil {
		panic(ErrNilStore)
	}
	h := &handlers{store: store}

	mux.Param("id", h.loadID)
	mux.Get("/notes", h.list)
	mux.Post("/notes", h.create)
	mux.Get("/notes/{id}", h.get)
	mux.Put("/notes/{id}", h.update)
	mux.Delete("/notes/{id}", h.delete)
}

type handlers struct {
	store Store
}

// loadID resolves with the stored note, which never finalizes a parameter
// handler; its failure short-circuits the route with 400 or 404.
func (h *handlers) loadID(w http.ResponseWriter, r *http.Request, next router.Next, value string) (any, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, response.ErrBadRequest.WithError(ErrInvalidID)
	}
	return promisemux.Go(r.Context(), func(ctx context.Context) (Note, error) {
		return h.store.Get(ctx, id)
	}), nil
}

func (h *handlers) list(w http.ResponseWriter, r *http.Request, next router.Next) (any, error) {
	return promisemux.Go(r.Context(), h.store.List), nil
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request, next router.Next) (any, error) {
	in, err := decodeInput(r)
	if err != nil {
		return nil, err
	}
	return promisemux.Go(r.Context(), func(ctx context.Context) (response.Renderer, error) {
		n, err := h.store.Create(ctx, in)
		if err != nil {
			return nil, err
		}
		return func(w http.ResponseWriter, r *http.Request) error {
			w.Header().Set("Location", "/notes/"+n.ID.String())
			return response.JSONWithStatus(n, http.StatusCreated)(w, r)
		}, nil
	}), nil
}

func (h *handlers) get(w http.ResponseWriter, r *http.Request, next router.Next) (any, error) {
	id := uuid.MustParse(router.URLParam(r, "id"))
	return promisemux.Go(r.Context(), func(ctx context.Context) (Note, error) {
		return h.store.Get(ctx, id)
	}), nil
}

func (h *handlers) update(w http.ResponseWriter, r *http.Request, next router.Next) (any, error) {
	id := uuid.MustParse(router.URLParam(r, "id"))
	in, err := decodeInput(r)
	if err != nil {
		return nil, err
	}
	return promisemux.Go(r.Context(), func(ctx context.Context) (Note, error) {
		return h.store.Update(ctx, id, in)
	}), nil
}

func (h *handlers) delete(w http.ResponseWriter, r *http.Request, next router.Next) (any, error) {
	id := uuid.MustParse(router.URLParam(r, "id"))
	return promisemux.Go(r.Context(), func(ctx context.Context) (response.Renderer, error) {
		if err := h.store.Delete(ctx, id); err != nil {
			return nil, err
		}
		return response.NoContent(), nil
	}), nil
}

func decodeInput(r *http.Request) (Input, error) {
	var in Input
	if err := binder.JSON()(r, &in); err != nil {
		switch {
		case errors.Is(err, binder.ErrUnsupportedMediaType):
			return Input{}, response.ErrUnsupportedMediaType.WithError(err)
		case errors.Is(err, binder.ErrBodyTooLarge):
			return Input{}, response.ErrRequestEntityTooLarge.WithError(err)
		case errors.Is(err, binder.ErrEmptyBody):
			return Input{}, response.ErrBadRequest.WithMessage("empty request body")
		default:
			return Input{}, response.ErrBadRequest.WithError(err)
		}
	}

	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return Input{}, err
	}
	return in, nil
}
