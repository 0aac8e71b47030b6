package notes_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/promisemux"
	"github.com/dmitrymomot/promisemux/internal/notes"
)

func newAPI(t *testing.T, store notes.Store) http.Handler {
	t.Helper()

	mux := promisemux.NewDefault()
	notes.Register(mux, store)
	return mux
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeNote(t *testing.T, w *httptest.ResponseRecorder) notes.Note {
	t.Helper()

	var n notes.Note
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &n))
	return n
}

func TestNotesCRUD(t *testing.T) {
	t.Parallel()

	api := newAPI(t, notes.NewMemoryStore())

	w := do(api, http.MethodGet, "/notes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(api, http.MethodPost, "/notes", `{"title":"  groceries ","body":"milk"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeNote(t, w)
	assert.Equal(t, "groceries", created.Title)
	assert.Equal(t, "/notes/"+created.ID.String(), w.Header().Get("Location"))

	w = do(api, http.MethodGet, "/notes/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.ID, decodeNote(t, w).ID)

	w = do(api, http.MethodPut, "/notes/"+created.ID.String(), `{"title":"chores","body":"laundry"}`)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeNote(t, w)
	assert.Equal(t, "chores", updated.Title)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	w = do(api, http.MethodGet, "/notes", "")
	var list []notes.Note
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "chores", list[0].Title)

	w = do(api, http.MethodDelete, "/notes/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(api, http.MethodGet, "/notes/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotesErrors(t *testing.T) {
	t.Parallel()

	api := newAPI(t, notes.NewMemoryStore())
	missing := uuid.NewString()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"malformed id", http.MethodGet, "/notes/not-a-uuid", "", http.StatusBadRequest},
		{"unknown id", http.MethodGet, "/notes/" + missing, "", http.StatusNotFound},
		{"delete unknown", http.MethodDelete, "/notes/" + missing, "", http.StatusNotFound},
		{"update unknown", http.MethodPut, "/notes/" + missing, `{"title":"x"}`, http.StatusNotFound},
		{"no content type", http.MethodPost, "/notes", "", http.StatusUnsupportedMediaType},
		{"blank json body", http.MethodPost, "/notes", " ", http.StatusBadRequest},
		{"bad json", http.MethodPost, "/notes", `{"title":`, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/notes", `{"title":"x","color":"red"}`, http.StatusBadRequest},
		{"missing title", http.MethodPost, "/notes", `{"title":"   "}`, http.StatusUnprocessableEntity},
		{"wrong method", http.MethodPatch, "/notes", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := do(api, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		})
	}
}

func TestValidationDetails(t *testing.T) {
	t.Parallel()

	api := newAPI(t, notes.NewMemoryStore())
	w := do(api, http.MethodPost, "/notes", `{"title":"`+strings.Repeat("a", 201)+`"}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body struct {
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "unprocessable_entity", body.Code)
	assert.Equal(t, "too long", body.Details["title"])
}

func TestCreateRejectsNonJSONContentType(t *testing.T) {
	t.Parallel()

	api := newAPI(t, notes.NewMemoryStore())
	req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(`{"title":"x"}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	api.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	assert.Contains(t, w.Body.String(), "unsupported_media_type")

	w = do(api, http.MethodGet, "/notes", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

// failingStore fails every call.
type failingStore struct{ notes.Store }

func (failingStore) List(context.Context) ([]notes.Note, error) {
	return nil, errors.New("store down")
}

func TestStoreFailureReachesErrorHandler(t *testing.T) {
	t.Parallel()

	api := newAPI(t, failingStore{Store: notes.NewMemoryStore()})

	w := do(api, http.MethodGet, "/notes", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRegisterNilStore(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, notes.ErrNilStore, func() {
		notes.Register(promisemux.NewDefault(), nil)
	})
}
