package promisemux_test

import (
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/dmitrymomot/promisemux"
	"github.com/dmitrymomot/promisemux/core/router"
)

// captureRouter records wrapped handlers so tests can invoke them directly.
type captureRouter struct {
	http.Handler
	routes      map[string][]router.HandlerFunc
	middlewares map[string][]router.HandlerFunc
	params      map[string][]router.ParamFunc
}

func newCaptureRouter() *captureRouter {
	return &captureRouter{
		routes:      make(map[string][]router.HandlerFunc),
		middlewares: make(map[string][]router.HandlerFunc),
		params:      make(map[string][]router.ParamFunc),
	}
}

func (c *captureRouter) Handle(method, pattern string, handlers ...router.HandlerFunc) {
	c.routes[method+" "+pattern] = append(c.routes[method+" "+pattern], handlers...)
}

func (c *captureRouter) Use(pattern string, handlers ...router.HandlerFunc) {
	c.middlewares[pattern] = append(c.middlewares[pattern], handlers...)
}

func (c *captureRouter) Param(name string, handler router.ParamFunc) {
	c.params[name] = append(c.params[name], handler)
}

func (c *captureRouter) Routes() []router.Route {
	return nil
}

// nextRecorder counts continuation calls.
type nextRecorder struct {
	mu    sync.Mutex
	calls []error
}

func (n *nextRecorder) next(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, err)
}

func (n *nextRecorder) Calls() []error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]error(nil), n.calls...)
}

// settled is a Deferred that settles synchronously inside OnSettle.
type settled struct {
	value any
	err   error
}

func (s settled) OnSettle(onSuccess func(any), onFailure func(error)) {
	if s.err != nil {
		onFailure(s.err)
		return
	}
	onSuccess(s.value)
}

func resolved(v any) promisemux.Deferred { return settled{value: v} }

func failed(err error) promisemux.Deferred { return settled{err: err} }

func returning(v any) promisemux.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, next router.Next) (any, error) {
		return v, nil
	}
}

// run invokes a captured handler against a recorder outside of any router,
// so finalization writes to the recorder immediately.
func run(h router.HandlerFunc) (*httptest.ResponseRecorder, []error) {
	w := httptest.NewRecorder()
	rec := &nextRecorder{}
	h(w, httptest.NewRequest(http.MethodGet, "/x", nil), rec.next)
	return w, rec.Calls()
}

func runParam(h router.ParamFunc, value string) (*httptest.ResponseRecorder, []error) {
	w := httptest.NewRecorder()
	rec := &nextRecorder{}
	h(w, httptest.NewRequest(http.MethodGet, "/x/"+value, nil), rec.next, value)
	return w, rec.Calls()
}
