package promisemux

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/promisemux/core/logger"
	"github.com/dmitrymomot/promisemux/core/response"
	"github.com/dmitrymomot/promisemux/core/router"
)

// MaxDeferredDepth bounds how many Deferreds resolving to further Deferreds
// are followed for one invocation.
const MaxDeferredDepth = 32

// invocationSite is fixed at registration time.
type invocationSite struct {
	kind     Kind
	index    int
	terminal bool
}

func (m *Router) wrap(h HandlerFunc, site invocationSite) router.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, next router.Next) {
		m.complete(w, r, next, site, func() (any, error) {
			return h(w, r, next)
		})
	}
}

func (m *Router) wrapParam(h ParamHandlerFunc) router.ParamFunc {
	site := invocationSite{kind: KindParam}
	return func(w http.ResponseWriter, r *http.Request, next router.Next, value string) {
		m.complete(w, r, next, site, func() (any, error) {
			return h(w, r, next, value)
		})
	}
}

// complete runs one handler and maps its result onto next or a finalized
// response. Exactly one outcome is reported per invocation.
func (m *Router) complete(w http.ResponseWriter, r *http.Request, next router.Next, site invocationSite, call func() (any, error)) {
	inv := Invocation{Kind: site.kind, Index: site.index, Terminal: site.terminal}
	start := time.Now()

	var once sync.Once
	settle := func(outcome Outcome, err error) bool {
		settled := false
		once.Do(func() {
			settled = true
			inv.Outcome, inv.Err, inv.Duration = outcome, err, time.Since(start)
			m.report(r, inv)
		})
		return settled
	}
	propagate := func(err error) {
		if err == nil {
			err = ErrRejected
		}
		if settle(OutcomePropagated, err) {
			next(err)
		}
	}

	v, err := invoke(call)
	if err != nil {
		propagate(err)
		return
	}

	d, ok := AsDeferred(v)
	if !ok {
		if settle(OutcomeContinued, nil) {
			next(nil)
		}
		return
	}
	inv.Deferred = true

	var (
		depth     atomic.Int32
		onSuccess func(any)
	)
	onSuccess = func(v any) {
		// A deferred value that resolves to another deferred is followed.
		if inner, ok := AsDeferred(v); ok {
			if depth.Add(1) > MaxDeferredDepth {
				propagate(fmt.Errorf("%w: more than %d levels", ErrDeferredTooDeep, MaxDeferredDepth))
				return
			}
			if _, err := invoke(func() (any, error) {
				inner.OnSettle(onSuccess, propagate)
				return nil, nil
			}); err != nil {
				propagate(err)
			}
			return
		}

		if site.kind == KindParam || !site.terminal || IsEmpty(v) {
			if settle(OutcomeContinued, nil) {
				next(nil)
			}
			return
		}
		// Encoding happens before settling so an unencodable value takes the
		// error path instead of a half-written response.
		render, err := renderer(v)
		if err != nil {
			propagate(err)
			return
		}
		if settle(OutcomeFinalized, nil) {
			if err := router.Finish(w, r, render); err != nil {
				next(err)
			}
		}
	}

	if _, err := invoke(func() (any, error) {
		d.OnSettle(onSuccess, propagate)
		return nil, nil
	}); err != nil {
		propagate(err)
	}
}

func (m *Router) report(r *http.Request, inv Invocation) {
	if inv.Outcome == OutcomePropagated {
		m.logger.DebugContext(r.Context(), "handler error propagated",
			logger.Component("promisemux"),
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.Key("kind", inv.Kind.String()),
			logger.Count("index", inv.Index),
			logger.Error(inv.Err),
		)
	}
	if m.observer != nil {
		m.observer(r, inv)
	}
}

// renderer finalizes with v itself when it knows how to render, otherwise
// with v encoded as JSON.
func renderer(v any) (response.Renderer, error) {
	switch rv := v.(type) {
	case response.Renderer:
		return rv, nil
	case func(http.ResponseWriter, *http.Request) error:
		return rv, nil
	}

	body, err := response.EncodeJSON(v)
	if err != nil {
		return nil, err
	}
	return response.JSONBytes(body, http.StatusOK), nil
}

// invoke runs call and converts a panic into a router.PanicError.
func invoke(call func() (any, error)) (v any, err error) {
	defer func() {
		if p := recover(); p != nil {
			v, err = nil, router.NewPanicError(p, debug.Stack())
		}
	}()
	return call()
}
