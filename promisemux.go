package promisemux

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/promisemux/core/router"
)

// HandlerFunc is a route or middleware handler in "return a value" style.
// The returned value may be a Deferred.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, next router.Next) (any, error)

// ParamHandlerFunc handles a named URL parameter. It never finalizes a response.
type ParamHandlerFunc func(w http.ResponseWriter, r *http.Request, next router.Next, value string) (any, error)

// Deferred is a result that settles later. Implementations must call exactly
// one of the continuations, at most once; extra calls are ignored.
type Deferred interface {
	OnSettle(onSuccess func(any), onFailure func(error))
}

// Outcome is how one handler invocation ended.
type Outcome uint8

const (
	// OutcomeContinued means next(nil) was called.
	OutcomeContinued Outcome = iota + 1
	// OutcomeFinalized means the resolved value was written as the response.
	OutcomeFinalized
	// OutcomePropagated means next(err) was called.
	OutcomePropagated
)

// String returns the lowercase outcome name used in logs and metric labels.
func (o Outcome) String() string {
	switch o {
	case OutcomeContinued:
		return "continued"
	case OutcomeFinalized:
		return "finalized"
	case OutcomePropagated:
		return "propagated"
	default:
		return "unknown"
	}
}

// Kind is the registration a handler came from.
type Kind uint8

const (
	// KindRoute is a handler registered with Handle or a method helper.
	KindRoute Kind = iota + 1
	// KindMiddleware is a handler registered with Use.
	KindMiddleware
	// KindParam is a handler registered with Param.
	KindParam
)

// String returns the lowercase kind name used in logs and metric labels.
func (k Kind) String() string {
	switch k {
	case KindRoute:
		return "route"
	case KindMiddleware:
		return "middleware"
	case KindParam:
		return "param"
	default:
		return "unknown"
	}
}

// Invocation describes one completed handler invocation.
type Invocation struct {
	Kind     Kind
	Index    int  // position within its registration call
	Terminal bool // last handler of a route registration
	Deferred bool // the handler returned a Deferred
	Outcome  Outcome
	Err      error // set when Outcome is OutcomePropagated
	Duration time.Duration
}

// Observer is notified after every handler invocation settles. It may be
// called from the goroutine that settled a Deferred.
type Observer func(r *http.Request, inv Invocation)
