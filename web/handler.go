package web

import (
	"net/http"
	"reflect"
	"runtime"
	"sync"

	"github.com/google/uuid"
)

// HandlerID identifies a handler across every route it is registered under.
// It is assigned on first registration.
type HandlerID string

// HandlerFunc is the function signature of a function route.
type HandlerFunc func(w http.ResponseWriter, r *http.Request)

// Documented is implemented by anything that carries handler documentation.
//
// Doc is a free-form docstring. Operation and Operations are structured
// documentation attached at registration; they are nil when unset.
type Documented interface {
	Name() string
	Doc() string
	Operation() map[string]any
	Operations() map[string]map[string]any
}

// Endpoint is a route target: a *Handler for function routes or a
// *ViewHandler for class-based views.
type Endpoint interface {
	http.Handler
	Documented
	ID() HandlerID

	bind()
}

// HandlerOption configures the documentation of a handler or view.
type HandlerOption func(*docInfo)

type docInfo struct {
	name       string
	doc        string
	operation  map[string]any
	operations map[string]map[string]any
}

func (d *docInfo) Name() string                          { return d.name }
func (d *docInfo) Doc() string                           { return d.doc }
func (d *docInfo) Operation() map[string]any             { return d.operation }
func (d *docInfo) Operations() map[string]map[string]any { return d.operations }

// WithName overrides the handler name used in logs and errors.
func WithName(name string) HandlerOption {
	return func(d *docInfo) {
		d.name = name
	}
}

// WithDoc sets the handler docstring. A YAML block may follow a line
// starting with "---".
func WithDoc(doc string) HandlerOption {
	return func(d *docInfo) {
		d.doc = doc
	}
}

// WithOperation attaches structured operation documentation. It takes
// precedence over a YAML block in the docstring.
func WithOperation(op map[string]any) HandlerOption {
	return func(d *docInfo) {
		d.operation = op
	}
}

// WithOperations attaches per-verb operation documentation for the resource
// as a whole, keyed by lowercase verb.
func WithOperations(ops map[string]map[string]any) HandlerOption {
	return func(d *docInfo) {
		d.operations = ops
	}
}

// Handler is a documented function handler.
type Handler struct {
	docInfo

	fn   HandlerFunc
	id   HandlerID
	once sync.Once
}

// Func wraps fn as a documented handler.
func Func(fn HandlerFunc, opts ...HandlerOption) *Handler {
	h := &Handler{fn: fn}
	h.name = funcName(fn)
	for _, opt := range opts {
		opt(&h.docInfo)
	}
	return h
}

// ID returns the handler's identifier, or "" if it was never registered.
func (h *Handler) ID() HandlerID {
	if h == nil {
		return ""
	}
	return h.id
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.fn(w, r)
}

func (h *Handler) bind() {
	h.once.Do(func() {
		h.id = HandlerID(uuid.NewString())
	})
}

func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	if f := runtime.FuncForPC(v.Pointer()); f != nil {
		return f.Name()
	}
	return ""
}

// isNil reports whether e is nil, wraps a nil pointer, or is a Handler
// without a function.
func isNil(e Endpoint) bool {
	if e == nil {
		return true
	}
	if rv := reflect.ValueOf(e); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return true
	}
	if h, ok := e.(*Handler); ok && h.fn == nil {
		return true
	}
	return false
}
