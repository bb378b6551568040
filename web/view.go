package web

import (
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// View is a class-based handler that serves one method per HTTP verb.
// Methods declares which verbs the view supports; unset slots are verbs it
// does not serve.
type View interface {
	Methods() MethodSet
}

// MethodSet holds one handler slot per recognized HTTP method.
type MethodSet struct {
	Connect *Handler
	Delete  *Handler
	Get     *Handler
	Head    *Handler
	Options *Handler
	Patch   *Handler
	Post    *Handler
	Put     *Handler
	Trace   *Handler
}

// Lookup returns the handler for method (case-insensitive), or nil.
func (m MethodSet) Lookup(method string) *Handler {
	switch strings.ToUpper(method) {
	case http.MethodConnect:
		return m.Connect
	case http.MethodDelete:
		return m.Delete
	case http.MethodGet:
		return m.Get
	case http.MethodHead:
		return m.Head
	case http.MethodOptions:
		return m.Options
	case http.MethodPatch:
		return m.Patch
	case http.MethodPost:
		return m.Post
	case http.MethodPut:
		return m.Put
	case http.MethodTrace:
		return m.Trace
	default:
		return nil
	}
}

// Allowed returns the methods with a handler, in AllMethods order.
func (m MethodSet) Allowed() []string {
	var allowed []string
	for _, method := range AllMethods {
		if m.Lookup(method) != nil {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

// ViewHandler registers a View with the router.
type ViewHandler struct {
	docInfo

	view View
	id   HandlerID
	once sync.Once
}

// NewView wraps v so it can be registered with RegisterView.
func NewView(v View, opts ...HandlerOption) *ViewHandler {
	vh := &ViewHandler{view: v}
	if v != nil {
		vh.name = reflect.TypeOf(v).String()
	}
	for _, opt := range opts {
		opt(&vh.docInfo)
	}
	return vh
}

// View returns the wrapped view.
func (v *ViewHandler) View() View { return v.view }

// ID returns the view's identifier, or "" if it was never registered.
func (v *ViewHandler) ID() HandlerID {
	if v == nil {
		return ""
	}
	return v.id
}

// ServeHTTP dispatches to the view's handler for r.Method. Unsupported
// methods get 405 with an Allow header.
func (v *ViewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	methods, ok := AsView(v)
	if !ok {
		WriteError(w, Error(http.StatusNotFound, http.StatusText(http.StatusNotFound)))
		return
	}

	h := methods.Lookup(r.Method)
	if h == nil {
		w.Header().Set("Allow", strings.Join(methods.Allowed(), ", "))
		WriteError(w, Errorf(http.StatusMethodNotAllowed, "method %s not allowed", r.Method))
		return
	}
	h.ServeHTTP(w, r)
}

func (v *ViewHandler) bind() {
	v.once.Do(func() {
		v.id = HandlerID(uuid.NewString())
	})
}

// AsView reports whether e is a class-based view and returns its method
// slots. It never panics: nil endpoints, typed-nil views and function
// handlers all report false.
func AsView(e Endpoint) (MethodSet, bool) {
	vh, ok := e.(*ViewHandler)
	if !ok || vh == nil || vh.view == nil {
		return MethodSet{}, false
	}
	if rv := reflect.ValueOf(vh.view); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return MethodSet{}, false
	}
	return vh.view.Methods(), true
}
