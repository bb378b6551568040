package routespec

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/bjaus/routespec/apispec"
	"github.com/bjaus/routespec/web"
)

// Plugin resolves paths and operations for resources registered on a
// router. It implements apispec.Plugin.
type Plugin struct {
	index  map[web.HandlerID]IndexEntry
	logger *slog.Logger
}

var (
	_ apispec.Plugin      = (*Plugin)(nil)
	_ apispec.Initializer = (*Plugin)(nil)
)

// Option configures a Plugin.
type Option func(*Plugin)

// WithLogger sets the logger for index and docstring records.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Plugin) {
		p.logger = logger
	}
}

// New indexes the routes of app. The index is not updated afterwards.
func New(app RouteTable, opts ...Option) *Plugin {
	p := &Plugin{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.index = p.buildIndex(app.Routes())
	return p
}

// InitSpec implements apispec.Initializer.
func (p *Plugin) InitSpec(s *apispec.Spec) {
	p.logger.Debug("plugin attached",
		slog.String("title", s.Info().Title),
		slog.Int("resources", len(p.index)),
	)
}

// Index returns a copy of the index.
func (p *Plugin) Index() map[web.HandlerID]IndexEntry {
	out := make(map[web.HandlerID]IndexEntry, len(p.index))
	for id, e := range p.index {
		out[id] = e.clone()
	}
	return out
}

// Lookup returns the index entry of resource, or an error wrapping
// ErrNotIndexed.
func (p *Plugin) Lookup(resource any) (IndexEntry, error) {
	e, ok := endpointOf(resource)
	if !ok {
		return IndexEntry{}, fmt.Errorf("%w: %T", ErrNotIndexed, resource)
	}
	entry, ok := p.index[e.ID()]
	if !ok || e.ID() == "" {
		return IndexEntry{}, fmt.Errorf("%w: %s", ErrNotIndexed, e.Name())
	}
	return entry.clone(), nil
}

// PathHelper implements apispec.Plugin.
//
// The resource's own operations are merged into ops first, replacing the
// verbs they define. Each verb indexed for the resource then has its
// operation overwritten with that handler's documentation, or an empty
// operation when it has none. The returned path is path when non-empty,
// else the indexed URI.
func (p *Plugin) PathHelper(resource any, ops apispec.Operations, path string) (string, error) {
	if e, ok := endpointOf(resource); ok {
		for verb, op := range p.resourceOperations(e) {
			ops[verb] = op
		}
	}

	entry, err := p.Lookup(resource)
	if err != nil {
		return "", err
	}

	if path == "" {
		path = entry.URI
	}

	for verb, h := range entry.Methods {
		ops[verb] = p.operation(h)
	}
	return path, nil
}

func (p *Plugin) resourceOperations(e web.Endpoint) apispec.Operations {
	if structured := e.Operations(); structured != nil {
		ops := make(apispec.Operations, len(structured))
		for verb, op := range structured {
			ops[verb] = apispec.OperationFrom(op)
		}
		return ops
	}

	ops, err := apispec.ParseOperationsFromDocstring(e.Doc())
	if err != nil {
		p.logger.Debug("resource docstring ignored",
			slog.String("handler", e.Name()),
			slog.Any("error", err),
		)
		return apispec.Operations{}
	}
	return ops
}

func (p *Plugin) operation(h web.Documented) apispec.Operation {
	if op := h.Operation(); op != nil {
		return apispec.OperationFrom(op)
	}

	op, err := apispec.ParseYAMLFromDocstring(h.Doc())
	if err != nil {
		p.logger.Debug("handler docstring ignored",
			slog.String("handler", h.Name()),
			slog.Any("error", err),
		)
		return apispec.Operation{}
	}
	return op
}

// endpointOf returns resource as a web.Endpoint, rejecting nil and typed-nil
// values.
func endpointOf(resource any) (web.Endpoint, bool) {
	e, ok := resource.(web.Endpoint)
	if !ok || e == nil {
		return nil, false
	}
	if rv := reflect.ValueOf(e); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, false
	}
	return e, true
}
