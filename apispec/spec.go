package apispec

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// DefaultOpenAPIVersion is the document version used unless overridden.
const DefaultOpenAPIVersion = "3.1.0"

// Sentinel errors for document assembly.
var (
	ErrInvalidInfo        = errors.New("invalid info")
	ErrUnsupportedVersion = errors.New("unsupported openapi version")
	ErrPathNotSpecified   = errors.New("path template is not specified")
	ErrInvalidMethod      = errors.New("invalid http method")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Info holds API metadata.
type Info struct {
	Title       string `json:"title" yaml:"title" validate:"required"`
	Version     string `json:"version" yaml:"version" validate:"required"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Document is the assembled OpenAPI (or Swagger 2) document.
type Document struct {
	Swagger string              `json:"swagger,omitempty" yaml:"swagger,omitempty"`
	OpenAPI string              `json:"openapi,omitempty" yaml:"openapi,omitempty"`
	Info    Info                `json:"info" yaml:"info"`
	Paths   map[string]PathItem `json:"paths" yaml:"paths"`
}

// Spec collects path items from plugins into a Document. It is safe for
// concurrent use.
type Spec struct {
	info    Info
	openAPI string
	plugins []Plugin
	logger  *slog.Logger

	mu    sync.Mutex
	paths map[string]PathItem
}

// Option configures a Spec.
type Option func(*Spec)

// WithOpenAPIVersion sets the document version. Major versions 2 and 3 are
// supported.
func WithOpenAPIVersion(version string) Option {
	return func(s *Spec) {
		s.openAPI = version
	}
}

// WithInfoDescription sets the API description.
func WithInfoDescription(desc string) Option {
	return func(s *Spec) {
		s.info.Description = desc
	}
}

// WithPlugins appends plugins. They run in the order given.
func WithPlugins(plugins ...Plugin) Option {
	return func(s *Spec) {
		s.plugins = append(s.plugins, plugins...)
	}
}

// WithLogger sets the logger for path records.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Spec) {
		s.logger = logger
	}
}

// New creates a Spec and runs the InitSpec hook of every plugin that has one.
func New(title, version string, opts ...Option) (*Spec, error) {
	s := &Spec{
		info:    Info{Title: title, Version: version},
		openAPI: DefaultOpenAPIVersion,
		logger:  slog.New(slog.DiscardHandler),
		paths:   make(map[string]PathItem),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := validate.Struct(s.info); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInfo, err)
	}
	if m := s.major(); m != "2" && m != "3" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, s.openAPI)
	}

	for _, p := range s.plugins {
		if in, ok := p.(Initializer); ok {
			in.InitSpec(s)
		}
	}
	return s, nil
}

// Info returns the API metadata.
func (s *Spec) Info() Info { return s.info }

// OpenAPIVersion returns the document version.
func (s *Spec) OpenAPIVersion() string { return s.openAPI }

func (s *Spec) major() string {
	major, _, _ := strings.Cut(s.openAPI, ".")
	return major
}

// PathOption configures a single Path call.
type PathOption func(*pathConfig)

type pathConfig struct {
	path        string
	resource    any
	operations  Operations
	summary     string
	description string
	parameters  []map[string]any
}

// WithPath sets the path explicitly. Plugins may still rewrite it.
func WithPath(path string) PathOption {
	return func(c *pathConfig) {
		c.path = path
	}
}

// WithResource names the resource the plugins should document.
func WithResource(resource any) PathOption {
	return func(c *pathConfig) {
		c.resource = resource
	}
}

// WithOperations seeds the operations record. It is copied, never mutated.
func WithOperations(ops Operations) PathOption {
	return func(c *pathConfig) {
		c.operations = ops
	}
}

// WithSummary sets the path item summary.
func WithSummary(summary string) PathOption {
	return func(c *pathConfig) {
		c.summary = summary
	}
}

// WithDescription sets the path item description.
func WithDescription(desc string) PathOption {
	return func(c *pathConfig) {
		c.description = desc
	}
}

// WithParameters sets the parameters shared by every operation of the path.
func WithParameters(params ...map[string]any) PathOption {
	return func(c *pathConfig) {
		c.parameters = append(c.parameters, params...)
	}
}

// Path runs the plugins for one resource and stores the resulting path
// item. Operations for a path already present are merged into it, later
// calls winning per verb.
func (s *Spec) Path(opts ...PathOption) error {
	var cfg pathConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	ops := cfg.operations.Clone()
	if ops == nil {
		ops = make(Operations)
	}

	path := cfg.path
	for _, p := range s.plugins {
		ret, err := p.PathHelper(cfg.resource, ops, path)
		if err != nil {
			return fmt.Errorf("path helper %T: %w", p, err)
		}
		if ret != "" {
			path = ret
		}
	}
	if path == "" {
		return ErrPathNotSpecified
	}

	for _, p := range s.plugins {
		oh, ok := p.(OperationHelper)
		if !ok {
			continue
		}
		if err := oh.OperationHelper(path, ops, cfg.resource); err != nil {
			return fmt.Errorf("operation helper %T: %w", p, err)
		}
	}

	if err := s.cleanOperations(ops); err != nil {
		return fmt.Errorf("path %s: %w", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.paths[path]
	if !ok {
		item = make(PathItem)
		s.paths[path] = item
	}
	for verb, op := range ops {
		item[verb] = op
	}
	if cfg.summary != "" {
		item["summary"] = cfg.summary
	}
	if cfg.description != "" {
		item["description"] = cfg.description
	}
	if len(cfg.parameters) > 0 {
		item["parameters"] = normalize(cfg.parameters)
	}

	s.logger.Debug("path added", slog.String("path", path), slog.Int("operations", len(ops)))
	return nil
}

// cleanOperations rejects keys that are neither a verb valid for the
// document version nor an "x-" extension, and normalizes every operation
// so response codes are string keys.
func (s *Spec) cleanOperations(ops Operations) error {
	for key, op := range ops {
		if !strings.HasPrefix(key, "x-") && !s.validMethod(key) {
			return fmt.Errorf("%w: %q", ErrInvalidMethod, key)
		}
		ops[key] = op.Clone()
	}
	return nil
}

func (s *Spec) validMethod(verb string) bool {
	if verb == "trace" {
		return s.major() == "3"
	}
	return pathKeys[verb]
}

// Paths returns a deep copy of the stored path items.
func (s *Spec) Paths() map[string]PathItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	paths := make(map[string]PathItem, len(s.paths))
	for path, item := range s.paths {
		paths[path] = PathItem(normalize(item).(map[string]any))
	}
	return paths
}

// Document returns the assembled document.
func (s *Spec) Document() Document {
	doc := Document{
		Info:  s.info,
		Paths: s.Paths(),
	}
	if s.major() == "2" {
		doc.Swagger = s.openAPI
	} else {
		doc.OpenAPI = s.openAPI
	}
	return doc
}
