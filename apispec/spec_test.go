package apispec_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/routespec/apispec"
)

// pluginFunc adapts a function to apispec.Plugin.
type pluginFunc func(resource any, ops apispec.Operations, path string) (string, error)

func (f pluginFunc) PathHelper(resource any, ops apispec.Operations, path string) (string, error) {
	return f(resource, ops, path)
}

type recordingPlugin struct {
	initialized *apispec.Spec
	helperPath  string
	helperErr   error
}

func (p *recordingPlugin) PathHelper(_ any, _ apispec.Operations, _ string) (string, error) {
	return "", nil
}

func (p *recordingPlugin) InitSpec(s *apispec.Spec) { p.initialized = s }

func (p *recordingPlugin) OperationHelper(path string, ops apispec.Operations, _ any) error {
	p.helperPath = path
	if p.helperErr != nil {
		return p.helperErr
	}
	ops["x-helper"] = apispec.Operation{"seen": true}
	return nil
}

func newSpec(t *testing.T, opts ...apispec.Option) *apispec.Spec {
	t.Helper()
	s, err := apispec.New("Test API", "1.0.0", opts...)
	require.NoError(t, err)
	return s
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		title   string
		version string
		opts    []apispec.Option
		wantErr error
	}{
		"defaults":               {title: "API", version: "1.0.0"},
		"swagger 2":              {title: "API", version: "1.0.0", opts: []apispec.Option{apispec.WithOpenAPIVersion("2.0")}},
		"openapi 3.0":            {title: "API", version: "1.0.0", opts: []apispec.Option{apispec.WithOpenAPIVersion("3.0.3")}},
		"missing title":          {version: "1.0.0", wantErr: apispec.ErrInvalidInfo},
		"missing version":        {title: "API", wantErr: apispec.ErrInvalidInfo},
		"unsupported version":    {title: "API", version: "1.0.0", opts: []apispec.Option{apispec.WithOpenAPIVersion("1.2")}, wantErr: apispec.ErrUnsupportedVersion},
		"garbage version string": {title: "API", version: "1.0.0", opts: []apispec.Option{apispec.WithOpenAPIVersion("latest")}, wantErr: apispec.ErrUnsupportedVersion},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s, err := apispec.New(tc.title, tc.version, tc.opts...)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.title, s.Info().Title)
		})
	}
}

func TestNew_InitSpec(t *testing.T) {
	t.Parallel()

	p := &recordingPlugin{}
	s := newSpec(t, apispec.WithPlugins(p), apispec.WithInfoDescription("described"))

	assert.Same(t, s, p.initialized)
	assert.Equal(t, "described", s.Info().Description)
	assert.Equal(t, apispec.DefaultOpenAPIVersion, s.OpenAPIVersion())
}

func TestSpec_Path_explicit(t *testing.T) {
	t.Parallel()

	s := newSpec(t)
	require.NoError(t, s.Path(
		apispec.WithPath("/pets"),
		apispec.WithOperations(apispec.Operations{"get": {"summary": "list"}}),
		apispec.WithSummary("Pets"),
		apispec.WithDescription("All pets."),
		apispec.WithParameters(map[string]any{"name": "limit", "in": "query"}),
	))

	assert.Equal(t, map[string]apispec.PathItem{
		"/pets": {
			"get":         apispec.Operation{"summary": "list"},
			"summary":     "Pets",
			"description": "All pets.",
			"parameters":  []any{map[string]any{"name": "limit", "in": "query"}},
		},
	}, s.Paths())
}

func TestSpec_Path_errors(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")

	tests := map[string]struct {
		opts    []apispec.Option
		path    []apispec.PathOption
		wantErr error
	}{
		"no path": {
			wantErr: apispec.ErrPathNotSpecified,
		},
		"plugin leaves path empty": {
			opts: []apispec.Option{apispec.WithPlugins(pluginFunc(func(any, apispec.Operations, string) (string, error) {
				return "", nil
			}))},
			wantErr: apispec.ErrPathNotSpecified,
		},
		"plugin error": {
			opts: []apispec.Option{apispec.WithPlugins(pluginFunc(func(any, apispec.Operations, string) (string, error) {
				return "", errBoom
			}))},
			path:    []apispec.PathOption{apispec.WithPath("/x")},
			wantErr: errBoom,
		},
		"operation helper error": {
			opts:    []apispec.Option{apispec.WithPlugins(&recordingPlugin{helperErr: errBoom})},
			path:    []apispec.PathOption{apispec.WithPath("/x")},
			wantErr: errBoom,
		},
		"unknown verb": {
			path: []apispec.PathOption{
				apispec.WithPath("/x"),
				apispec.WithOperations(apispec.Operations{"fetch": {}}),
			},
			wantErr: apispec.ErrInvalidMethod,
		},
		"wildcard verb": {
			path: []apispec.PathOption{
				apispec.WithPath("/x"),
				apispec.WithOperations(apispec.Operations{"*": {}}),
			},
			wantErr: apispec.ErrInvalidMethod,
		},
		"trace on swagger 2": {
			opts: []apispec.Option{apispec.WithOpenAPIVersion("2.0")},
			path: []apispec.PathOption{
				apispec.WithPath("/x"),
				apispec.WithOperations(apispec.Operations{"trace": {}}),
			},
			wantErr: apispec.ErrInvalidMethod,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s := newSpec(t, tc.opts...)
			err := s.Path(tc.path...)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, s.Paths())
		})
	}
}

func TestSpec_Path_verbs(t *testing.T) {
	t.Parallel()

	s := newSpec(t)
	require.NoError(t, s.Path(
		apispec.WithPath("/x"),
		apispec.WithOperations(apispec.Operations{
			"trace":   {},
			"x-extra": {"k": "v"},
		}),
	))

	item := s.Paths()["/x"]
	assert.Contains(t, item, "trace")
	assert.Contains(t, item, "x-extra")
}

func TestSpec_Path_plugins(t *testing.T) {
	t.Parallel()

	var seenPath string
	first := pluginFunc(func(resource any, ops apispec.Operations, _ string) (string, error) {
		ops["get"] = apispec.Operation{"operationId": resource.(string)}
		return "/from-first", nil
	})
	second := pluginFunc(func(_ any, ops apispec.Operations, path string) (string, error) {
		seenPath = path
		ops["get"]["summary"] = "second"
		return "", nil
	})
	rec := &recordingPlugin{}

	s := newSpec(t, apispec.WithPlugins(first, second, rec))

	seed := apispec.Operations{"get": {"summary": "seed"}}
	require.NoError(t, s.Path(apispec.WithResource("listPets"), apispec.WithOperations(seed)))

	assert.Equal(t, "/from-first", seenPath, "plugins see the path resolved so far")
	assert.Equal(t, "/from-first", rec.helperPath)
	assert.Equal(t, apispec.Operations{"get": {"summary": "seed"}}, seed, "seed is not mutated")

	assert.Equal(t, apispec.PathItem{
		"get":      apispec.Operation{"operationId": "listPets", "summary": "second"},
		"x-helper": apispec.Operation{"seen": true},
	}, s.Paths()["/from-first"])
}

func TestSpec_Path_merges(t *testing.T) {
	t.Parallel()

	s := newSpec(t)
	require.NoError(t, s.Path(apispec.WithPath("/pets"), apispec.WithOperations(apispec.Operations{
		"get":  {"summary": "old"},
		"post": {"summary": "create"},
	})))
	require.NoError(t, s.Path(apispec.WithPath("/pets"), apispec.WithOperations(apispec.Operations{
		"get": {"summary": "new"},
	})))

	assert.Equal(t, apispec.PathItem{
		"get":  apispec.Operation{"summary": "new"},
		"post": apispec.Operation{"summary": "create"},
	}, s.Paths()["/pets"])
}

func TestSpec_Paths_copy(t *testing.T) {
	t.Parallel()

	s := newSpec(t)
	require.NoError(t, s.Path(apispec.WithPath("/pets"), apispec.WithOperations(apispec.Operations{
		"get": {"summary": "list"},
	})))

	paths := s.Paths()
	paths["/pets"]["get"].(apispec.Operation)["summary"] = "changed"
	delete(paths, "/pets")

	assert.Equal(t, "list", s.Paths()["/pets"]["get"].(apispec.Operation)["summary"])
}

func TestSpec_Document(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		version     string
		wantSwagger string
		wantOpenAPI string
	}{
		"openapi 3": {version: "3.0.3", wantOpenAPI: "3.0.3"},
		"swagger 2": {version: "2.0", wantSwagger: "2.0"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s := newSpec(t, apispec.WithOpenAPIVersion(tc.version))
			doc := s.Document()

			assert.Equal(t, tc.wantSwagger, doc.Swagger)
			assert.Equal(t, tc.wantOpenAPI, doc.OpenAPI)
			assert.Equal(t, apispec.Info{Title: "Test API", Version: "1.0.0"}, doc.Info)
			assert.NotNil(t, doc.Paths)
		})
	}
}
