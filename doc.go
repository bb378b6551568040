// Package routespec documents the routes of a web.Router in an apispec.Spec.
//
// The Plugin walks the router's route table once, when it is created, and
// indexes every handler by its HandlerID: the URL template of its route and
// one documented handler per HTTP verb. Class-based views contribute every
// verb slot they fill; function routes contribute their declared method.
//
// The spec then calls the plugin's PathHelper for each documented resource:
//
//	r := web.New()
//	users := web.NewView(userView{})
//	web.RegisterView(r, "/users", users)
//
//	plugin := routespec.New(r)
//	spec, err := apispec.New("Users", "1.0.0", apispec.WithPlugins(plugin))
//	if err != nil {
//	    return err
//	}
//	if err := spec.Path(apispec.WithResource(users)); err != nil {
//	    return err
//	}
//
// Operation documentation comes from structured documentation attached at
// registration (web.WithOperation, web.WithOperations) or, failing that,
// from the YAML block of the handler docstring (web.WithDoc).
//
// The index is a snapshot. Routes added after New are not seen.
package routespec
