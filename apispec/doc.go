// Package apispec assembles an OpenAPI document from path items contributed
// through plugins.
//
// A Spec is created with the API title and version and a set of plugins.
// Each call to Path hands the plugins a resource and a fresh Operations
// record; plugins resolve the URL template and fill the operations, and the
// spec stores the result under that path:
//
//	spec, err := apispec.New("Items API", "1.0.0", apispec.WithPlugins(plugin))
//	if err != nil {
//	    return err
//	}
//	if err := spec.Path(apispec.WithResource(itemsView)); err != nil {
//	    return err
//	}
//	return spec.WriteYAML(os.Stdout)
//
// Operations are usually written as YAML inside a handler docstring, after
// a line starting with "---". LoadYAMLFromDocstring and
// LoadOperationsFromDocstring extract them.
package apispec
