package apispec

// Plugin contributes paths to a Spec. PathHelper is called once per Path
// call with the resource being documented, the operations record to fill,
// and the explicit path (or "" when the caller gave none). It returns the
// resolved path, or "" to leave the path unchanged.
//
// ops is never nil and may be mutated in place.
type Plugin interface {
	PathHelper(resource any, ops Operations, path string) (string, error)
}

// Initializer is implemented by plugins that want a handle on the Spec they
// are attached to. InitSpec runs once, from New.
type Initializer interface {
	InitSpec(s *Spec)
}

// OperationHelper is implemented by plugins that post-process operations
// once the path is resolved.
type OperationHelper interface {
	OperationHelper(path string, ops Operations, resource any) error
}
