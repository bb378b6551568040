package routespec

import "errors"

// ErrNotIndexed is returned when a resource has no entry in the index:
// it is not a web.Endpoint, was never registered, or was registered on
// another router.
var ErrNotIndexed = errors.New("resource not indexed")
