package cli

var (
	NewServer   = newServer
	ResourcesOf = (*App).resources
)
