package routespec

import (
	"log/slog"
	"strings"

	"github.com/bjaus/routespec/web"
)

// RouteTable is the view of a router the plugin needs. *web.Router
// implements it.
type RouteTable interface {
	Routes() []*web.Route
}

// IndexEntry is what the plugin knows about one handler: the URL template
// of its route and the documented handler of each verb, keyed by lowercase
// verb. URI is "" when the route's resource has neither a path nor a
// formatter.
type IndexEntry struct {
	URI     string
	Methods map[string]web.Documented
}

func (e IndexEntry) clone() IndexEntry {
	methods := make(map[string]web.Documented, len(e.Methods))
	for verb, h := range e.Methods {
		methods[verb] = h
	}
	return IndexEntry{URI: e.URI, Methods: methods}
}

// buildIndex maps every handler in routes to its entry. A handler
// registered under several routes keeps the entry of the last one.
func (p *Plugin) buildIndex(routes []*web.Route) map[web.HandlerID]IndexEntry {
	index := make(map[web.HandlerID]IndexEntry, len(routes))

	for _, route := range routes {
		h := route.Handler()
		if h == nil {
			continue
		}

		entry := IndexEntry{
			URI:     routeURI(route),
			Methods: make(map[string]web.Documented),
		}

		if methods, ok := web.AsView(h); ok {
			for _, method := range web.AllMethods {
				if slot := methods.Lookup(method); slot != nil {
					entry.Methods[strings.ToLower(method)] = slot
				}
			}
		} else {
			entry.Methods[strings.ToLower(route.Method())] = h
		}

		if prev, ok := index[h.ID()]; ok {
			p.logger.Warn("handler registered under multiple routes, last route wins",
				slog.String("handler", h.Name()),
				slog.String("previous_uri", prev.URI),
				slog.String("uri", entry.URI),
			)
		}
		index[h.ID()] = entry

		p.logger.Debug("route indexed",
			slog.String("handler", h.Name()),
			slog.String("uri", entry.URI),
			slog.Any("methods", verbs(entry)),
		)
	}

	return index
}

// routeURI prefers the literal path of the route's resource and falls back
// to its formatter.
func routeURI(route *web.Route) string {
	res := route.Resource()
	if res == nil {
		return ""
	}
	info := res.Info()
	if info.Path != "" {
		return info.Path
	}
	return info.Formatter
}

func verbs(e IndexEntry) []string {
	out := make([]string, 0, len(e.Methods))
	for verb := range e.Methods {
		out = append(out, verb)
	}
	return out
}
