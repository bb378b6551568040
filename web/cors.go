package web

import (
	"net/http"
	"slices"
	"strings"
)

// CORS returns middleware that lets browser tools on other origins fetch
// read-only resources such as the OpenAPI document. An origin of "*" allows
// any origin. Preflight requests are answered with 204.
func CORS(origins ...string) Middleware {
	allowAll := len(origins) == 0 || slices.Contains(origins, "*")
	methods := strings.Join([]string{http.MethodGet, http.MethodHead, http.MethodOptions}, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Origin")

			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			switch {
			case allowAll:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case slices.Contains(origins, origin):
				w.Header().Set("Access-Control-Allow-Origin", origin)
			default:
				next.ServeHTTP(w, r)
				return
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				if h := r.Header.Get("Access-Control-Request-Headers"); h != "" {
					w.Header().Set("Access-Control-Allow-Headers", h)
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
