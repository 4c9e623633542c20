// Package cors applies the service's deliberately open cross-origin policy:
// embeddings are served to any origin, with any method and headers.
package cors

import "net/http"

// Middleware sets permissive CORS headers and short-circuits preflight
// requests. It must wrap the router itself so that OPTIONS requests are
// answered before route matching.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
