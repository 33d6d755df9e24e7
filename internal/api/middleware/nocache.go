package middleware

import "net/http"

// NoCache disables client and proxy caching. The links file is overwritten
// wholesale on each extraction run and embeds are recomputed per request, so
// a stale cached response is never correct.
func NoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}
