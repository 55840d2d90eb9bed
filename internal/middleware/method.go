package middleware

import (
	"net/http"

	"github.com/2beens/gymsheets/pkg"

	log "github.com/sirupsen/logrus"
)

const methodNotAllowedMessage = "Method not allowed"

// AllowMethods answers preflight requests with an empty 200 and rejects any
// method not in the list with a JSON 405.
func AllowMethods(methods ...string) func(next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(methods))
	for _, m := range methods {
		allowed[m] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			if !allowed[r.Method] {
				log.Tracef("method [%s] not allowed for [%s]", r.Method, r.URL.Path)
				pkg.WriteJSONError(w, http.StatusMethodNotAllowed, methodNotAllowedMessage)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
