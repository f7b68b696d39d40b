package middleware

import (
	"net/http"

	"campreserv/pkg/logger"
	"campreserv/pkg/session"
)

// StaffAuth verifies the bearer token on every request and attaches the
// staff session to the context. Health endpoints are registered on a
// separate router and never pass through here.
func StaffAuth(secret string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := session.Parse(r.Header.Get("Authorization"), secret)
			if err != nil {
				log.Warn("Rejected unauthenticated request",
					"request_id", RequestID(r.Context()),
					"path", r.URL.Path,
					"error", err,
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"Invalid or missing session token"}`))
				return
			}

			next.ServeHTTP(w, r.WithContext(session.WithContext(r.Context(), s)))
		})
	}
}
