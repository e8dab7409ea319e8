package middleware

import (
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/Dan9191/kos-service/internal/auth"
	"github.com/Dan9191/kos-service/internal/response"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// SessionCookie is the cookie carrying the session token
const SessionCookie = "session"

// AuthMiddleware rejects requests without a valid session token and stores
// the caller identity in the request context
func AuthMiddleware(secret []byte, log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := tokenFromRequest(r)
			if raw == "" {
				response.Error(w, http.StatusUnauthorized, "Unauthorized", "missing session")
				return
			}
			id, err := auth.ParseToken(secret, raw)
			if err != nil {
				log.WithField("path", r.URL.Path).Debugf("Rejected token: %v", err)
				response.Error(w, http.StatusUnauthorized, "Unauthorized", "invalid session")
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Logging logs every request once it completes
func Logging(log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			log.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   rec.status,
				"duration": time.Since(start).String(),
			}).Info("Request handled")
		})
	}
}

// Recovery turns a panicking handler into a 500 response
func Recovery(log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.WithFields(logrus.Fields{
						"path":  r.URL.Path,
						"stack": string(debug.Stack()),
					}).Errorf("Handler panic: %v", rec)
					response.Error(w, http.StatusInternalServerError, "Internal server error", "")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
