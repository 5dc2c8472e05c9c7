package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/atsops/orderdesk/internal/core/domain"
)

const (
	sessionHeader  = "X-Session-Id"
	employeeHeader = "X-Employee-Id"
)

type sessionCtxKey struct{}

// WithSession returns a context carrying the given session.
func WithSession(ctx context.Context, s domain.Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, s)
}

// SessionFrom extracts the session attached by the middleware.
func SessionFrom(ctx context.Context) (domain.Session, bool) {
	s, ok := ctx.Value(sessionCtxKey{}).(domain.Session)
	return s, ok
}

// WithSessionMiddleware attaches an explicit session to every request and
// logs the request against it. A client may pin its session id via the
// X-Session-Id header; otherwise each request gets a fresh one.
func WithSessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := domain.NewSession(r.Header.Get(employeeHeader))
		if id := r.Header.Get(sessionHeader); id != "" {
			sess.ID = id
		}

		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"session", sess.ID,
			"employee", sess.EmployeeID,
		)

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}
