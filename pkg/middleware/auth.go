// Package middleware holds the HTTP middleware shared by every route:
// bearer authentication, request logging, panic recovery and CORS.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/pizzeria/pkg/auth"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/response"
)

type subjectKey struct{}

// WithSubject stores the verified subject in ctx.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey{}, subject)
}

// SubjectFromCtx returns the subject placed by Authenticate.
func SubjectFromCtx(r *http.Request) (string, bool) {
	s, ok := r.Context().Value(subjectKey{}).(string)
	return s, ok && s != ""
}

// BearerToken extracts the token from an "Authorization: Bearer <t>" header.
func BearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// Authenticate rejects requests without a valid access token and puts the
// token subject into the request context.
func Authenticate(v auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, err := v.Verify(BearerToken(r))
			if err != nil {
				logger.WithCtx(r.Context()).Debug("token rejected", "error", err)
				response.Unauthorized(w, "Invalid Token")
				return
			}

			ctx := WithSubject(r.Context(), subject)
			ctx = logger.InjectLogger(ctx, logger.WithCtx(ctx).With("subject", subject))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
