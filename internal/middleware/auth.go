package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/2beens/healthdash/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

const TokenHeader = "X-HEALTHDASH-TOKEN"

// AuthMiddlewareHandler guards the requests that change state (reload, preferences).
// Reading the dashboard is always allowed.
type AuthMiddlewareHandler struct {
	adminToken string
}

func NewAuthMiddlewareHandler(adminToken string) *AuthMiddlewareHandler {
	if adminToken == "" {
		log.Warnln("auth middleware: no admin token set, state changing requests are open")
	}
	return &AuthMiddlewareHandler{
		adminToken: adminToken,
	}
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				span.SetStatus(codes.Ok, "read-only")
				next.ServeHTTP(w, r)
				return
			}

			if h.adminToken == "" {
				span.SetStatus(codes.Ok, "auth-disabled")
				next.ServeHTTP(w, r)
				return
			}

			authToken := r.Header.Get(TokenHeader)
			if authToken == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			if subtle.ConstantTimeCompare([]byte(authToken), []byte(h.adminToken)) != 1 {
				log.Tracef("[invalid token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "invalid-token")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r)
		})
	}
}
