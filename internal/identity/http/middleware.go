package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/service"
	"github.com/aussiebroadwan/identity/pkg/authsdk"
	"github.com/aussiebroadwan/identity/pkg/httpx"
	"github.com/aussiebroadwan/identity/pkg/slogx"
)

type ctxKeyAccount struct{}

func withAccount(ctx context.Context, a domain.Account) context.Context {
	return context.WithValue(ctx, ctxKeyAccount{}, a)
}

// accountFrom returns the account placed on the context by requireRoles.
func accountFrom(ctx context.Context) (domain.Account, bool) {
	a, ok := ctx.Value(ctxKeyAccount{}).(domain.Account)
	return a, ok
}

// requireRoles authenticates the bearer token through gate and admits the
// request when the account holds one of allowed. With no roles listed any
// authenticated account passes.
func requireRoles(gate *service.Gate, allowed ...domain.Role) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			// 1. Extract the bearer token
			token, ok := httpx.BearerToken(r)
			if !ok {
				httpx.SetBearerChallenge(w, authsdk.ErrorCodeInvalidToken, "missing bearer token")
				authsdk.ErrInvalidToken.WriteError(w)
				return
			}

			// 2. Resolve the account
			a, err := gate.Authenticate(ctx, token)
			if err != nil {
				writeServiceError(w, r, err)
				return
			}

			// 3. Check its current roles
			if err := gate.RequireRole(a, allowed...); err != nil {
				slogx.FromContext(ctx).Warn("role check failed",
					slog.String("username", a.Username),
					slog.String("path", r.URL.Path),
				)
				authsdk.ErrAccessDenied.WriteError(w)
				return
			}

			ctx = slogx.WithContext(ctx, slogx.FromContext(ctx).With(slog.String("username", a.Username)))
			next.ServeHTTP(w, r.WithContext(withAccount(ctx, a)))
		})
	}
}
