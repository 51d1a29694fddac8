package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/identity/pkg/authsdk"
	"github.com/aussiebroadwan/identity/pkg/httpx"
	"github.com/aussiebroadwan/identity/pkg/jwtx"
)

// Pinger is anything readiness can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe returning uptime and version. Always 200 while the process serves requests.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, authsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe checking the credential store, the token signer and the lookup cache.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	authsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	db Pinger,
	keys *jwtx.KeyManager,
	cache Pinger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := &authsdk.HealthChecks{
			Database: "ok",
			Signer:   "ok",
			Cache:    "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := db.Ping(ctx); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if !keys.IsReady() {
			checks.Signer = "error: no keys loaded"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		// Lookups fall back to the store while the cache is down, so this
		// degrades the status without failing readiness.
		if err := cache.Ping(ctx); err != nil {
			checks.Cache = "error: " + err.Error()
			overallStatus = "degraded"
		}

		httpx.WriteJSON(w, statusCode, authsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}

// JWKSHandler exposes the JSON Web Key Set for public key discovery.
//
//	@Summary		Get JWKS
//	@Description	Returns the JSON Web Key Set used to verify session tokens.
//	@Tags			well-known
//	@Produce		json
//	@Success		200	{object}	authsdk.JWKSResponse	"The JSON Web Key Set"
//	@Router			/.well-known/jwks.json [get].
func JWKSHandler(keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, authsdk.JWKSResponse(keys.PublicJWKS()))
	}
}
