package http

import (
	"net/http"
	"time"

	"github.com/hydrous-ai/hydrous/internal/api/store"
	"github.com/hydrous-ai/hydrous/internal/api/store/kv"
	"github.com/hydrous-ai/hydrous/pkg/httpx"
)

type healthChecks struct {
	Database        string `json:"database"`
	RevocationStore string `json:"revocation_store"`
}

type healthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *healthChecks `json:"checks,omitempty"`
}

// ALBHealthHandler answers load-balancer probes. Always 200 while the
// process is up; dependency state is the full health handler's job.
func ALBHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

// HealthHandler reports service health with dependency checks. The
// revocation store failing degrades the report but keeps the status code at
// 200: token verification fails open without it, so the service still serves.
func HealthHandler(startTime time.Time, version string, st store.Store, revocation kv.KV) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &healthChecks{
			Database:        "ok",
			RevocationStore: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if err := revocation.Ping(r.Context()); err != nil {
			checks.RevocationStore = "error: " + err.Error()
			if overallStatus == "ok" {
				overallStatus = "degraded"
			}
		}

		httpx.WriteJSON(w, statusCode, healthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
