package mcp

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bull/docqa/internal/freshness"
)

// HealthResponse is the JSON body of the /health endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Index     string `json:"index"`
	Timestamp string `json:"timestamp"`
}

// FreshnessChecker reports index freshness for the health endpoint.
// The freshness controller implements this via Evaluate.
type FreshnessChecker interface {
	Evaluate() (freshness.State, string, error)
}

// NewHealthHandler creates the /health endpoint for the HTTP mode. A
// failed freshness evaluation (unreadable corpus) reports 503; otherwise
// the current index state rides along with a 200.
func NewHealthHandler(ctrl FreshnessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, _, err := ctrl.Evaluate()

		response := HealthResponse{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}
		w.Header().Set("Content-Type", "application/json")

		if err != nil {
			response.Status = "unhealthy"
			response.Index = "unavailable"
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(response)
			return
		}

		response.Status = "healthy"
		response.Index = state.String()
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(response)
	}
}
