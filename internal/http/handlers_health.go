package httpx

import (
	"net/http"

	"github.com/medipharm/medipharm-console/internal/session"
)

type healthBody struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

// healthHandler reports liveness with the number of live browser sessions.
func healthHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := healthBody{Status: "ok"}
		if reg != nil {
			body.Sessions = reg.Len()
		}
		if r.Method == http.MethodHead {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			return
		}
		WriteJSON(w, http.StatusOK, body)
	}
}
