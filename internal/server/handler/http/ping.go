package http

import (
	"cmp"
	"net/http"
)

// PingHandler answers liveness probes with the build version.
type PingHandler struct {
	Version string
}

// Ping handles GET /api/ping.
func (h *PingHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"version": cmp.Or(h.Version, "N/A")})
}
