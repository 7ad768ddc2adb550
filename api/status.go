package api

import (
	"net/http"
	"time"
)

type statusResponse struct {
	Status  string   `json:"status"`
	Uptime  string   `json:"uptime"`
	Version string   `json:"version"`
	Formats []string `json:"formats"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "ok",
		Uptime:  time.Since(s.startTime).Truncate(time.Second).String(),
		Version: s.Version,
		Formats: formatNames(),
	})
}
