package http

import (
	"net/http"

	"samiti/internal/log"
)

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Authenticated bool `json:"authenticated"`
}

// handleLogin checks the shared admin secret. Failures are not throttled and
// carry the same message the dashboard shows.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !s.gate.Authenticate(req.Password) {
		s.logger.WarnContext(r.Context(), "login rejected",
			log.FieldOperation, log.OpLogin)
		respondError(w, http.StatusUnauthorized, "Incorrect Admin Password")
		return
	}

	s.logger.InfoContext(r.Context(), "admin authenticated",
		log.FieldOperation, log.OpLogin)
	respondJSON(w, http.StatusOK, loginResponse{Authenticated: true})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	s.gate.Logout()
	respondJSON(w, http.StatusOK, loginResponse{Authenticated: false})
}
