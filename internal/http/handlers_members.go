package http

import (
	"net/http"
	"strings"

	"samiti/internal/core"
	"samiti/internal/log"
)

// handleMembers lists enrolled members, optionally filtered by name or phone.
// Enrollment itself still happens offline, so POST only acknowledges the
// request without touching the roster.
func (s *Server) handleMembers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		members := s.service.State().Members
		if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
			members = filterMembers(members, q)
		}
		respondJSON(w, http.StatusOK, emptyAsList(members))

	case http.MethodPost:
		respondJSON(w, http.StatusNotImplemented, map[string]string{
			"notice": "Member enrollment is not available yet. Contact the committee secretary.",
		})

	default:
		w.Header().Set("Allow", "GET, POST")
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// filterMembers matches q case-insensitively against name and phone number.
func filterMembers(members []core.Member, q string) []core.Member {
	q = strings.ToLower(q)
	out := make([]core.Member, 0, len(members))
	for _, m := range members {
		if strings.Contains(strings.ToLower(m.FullName), q) ||
			strings.Contains(m.PhoneNumber, q) {
			out = append(out, m)
		}
	}
	return out
}

func (s *Server) handleCommittee(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		respondJSON(w, http.StatusOK, emptyAsList(s.service.State().Committee))

	case http.MethodPost:
		var cm core.CommitteeMember
		if err := decodeJSON(r, &cm); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		cm.Name = sanitizeInput(cm.Name)
		cm.Role = sanitizeInput(cm.Role)

		added, err := s.service.AddCommitteeMember(r.Context(), cm)
		if err != nil {
			respondValidationError(w, err)
			return
		}

		s.invalidateViews()
		s.logger.InfoContext(r.Context(), "committee member added",
			log.FieldOperation, log.OpMutate)
		respondJSON(w, http.StatusCreated, added)

	default:
		w.Header().Set("Allow", "GET, POST")
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
