package http

import (
	"net/http"
	"strconv"
	"strings"

	"samiti/internal/core"
	"samiti/internal/log"
)

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		respondJSON(w, http.StatusOK, s.service.State().Settings)

	case http.MethodPut:
		var settings core.ClubSettings
		if err := decodeJSON(r, &settings); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		settings.Name = sanitizeInput(settings.Name)

		// Rules are managed through their own endpoint; whatever the client
		// sent here is discarded by the update.
		s.service.UpdateSettings(r.Context(), settings)
		s.invalidateViews()
		respondJSON(w, http.StatusOK, s.service.State().Settings)

	default:
		w.Header().Set("Allow", "GET, PUT")
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

type ruleRequest struct {
	Text string `json:"text"`
}

// handleRules appends or removes club rules. Blank rules and out-of-range
// indexes are ignored without an error, matching the dashboard behavior of
// doing nothing.
func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req ruleRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if s.service.AddRule(r.Context(), req.Text) {
			s.logger.InfoContext(r.Context(), "rule added",
				log.FieldOperation, log.OpMutate)
		}
		respondJSON(w, http.StatusOK, s.service.State().Settings.Rules)

	case http.MethodDelete:
		index, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("index")))
		if err != nil {
			respondError(w, http.StatusBadRequest, "index query parameter required")
			return
		}
		if s.service.RemoveRule(r.Context(), index) {
			s.logger.InfoContext(r.Context(), "rule removed",
				log.FieldOperation, log.OpMutate,
				log.FieldRuleIndex, index)
		}
		respondJSON(w, http.StatusOK, s.service.State().Settings.Rules)

	default:
		w.Header().Set("Allow", "POST, DELETE")
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

type yearRequest struct {
	Year int `json:"year"`
}

// handleYears opens a new session year. Duplicates and malformed years are
// ignored; the response always carries the current year list.
func (s *Server) handleYears(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		respondJSON(w, http.StatusOK, s.service.State().Years)

	case http.MethodPost:
		var req yearRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if s.service.AddYear(r.Context(), req.Year) {
			s.invalidateViews()
			s.logger.InfoContext(r.Context(), "session year added",
				log.FieldOperation, log.OpMutate,
				log.FieldYear, req.Year)
		}
		respondJSON(w, http.StatusOK, s.service.State().Years)

	default:
		w.Header().Set("Allow", "GET, POST")
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

type sessionResponse struct {
	SelectedYear int `json:"selectedYear"`
}

// handleSession switches the selected session year. Unknown years are
// ignored and the previous selection stays.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		respondJSON(w, http.StatusOK, sessionResponse{SelectedYear: s.service.State().SelectedYear})

	case http.MethodPut:
		var req yearRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if s.service.SetSelectedYear(r.Context(), req.Year) {
			s.invalidateViews()
			s.logger.InfoContext(r.Context(), "session year switched",
				log.FieldOperation, log.OpMutate,
				log.FieldYear, req.Year)
		}
		respondJSON(w, http.StatusOK, sessionResponse{SelectedYear: s.service.State().SelectedYear})

	default:
		w.Header().Set("Allow", "GET, PUT")
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
