package http

import (
	"net/http"

	"samiti/internal/core"
)

// dashboardView is everything the dashboard page needs for one session year.
type dashboardView struct {
	Year            int               `json:"year"`
	Summary         core.Summary      `json:"summary"`
	Chart           []core.ChartPoint `json:"chart"`
	TopContributors []core.Member     `json:"topContributors"`
	BudgetReport    []core.BudgetLine `json:"budgetReport"`
	MemberCount     int               `json:"memberCount"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	state := s.service.State()
	year := parseYear(r, state.SelectedYear)

	key := s.yearKey(year)
	if view, ok := s.overviewCache.Get(key); ok {
		respondJSON(w, http.StatusOK, view)
		return
	}

	view := buildDashboardView(state, year)
	s.overviewCache.Set(key, view)
	respondJSON(w, http.StatusOK, view)
}

func buildDashboardView(state core.AppState, year int) dashboardView {
	records := core.FilterYear(state, year)
	summary := core.Summarize(records.Contributions, records.Expenses)
	return dashboardView{
		Year:            year,
		Summary:         summary,
		Chart:           core.ChartSeries(summary),
		TopContributors: core.TopContributors(state.Members, core.DefaultTopContributors),
		BudgetReport:    core.BudgetReport(records.Budgets, records.Expenses),
		MemberCount:     len(state.Members),
	}
}

// handleState returns the whole application state, the same document the
// snapshot store persists.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	respondJSON(w, http.StatusOK, s.service.State())
}
