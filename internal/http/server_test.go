package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"samiti/internal/auth"
	"samiti/internal/core"
	"samiti/internal/log"
	"samiti/internal/services"
	"samiti/internal/state"
	"samiti/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := state.NewStore(core.Seed())
	logger := log.New(slog.LevelError, log.ComponentHTTP)
	service := services.NewCommitteeService(store, storage.NewMemoryStore(), nil, logger)
	gate := auth.NewGate(auth.StaticSecret("admin123"))
	srv := NewServer(":0", service, gate, logger)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, srv *Server) {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/api/login", loginRequest{Password: "admin123"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200", rec.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/login", loginRequest{Password: "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error != "Incorrect Admin Password" {
		t.Fatalf("error = %q, want %q", body.Error, "Incorrect Admin Password")
	}
}

func TestLoginNoLockoutAfterRepeatedFailures(t *testing.T) {
	srv := newTestServer(t)

	for i := 0; i < 100; i++ {
		rec := doJSON(t, srv, http.MethodPost, "/api/login", loginRequest{Password: "wrong"})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: status = %d, want 401", i, rec.Code)
		}
	}

	// Still lets the correct password in afterwards.
	login(t, srv)
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	srv := newTestServer(t)

	paths := []string{"/api/dashboard", "/api/contributions", "/api/settings", "/api/state"}
	for _, path := range paths {
		rec := doJSON(t, srv, http.MethodGet, path, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s status = %d, want 401", path, rec.Code)
		}
	}
}

func TestDashboardSeedTotals(t *testing.T) {
	srv := newTestServer(t)
	login(t, srv)

	rec := doJSON(t, srv, http.MethodGet, "/api/dashboard?year=2025", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var view dashboardView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}

	if view.Summary.TotalCollected != 2000 || view.Summary.TotalExpense != 3000 || view.Summary.Balance != -1000 {
		t.Fatalf("summary = %+v, want 2000/3000/-1000", view.Summary)
	}
	if len(view.Chart) != 2 || view.Chart[0].Label != "Collection" || view.Chart[1].Label != "Expense" {
		t.Fatalf("chart = %+v, want fixed Collection then Expense", view.Chart)
	}
	if view.MemberCount != 2 {
		t.Fatalf("memberCount = %d, want 2", view.MemberCount)
	}
	if len(view.TopContributors) != 2 || view.TopContributors[0].ID != "m2" {
		t.Fatalf("top contributors must rank m2 (7000) first, got %+v", view.TopContributors)
	}
}

func TestDashboardEmptyYear(t *testing.T) {
	srv := newTestServer(t)
	login(t, srv)

	rec := doJSON(t, srv, http.MethodGet, "/api/dashboard?year=2024", nil)
	var view dashboardView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.Summary.TotalCollected != 0 || view.Summary.Balance != 0 {
		t.Fatalf("empty year summary = %+v, want zeros", view.Summary)
	}
	// Leaderboard stays populated: it is year-independent.
	if len(view.TopContributors) != 2 {
		t.Fatalf("topContributors = %d entries, want 2", len(view.TopContributors))
	}
}

func TestAddContributionRefreshesDashboard(t *testing.T) {
	srv := newTestServer(t)
	login(t, srv)

	// Warm the cache.
	doJSON(t, srv, http.MethodGet, "/api/dashboard?year=2025", nil)

	rec := doJSON(t, srv, http.MethodPost, "/api/contributions", core.Contribution{
		DonorName:   "Sisir Hore",
		Amount:      1000,
		Date:        "2025-03-01",
		Year:        2025,
		PaymentMode: core.Bank,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}

	var added core.Contribution
	if err := json.Unmarshal(rec.Body.Bytes(), &added); err != nil {
		t.Fatalf("decode contribution: %v", err)
	}
	if added.ID == "" {
		t.Fatal("created contribution must carry an id")
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/dashboard?year=2025", nil)
	var view dashboardView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.Summary.TotalCollected != 3000 {
		t.Fatalf("totalCollected = %d, want 3000 after new contribution", view.Summary.TotalCollected)
	}
}

func TestAddContributionValidation(t *testing.T) {
	srv := newTestServer(t)
	login(t, srv)

	tests := []struct {
		name string
		body core.Contribution
	}{
		{"zero amount", core.Contribution{DonorName: "X", Amount: 0, Date: "2025-01-01", Year: 2025, PaymentMode: core.Cash}},
		{"bad date", core.Contribution{DonorName: "X", Amount: 10, Date: "01/01/2025", Year: 2025, PaymentMode: core.Cash}},
		{"bad payment mode", core.Contribution{DonorName: "X", Amount: 10, Date: "2025-01-01", Year: 2025, PaymentMode: "UPI"}},
		{"blank donor", core.Contribution{DonorName: "  ", Amount: 10, Date: "2025-01-01", Year: 2025, PaymentMode: core.Cash}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/api/contributions", tt.body)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want 422", rec.Code)
			}
		})
	}
}

func TestBudgetReportVariance(t *testing.T) {
	srv := newTestServer(t)
	login(t, srv)

	rec := doJSON(t, srv, http.MethodGet, "/api/budgets?year=2025", nil)
	var lines []core.BudgetLine
	if err := json.Unmarshal(rec.Body.Bytes(), &lines); err != nil {
		t.Fatalf("decode budget report: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	byCategory := map[string]core.BudgetLine{}
	for _, line := range lines {
		byCategory[line.Category] = line
	}
	if got := byCategory["Decoration"].Variance; got != 2000 {
		t.Errorf("Decoration variance = %d, want 2000", got)
	}
	if got := byCategory["Prasad"].Variance; got != 2000 {
		t.Errorf("Prasad variance = %d, want 2000", got)
	}
}

func TestMemberSearch(t *testing.T) {
	srv := newTestServer(t)
	login(t, srv)

	rec := doJSON(t, srv, http.MethodGet, "/api/members?q=girish", nil)
	var members []core.Member
	if err := json.Unmarshal(rec.Body.Bytes(), &members); err != nil {
		t.Fatalf("decode members: %v", err)
	}
	if len(members) != 1 || members[0].ID != "m2" {
		t.Fatalf("search for girish = %+v, want m2 only", members)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/members?q=9876543210", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &members); err != nil {
		t.Fatalf("decode members: %v", err)
	}
	if len(members) != 1 || members[0].ID != "m1" {
		t.Fatalf("phone search = %+v, want m1 only", members)
	}
}

func TestMemberEnrollmentNotImplemented(t *testing.T) {
	srv := newTestServer(t)
	login(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/api/members", map[string]string{"fullName": "New Member"})
	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("status = %d, want 501", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/members", nil)
	var members []core.Member
	if err := json.Unmarshal(rec.Body.Bytes(), &members); err != nil {
		t.Fatalf("decode members: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("roster must stay unchanged, got %d members", len(members))
	}
}

func TestRulesLifecycle(t *testing.T) {
	srv := newTestServer(t)
	login(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/api/settings/rules", ruleRequest{Text: "  New rule  "})
	var rules []string
	if err := json.Unmarshal(rec.Body.Bytes(), &rules); err != nil {
		t.Fatalf("decode rules: %v", err)
	}
	if len(rules) != 5 || rules[4] != "New rule" {
		t.Fatalf("rules = %v, want trimmed rule appended", rules)
	}

	// Blank rule is ignored.
	rec = doJSON(t, srv, http.MethodPost, "/api/settings/rules", ruleRequest{Text: "   "})
	if err := json.Unmarshal(rec.Body.Bytes(), &rules); err != nil {
		t.Fatalf("decode rules: %v", err)
	}
	if len(rules) != 5 {
		t.Fatalf("blank rule must be ignored, got %d rules", len(rules))
	}

	// Remove the second rule; order of the rest is preserved.
	rec = doJSON(t, srv, http.MethodDelete, "/api/settings/rules?index=1", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &rules); err != nil {
		t.Fatalf("decode rules: %v", err)
	}
	if len(rules) != 4 || rules[3] != "New rule" {
		t.Fatalf("rules after delete = %v", rules)
	}

	// Out-of-range delete is ignored.
	rec = doJSON(t, srv, http.MethodDelete, "/api/settings/rules?index=42", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &rules); err != nil {
		t.Fatalf("decode rules: %v", err)
	}
	if len(rules) != 4 {
		t.Fatalf("out-of-range delete must be ignored, got %d rules", len(rules))
	}
}

func TestSettingsUpdatePreservesRules(t *testing.T) {
	srv := newTestServer(t)
	login(t, srv)

	updated := core.Seed().Settings
	updated.Name = "Renamed Committee"
	updated.Rules = []string{"sneaky replacement"}

	rec := doJSON(t, srv, http.MethodPut, "/api/settings", updated)
	var settings core.ClubSettings
	if err := json.Unmarshal(rec.Body.Bytes(), &settings); err != nil {
		t.Fatalf("decode settings: %v", err)
	}
	if settings.Name != "Renamed Committee" {
		t.Fatalf("name = %q, want updated", settings.Name)
	}
	if len(settings.Rules) != 4 {
		t.Fatalf("rules must survive a settings update, got %v", settings.Rules)
	}
}

func TestYearAndSessionEndpoints(t *testing.T) {
	srv := newTestServer(t)
	login(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/api/years", yearRequest{Year: 2027})
	var years []int
	if err := json.Unmarshal(rec.Body.Bytes(), &years); err != nil {
		t.Fatalf("decode years: %v", err)
	}
	if len(years) != 5 || years[4] != 2027 {
		t.Fatalf("years = %v, want 2027 appended in order", years)
	}

	// Duplicate is ignored.
	rec = doJSON(t, srv, http.MethodPost, "/api/years", yearRequest{Year: 2025})
	if err := json.Unmarshal(rec.Body.Bytes(), &years); err != nil {
		t.Fatalf("decode years: %v", err)
	}
	if len(years) != 5 {
		t.Fatalf("duplicate year must be ignored, got %v", years)
	}

	rec = doJSON(t, srv, http.MethodPut, "/api/session", yearRequest{Year: 2027})
	var session sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if session.SelectedYear != 2027 {
		t.Fatalf("selectedYear = %d, want 2027", session.SelectedYear)
	}

	// Unknown year keeps the previous selection.
	rec = doJSON(t, srv, http.MethodPut, "/api/session", yearRequest{Year: 1999})
	if err := json.Unmarshal(rec.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if session.SelectedYear != 2027 {
		t.Fatalf("unknown year must be ignored, selectedYear = %d", session.SelectedYear)
	}
}

func TestLogoutClosesGate(t *testing.T) {
	srv := newTestServer(t)
	login(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/api/logout", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d, want 200", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/dashboard", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("post-logout status = %d, want 401", rec.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.Server.Handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, rec.Code)
		}
	}
}
