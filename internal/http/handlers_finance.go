package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"samiti/internal/core"
	"samiti/internal/log"
)

// Amounts arrive as JSON numbers and go through the whole-rupee parser, so
// fractional or negative values fail the same way a malformed form field
// would.
type contributionRequest struct {
	MemberID    string           `json:"memberId"`
	DonorName   string           `json:"donorName"`
	Amount      json.Number      `json:"amount"`
	Date        string           `json:"date"`
	Year        int              `json:"year"`
	PaymentMode core.PaymentMode `json:"paymentMode"`
	Note        string           `json:"note"`
}

type expenseRequest struct {
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Amount      json.Number `json:"amount"`
	Date        string      `json:"date"`
	Year        int         `json:"year"`
	AddedBy     string      `json:"addedBy"`
}

func (s *Server) handleContributions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		state := s.service.State()
		year := parseYear(r, state.SelectedYear)
		records := core.FilterYear(state, year)
		respondJSON(w, http.StatusOK, emptyAsList(records.Contributions))

	case http.MethodPost:
		var req contributionRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		amount, err := core.ParseAmount(req.Amount.String())
		if err != nil {
			respondValidationError(w, err)
			return
		}
		c := core.Contribution{
			MemberID:    req.MemberID,
			DonorName:   sanitizeInput(req.DonorName),
			Amount:      amount,
			Date:        req.Date,
			Year:        req.Year,
			PaymentMode: req.PaymentMode,
			Note:        sanitizeInput(req.Note),
		}

		added, err := s.service.AddContribution(r.Context(), c)
		if err != nil {
			respondValidationError(w, err)
			return
		}

		s.invalidateViews()
		s.logger.InfoContext(r.Context(), "contribution recorded",
			log.FieldOperation, log.OpMutate,
			log.FieldDonor, added.DonorName,
			log.FieldAmount, added.Amount,
			log.FieldYear, added.Year)
		respondJSON(w, http.StatusCreated, added)

	default:
		w.Header().Set("Allow", "GET, POST")
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		state := s.service.State()
		year := parseYear(r, state.SelectedYear)
		records := core.FilterYear(state, year)
		respondJSON(w, http.StatusOK, emptyAsList(records.Expenses))

	case http.MethodPost:
		var req expenseRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		amount, err := core.ParseAmount(req.Amount.String())
		if err != nil {
			respondValidationError(w, err)
			return
		}
		e := core.Expense{
			Category:    sanitizeInput(req.Category),
			Description: sanitizeInput(req.Description),
			Amount:      amount,
			Date:        req.Date,
			Year:        req.Year,
			AddedBy:     sanitizeInput(req.AddedBy),
		}

		added, err := s.service.AddExpense(r.Context(), e)
		if err != nil {
			respondValidationError(w, err)
			return
		}

		s.invalidateViews()
		s.logger.InfoContext(r.Context(), "expense recorded",
			log.FieldOperation, log.OpMutate,
			log.FieldCategory, added.Category,
			log.FieldAmount, added.Amount,
			log.FieldYear, added.Year)
		respondJSON(w, http.StatusCreated, added)

	default:
		w.Header().Set("Allow", "GET, POST")
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		state := s.service.State()
		year := parseYear(r, state.SelectedYear)
		records := core.FilterYear(state, year)
		respondJSON(w, http.StatusOK, core.BudgetReport(records.Budgets, records.Expenses))

	case http.MethodPost:
		var b core.Budget
		if err := decodeJSON(r, &b); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		b.Category = sanitizeInput(b.Category)

		added, err := s.service.AddBudget(r.Context(), b)
		if err != nil {
			respondValidationError(w, err)
			return
		}

		s.invalidateViews()
		s.logger.InfoContext(r.Context(), "budget recorded",
			log.FieldOperation, log.OpMutate,
			log.FieldCategory, added.Category,
			log.FieldAmount, added.PlannedAmount,
			log.FieldYear, added.Year)
		respondJSON(w, http.StatusCreated, added)

	default:
		w.Header().Set("Allow", "GET, POST")
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// respondValidationError maps domain validation errors to 422 and anything
// else to 500.
func respondValidationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidYear),
		errors.Is(err, core.ErrEmptyDonorName),
		errors.Is(err, core.ErrEmptyCategory),
		errors.Is(err, core.ErrInvalidPayMode),
		errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrEmptyDescriptor):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// emptyAsList keeps empty collections rendering as [] instead of null.
func emptyAsList[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
