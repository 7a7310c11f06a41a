package core

import "sort"

// DefaultTopContributors is how many members the dashboard leaderboard shows.
const DefaultTopContributors = 5

type (
	// YearRecords is the slice of state scoped to one session year.
	YearRecords struct {
		Contributions []Contribution
		Expenses      []Expense
		Budgets       []Budget
	}

	// Summary holds the totals shown on the dashboard cards. Balance can go
	// negative; it is never clamped.
	Summary struct {
		TotalCollected int64 `json:"totalCollected"`
		TotalExpense   int64 `json:"totalExpense"`
		Balance        int64 `json:"balance"`
	}

	// ChartPoint is one bar of the financial summary chart.
	ChartPoint struct {
		Label string `json:"label"`
		Value int64  `json:"value"`
	}

	// BudgetLine is one row of the budget-vs-actual table.
	BudgetLine struct {
		Budget
		Actual   int64 `json:"actual"`
		Variance int64 `json:"variance"`
	}
)

// FilterYear returns the records whose Year equals year. A year with no
// records yields empty slices, which is a valid result.
func FilterYear(s AppState, year int) YearRecords {
	var out YearRecords
	for _, c := range s.Contributions {
		if c.Year == year {
			out.Contributions = append(out.Contributions, c)
		}
	}
	for _, e := range s.Expenses {
		if e.Year == year {
			out.Expenses = append(out.Expenses, e)
		}
	}
	for _, b := range s.Budgets {
		if b.Year == year {
			out.Budgets = append(out.Budgets, b)
		}
	}
	return out
}

// Summarize totals the given (already year-filtered) records.
func Summarize(contributions []Contribution, expenses []Expense) Summary {
	var sum Summary
	for _, c := range contributions {
		sum.TotalCollected += c.Amount
	}
	for _, e := range expenses {
		sum.TotalExpense += e.Amount
	}
	sum.Balance = sum.TotalCollected - sum.TotalExpense
	return sum
}

// ChartSeries returns the two bars of the summary chart. The order is fixed:
// renderers color the first point as collection and the second as expense.
func ChartSeries(sum Summary) []ChartPoint {
	return []ChartPoint{
		{Label: "Collection", Value: sum.TotalCollected},
		{Label: "Expense", Value: sum.TotalExpense},
	}
}

// TopContributors ranks members by lifetime contribution, descending, and
// truncates to k. The ranking is year-independent: it uses the stored
// lifetime total, not the contribution records of any session. Ties keep
// their original relative order.
func TopContributors(members []Member, k int) []Member {
	ranked := append([]Member(nil), members...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalLifetimeContribution > ranked[j].TotalLifetimeContribution
	})
	if k >= 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

// ActualSpend sums the expenses whose category exactly matches category.
func ActualSpend(category string, expenses []Expense) int64 {
	var total int64
	for _, e := range expenses {
		if e.Category == category {
			total += e.Amount
		}
	}
	return total
}

// VarianceFor computes budget-vs-actual for one budget row against the
// already year-filtered expense set. Positive variance means under budget.
func VarianceFor(b Budget, expenses []Expense) BudgetLine {
	actual := ActualSpend(b.Category, expenses)
	return BudgetLine{
		Budget:   b,
		Actual:   actual,
		Variance: b.PlannedAmount - actual,
	}
}

// BudgetReport computes variance lines for every budget of a year.
func BudgetReport(budgets []Budget, expenses []Expense) []BudgetLine {
	lines := make([]BudgetLine, 0, len(budgets))
	for _, b := range budgets {
		lines = append(lines, VarianceFor(b, expenses))
	}
	return lines
}
