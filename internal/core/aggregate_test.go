package core

import "testing"

func TestFilterYearPartitions(t *testing.T) {
	s := Seed()
	s.Contributions = append(s.Contributions, Contribution{ID: "c3", DonorName: "x", Amount: 100, Date: "2024-02-01", Year: 2024, PaymentMode: Cash})
	s.Expenses = append(s.Expenses, Expense{ID: "e2", Category: "Prasad", Description: "y", Amount: 50, Date: "2024-02-05", Year: 2024, AddedBy: "Admin"})

	var contribs, expenses, budgets int
	for _, y := range s.Years {
		recs := FilterYear(s, y)
		for _, c := range recs.Contributions {
			if c.Year != y {
				t.Fatalf("year %d returned contribution of year %d", y, c.Year)
			}
		}
		for _, e := range recs.Expenses {
			if e.Year != y {
				t.Fatalf("year %d returned expense of year %d", y, e.Year)
			}
		}
		for _, b := range recs.Budgets {
			if b.Year != y {
				t.Fatalf("year %d returned budget of year %d", y, b.Year)
			}
		}
		contribs += len(recs.Contributions)
		expenses += len(recs.Expenses)
		budgets += len(recs.Budgets)
	}
	if contribs != len(s.Contributions) || expenses != len(s.Expenses) || budgets != len(s.Budgets) {
		t.Fatalf("union over years lost or duplicated records: %d/%d/%d", contribs, expenses, budgets)
	}
}

func TestFilterYearEmptyIsValid(t *testing.T) {
	recs := FilterYear(Seed(), 2024)
	if len(recs.Contributions) != 0 || len(recs.Expenses) != 0 || len(recs.Budgets) != 0 {
		t.Fatalf("expected empty records for 2024, got %+v", recs)
	}
}

func TestSummarizeEmptyIdentity(t *testing.T) {
	sum := Summarize(nil, nil)
	if sum != (Summary{}) {
		t.Fatalf("expected zero summary, got %+v", sum)
	}
}

func TestSummarizeSeedYear(t *testing.T) {
	s := Seed()
	recs := FilterYear(s, s.SelectedYear)
	sum := Summarize(recs.Contributions, recs.Expenses)
	if sum.TotalCollected != 2000 || sum.TotalExpense != 3000 || sum.Balance != -1000 {
		t.Fatalf("seed 2025 summary wrong: %+v", sum)
	}
}

func TestBalanceInvariant(t *testing.T) {
	cases := []struct {
		contribs []Contribution
		expenses []Expense
	}{
		{nil, nil},
		{[]Contribution{{Amount: 10}}, nil},
		{nil, []Expense{{Amount: 25}}},
		{[]Contribution{{Amount: 5}, {Amount: 7}}, []Expense{{Amount: 100}}},
	}
	for i, tc := range cases {
		sum := Summarize(tc.contribs, tc.expenses)
		if sum.Balance != sum.TotalCollected-sum.TotalExpense {
			t.Fatalf("case %d balance invariant broken: %+v", i, sum)
		}
	}
}

func TestChartSeriesOrder(t *testing.T) {
	series := ChartSeries(Summary{TotalCollected: 2000, TotalExpense: 3000, Balance: -1000})
	if len(series) != 2 {
		t.Fatalf("expected exactly two points, got %d", len(series))
	}
	if series[0].Label != "Collection" || series[0].Value != 2000 {
		t.Fatalf("first point must be Collection: %+v", series[0])
	}
	if series[1].Label != "Expense" || series[1].Value != 3000 {
		t.Fatalf("second point must be Expense: %+v", series[1])
	}
}

func TestTopContributorsStableAndIdempotent(t *testing.T) {
	members := []Member{
		{ID: "a", TotalLifetimeContribution: 100},
		{ID: "b", TotalLifetimeContribution: 300},
		{ID: "c", TotalLifetimeContribution: 100},
		{ID: "d", TotalLifetimeContribution: 200},
	}
	once := TopContributors(members, DefaultTopContributors)
	want := []string{"b", "d", "a", "c"}
	for i, id := range want {
		if once[i].ID != id {
			t.Fatalf("rank %d: want %s, got %s", i, id, once[i].ID)
		}
	}
	// ties a and c must keep input order
	twice := TopContributors(once, DefaultTopContributors)
	for i := range once {
		if twice[i].ID != once[i].ID {
			t.Fatalf("re-ranking changed order at %d", i)
		}
	}
}

func TestTopContributorsTruncates(t *testing.T) {
	members := make([]Member, 8)
	for i := range members {
		members[i] = Member{ID: string(rune('a' + i)), TotalLifetimeContribution: int64(i)}
	}
	top := TopContributors(members, 5)
	if len(top) != 5 {
		t.Fatalf("expected 5 members, got %d", len(top))
	}
	if top[0].TotalLifetimeContribution != 7 {
		t.Fatalf("highest lifetime total must rank first")
	}
	// input must not be reordered
	if members[0].ID != "a" {
		t.Fatalf("TopContributors mutated its input")
	}
}

func TestVarianceSignConvention(t *testing.T) {
	under := VarianceFor(
		Budget{Category: "Decoration", PlannedAmount: 5000, Year: 2025},
		[]Expense{{Category: "Decoration", Amount: 3000, Year: 2025}},
	)
	if under.Actual != 3000 || under.Variance != 2000 {
		t.Fatalf("under budget: %+v", under)
	}

	over := VarianceFor(
		Budget{Category: "Prasad", PlannedAmount: 2000, Year: 2025},
		[]Expense{{Category: "Prasad", Amount: 2500, Year: 2025}},
	)
	if over.Actual != 2500 || over.Variance != -500 {
		t.Fatalf("over budget: %+v", over)
	}
}

func TestVarianceExactCategoryMatch(t *testing.T) {
	line := VarianceFor(
		Budget{Category: "Decoration", PlannedAmount: 1000},
		[]Expense{
			{Category: "Decorations", Amount: 400},
			{Category: "decoration", Amount: 300},
		},
	)
	if line.Actual != 0 || line.Variance != 1000 {
		t.Fatalf("partial or case-folded matches must not count: %+v", line)
	}
}

func TestBudgetReport(t *testing.T) {
	s := Seed()
	recs := FilterYear(s, 2025)
	lines := BudgetReport(recs.Budgets, recs.Expenses)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Category != "Decoration" || lines[0].Variance != 2000 {
		t.Fatalf("decoration line wrong: %+v", lines[0])
	}
	if lines[1].Category != "Prasad" || lines[1].Actual != 0 || lines[1].Variance != 2000 {
		t.Fatalf("prasad line wrong: %+v", lines[1])
	}
}
