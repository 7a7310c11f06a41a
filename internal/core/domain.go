package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Cash PaymentMode = "Cash"
	Bank PaymentMode = "Bank"
	QR   PaymentMode = "QR"
)

// StorageKey is the well-known key the persisted snapshot lives under.
const StorageKey = "ab_pujacommittee_state"

type (
	// PaymentMode is how a contribution was received.
	PaymentMode string

	// Member is an enrolled committee member. TotalLifetimeContribution is
	// an independent running total, not derived from Contribution records.
	Member struct {
		ID                        string `json:"id"`
		FullName                  string `json:"fullName"`
		PhoneNumber               string `json:"phoneNumber"`
		Address                   string `json:"address"`
		Role                      string `json:"role"`
		WifeName                  string `json:"wifeName"`
		DPUrl                     string `json:"dpUrl,omitempty"`
		WifePhotoUrl              string `json:"wifePhotoUrl,omitempty"`
		JoinDate                  string `json:"joinDate"`
		CreditScore               int    `json:"creditScore"`
		TotalLifetimeContribution int64  `json:"totalLifetimeContribution"`
		CreatedDate               string `json:"createdDate"`
	}

	// Contribution is a single chanda entry. An empty MemberID marks an
	// external donation from a non-member.
	Contribution struct {
		ID          string      `json:"id"`
		MemberID    string      `json:"memberId,omitempty"`
		DonorName   string      `json:"donorName"`
		Amount      int64       `json:"amount"`
		Date        string      `json:"date"`
		Year        int         `json:"year"`
		PaymentMode PaymentMode `json:"paymentMode"`
		Note        string      `json:"note,omitempty"`
	}

	Expense struct {
		ID          string `json:"id"`
		Category    string `json:"category"`
		Description string `json:"description"`
		Amount      int64  `json:"amount"`
		Date        string `json:"date"`
		Year        int    `json:"year"`
		AddedBy     string `json:"addedBy"`
	}

	// Budget plans spending for one category within one session year.
	// Categories are matched against Expense.Category by exact string.
	Budget struct {
		ID            string `json:"id"`
		Category      string `json:"category"`
		PlannedAmount int64  `json:"plannedAmount"`
		Year          int    `json:"year"`
	}

	// CommitteeMember is a roster entry. It carries no reference to the
	// Member entity even when names coincide.
	CommitteeMember struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Role     string `json:"role"`
		PhotoUrl string `json:"photoUrl,omitempty"`
	}

	Contact struct {
		Phone   string `json:"phone"`
		Email   string `json:"email"`
		Address string `json:"address"`
	}

	BankDetails struct {
		AccountHolder string `json:"accountHolder"`
		AccountNumber string `json:"accountNumber"`
		IFSC          string `json:"ifsc"`
		Branch        string `json:"branch"`
		QRUrl         string `json:"qrUrl,omitempty"`
	}

	// ClubSettings is the singleton configuration of the committee.
	ClubSettings struct {
		Name            string      `json:"name"`
		LogoUrl         string      `json:"logoUrl,omitempty"`
		EstablishedYear int         `json:"establishedYear"`
		Contact         Contact     `json:"contact"`
		BankDetails     BankDetails `json:"bankDetails"`
		Rules           []string    `json:"rules"`
	}

	// AppState is the whole application state. Years stays sorted ascending
	// and SelectedYear is always one of Years. Collections are independent;
	// no referential integrity is enforced anywhere in the model.
	AppState struct {
		Years         []int             `json:"years"`
		SelectedYear  int               `json:"selectedYear"`
		Members       []Member          `json:"members"`
		Contributions []Contribution    `json:"contributions"`
		Expenses      []Expense         `json:"expenses"`
		Budgets       []Budget          `json:"budgets"`
		Committee     []CommitteeMember `json:"committee"`
		Settings      ClubSettings      `json:"settings"`
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidYear     = errors.New("invalid year")
	ErrEmptyDonorName  = errors.New("empty donor name")
	ErrEmptyCategory   = errors.New("empty category")
	ErrInvalidPayMode  = errors.New("invalid payment mode")
	ErrEmptyName       = errors.New("empty name")
	ErrEmptyDescriptor = errors.New("empty description")
)

// IsValid reports whether the payment mode is one of the fixed literals.
func (m PaymentMode) IsValid() bool {
	switch m {
	case Cash, Bank, QR:
		return true
	default:
		return false
	}
}

// ValidDate reports whether s is a calendar date in YYYY-MM-DD form.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ValidYear reports whether y looks like a 4-digit session year.
func ValidYear(y int) bool {
	return y >= 1000 && y <= 9999
}

// IsExternal reports whether the contribution came from a non-member donor.
func (c Contribution) IsExternal() bool {
	return c.MemberID == ""
}

func (c Contribution) Validate() error {
	if strings.TrimSpace(c.DonorName) == "" {
		return ErrEmptyDonorName
	}
	if c.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !ValidDate(c.Date) {
		return ErrInvalidDate
	}
	if !ValidYear(c.Year) {
		return ErrInvalidYear
	}
	if !c.PaymentMode.IsValid() {
		return ErrInvalidPayMode
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescriptor
	}
	if e.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !ValidDate(e.Date) {
		return ErrInvalidDate
	}
	if !ValidYear(e.Year) {
		return ErrInvalidYear
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if b.PlannedAmount < 0 {
		return ErrInvalidAmount
	}
	if !ValidYear(b.Year) {
		return ErrInvalidYear
	}
	return nil
}

func (cm CommitteeMember) Validate() error {
	if strings.TrimSpace(cm.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// Clone returns a deep copy so the state owner can hand out snapshots
// without aliasing its own slices.
func (s AppState) Clone() AppState {
	out := s
	out.Years = append([]int(nil), s.Years...)
	out.Members = append([]Member(nil), s.Members...)
	out.Contributions = append([]Contribution(nil), s.Contributions...)
	out.Expenses = append([]Expense(nil), s.Expenses...)
	out.Budgets = append([]Budget(nil), s.Budgets...)
	out.Committee = append([]CommitteeMember(nil), s.Committee...)
	out.Settings.Rules = append([]string(nil), s.Settings.Rules...)
	return out
}

// HasYear reports whether y is one of the available session years.
func (s AppState) HasYear(y int) bool {
	for _, have := range s.Years {
		if have == y {
			return true
		}
	}
	return false
}

// MemberByID resolves the soft Contribution.MemberID relationship. A miss is
// a valid outcome, not an error.
func (s AppState) MemberByID(id string) (Member, bool) {
	for _, m := range s.Members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}
