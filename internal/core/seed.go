package core

// Seed returns the initial AppState used when no persisted snapshot exists.
func Seed() AppState {
	return AppState{
		Years:        []int{2023, 2024, 2025, 2026},
		SelectedYear: 2025,
		Members: []Member{
			{
				ID:                        "m1",
				FullName:                  "Rajendranath Das",
				PhoneNumber:               "9876543210",
				Address:                   "Kolkata, WB",
				Role:                      "Secretary",
				WifeName:                  "Lakshmi Das",
				DPUrl:                     "https://picsum.photos/seed/m1/200",
				JoinDate:                  "2023-01-15",
				CreditScore:               95,
				TotalLifetimeContribution: 5000,
				CreatedDate:               "2023-01-15",
			},
			{
				ID:                        "m2",
				FullName:                  "Girish Chandra Ranu",
				PhoneNumber:               "9876543211",
				Address:                   "Kolkata, WB",
				Role:                      "President",
				WifeName:                  "Saraswati Ranu",
				DPUrl:                     "https://picsum.photos/seed/m2/200",
				JoinDate:                  "2023-01-15",
				CreditScore:               98,
				TotalLifetimeContribution: 7000,
				CreatedDate:               "2023-01-15",
			},
		},
		Contributions: []Contribution{
			{ID: "c1", MemberID: "m1", DonorName: "Rajendranath Das", Amount: 1500, Date: "2025-02-01", Year: 2025, PaymentMode: QR, Note: "Annual Chanda"},
			{ID: "c2", DonorName: "Local Shop Owner", Amount: 500, Date: "2025-02-02", Year: 2025, PaymentMode: Cash, Note: "External Donation"},
		},
		Expenses: []Expense{
			{ID: "e1", Category: "Decoration", Description: "Pandals and Flowers", Amount: 3000, Date: "2025-02-05", Year: 2025, AddedBy: "Admin"},
		},
		Budgets: []Budget{
			{ID: "b1", Category: "Decoration", PlannedAmount: 5000, Year: 2025},
			{ID: "b2", Category: "Prasad", PlannedAmount: 2000, Year: 2025},
		},
		Committee: []CommitteeMember{
			{ID: "com1", Name: "Rajendranath Das", Role: "Secretary"},
			{ID: "com2", Name: "Girish Chandra Ranu", Role: "President"},
			{ID: "com3", Name: "Saikat Saha", Role: "Vice Secretary"},
			{ID: "com4", Name: "Pinku Singha", Role: "Vice President"},
			{ID: "com5", Name: "Sisir Hore", Role: "Cashier"},
		},
		Settings: ClubSettings{
			Name:            "Annapurna Boys Saraswati Puja Committee",
			EstablishedYear: 2023,
			Contact: Contact{
				Phone:   "+91 98765 43210",
				Email:   "committee@annapurnaboys.org",
				Address: "Near Main Market, Ward 12, West Bengal",
			},
			BankDetails: BankDetails{
				AccountHolder: "Annapurna Boys Committee",
				AccountNumber: "123456789012",
				IFSC:          "SBIN0001234",
				Branch:        "Main Branch",
			},
			Rules: []string{
				"All members must contribute by the first week of February.",
				"Expenses above 1000 INR require Secretary approval.",
				"Committee meetings are held every Sunday evening.",
				"Transparency is mandatory for all financial entries.",
			},
		},
	}
}
