package domain

// MortgageTerms are the inputs of a fixed-rate mortgage schedule.
type MortgageTerms struct {
	Principal          float64 `json:"principal"`
	AnnualRatePercent  float64 `json:"annual_rate_percent"`
	TermYears          int     `json:"term_years"`
	AnniversaryEnabled bool    `json:"anniversary_enabled"`
}

// MonthlyEntry is one simulated month. AnniversaryPayment is nil unless a
// lump-sum prepayment was made at the end of the month.
type MonthlyEntry struct {
	Month              int      `json:"month"`
	Payment            float64  `json:"payment"`
	Interest           float64  `json:"interest"`
	PrincipalPaid      float64  `json:"principal_paid"`
	RemainingPrincipal float64  `json:"remaining_principal"`
	AnniversaryPayment *float64 `json:"anniversary_payment,omitempty"`
}

// ScheduleSummary totals a schedule. TotalCost is TotalMonthlyPayments +
// TotalAnniversaryPayments, i.e. principal plus interest.
type ScheduleSummary struct {
	TotalMonths              int     `json:"total_months"`
	TotalInterestPaid        float64 `json:"total_interest_paid"`
	TotalMonthlyPayments     float64 `json:"total_monthly_payments"`
	TotalAnniversaryPayments float64 `json:"total_anniversary_payments"`
	MonthsSaved              int     `json:"months_saved"`
	TotalCost                float64 `json:"total_cost"`
}

// Schedule is a complete simulation. CalculationID is set once the schedule
// has been recorded by the mortgage service.
type Schedule struct {
	CalculationID  string          `json:"calculation_id,omitempty"`
	Terms          MortgageTerms   `json:"terms"`
	MonthlyPayment float64         `json:"monthly_payment"`
	Entries        []MonthlyEntry  `json:"entries"`
	Summary        ScheduleSummary `json:"summary"`
}
