package domain

type PrepaymentComparison struct {
	Terms          MortgageTerms   `json:"terms"`
	MonthlyPayment float64         `json:"monthly_payment"`
	Standard       ScheduleSummary `json:"standard"`
	WithPrepayment ScheduleSummary `json:"with_prepayment"`
	Savings        struct {
		InterestSaved float64 `json:"interest_saved"`
		MonthsSaved   int     `json:"months_saved"`
	} `json:"savings"`
	Explanation string `json:"explanation,omitempty"`
}
