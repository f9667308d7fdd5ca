package domain

type TermRecommendationInput struct {
	Principal          float64 `json:"principal"`
	AnnualRatePercent  float64 `json:"annual_rate_percent"`
	MinTermYears       int     `json:"min_term_years"`
	MaxTermYears       int     `json:"max_term_years"`
	MaxMonthlyPayment  float64 `json:"max_monthly_payment"`
	AnniversaryEnabled bool    `json:"anniversary_enabled"`
	Preference         string  `json:"preference"` // "minimize_interest", "minimize_payment", "balanced"
}

type TermRecommendation struct {
	TermYears      int     `json:"term_years"`
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalInterest  float64 `json:"total_interest"`
	TotalMonths    int     `json:"total_months"`
	Score          float64 `json:"score"`
	Reason         string  `json:"reason"`
}

type TermRecommendationResult struct {
	RecommendedTerm int                  `json:"recommended_term"`
	Recommendations []TermRecommendation `json:"recommendations"`
}
