package service

import (
	"context"
	"math"

	"mortgage-engine/domain"
)

type ComparisonService struct {
	advisor *AdvisorService
}

func NewComparisonService(advisor *AdvisorService) *ComparisonService {
	return &ComparisonService{advisor: advisor}
}

// Compare runs the same mortgage with and without anniversary prepayments
// and reports what the prepayments save. The AnniversaryEnabled flag of
// terms is ignored.
func (s *ComparisonService) Compare(
	ctx context.Context,
	terms domain.MortgageTerms,
) (domain.PrepaymentComparison, error) {

	if err := ValidateTerms(terms); err != nil {
		return domain.PrepaymentComparison{}, err
	}

	standardTerms := terms
	standardTerms.AnniversaryEnabled = false
	standard, err := Simulate(standardTerms)
	if err != nil {
		return domain.PrepaymentComparison{}, err
	}

	prepaidTerms := terms
	prepaidTerms.AnniversaryEnabled = true
	prepaid, err := Simulate(prepaidTerms)
	if err != nil {
		return domain.PrepaymentComparison{}, err
	}

	result := domain.PrepaymentComparison{
		Terms:          prepaidTerms,
		MonthlyPayment: standard.MonthlyPayment,
		Standard:       standard.Summary,
		WithPrepayment: prepaid.Summary,
	}
	result.Savings.InterestSaved = roundTo2Decimals(
		math.Max(0, standard.Summary.TotalInterestPaid-prepaid.Summary.TotalInterestPaid),
	)
	result.Savings.MonthsSaved = standard.Summary.TotalMonths - prepaid.Summary.TotalMonths

	result.Explanation = s.advisor.ExplainComparison(ctx, result)

	return result, nil
}
