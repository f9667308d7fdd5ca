package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"mortgage-engine/domain"
	"mortgage-engine/format"
)

const (
	PreferenceMinimizeInterest = "minimize_interest"
	PreferenceMinimizePayment  = "minimize_payment"
	PreferenceBalanced         = "balanced"

	maxAlternatives = 3
)

var preferenceDescriptions = map[string]string{
	PreferenceMinimizeInterest: "minimize total interest",
	PreferenceMinimizePayment:  "minimize the monthly payment",
	PreferenceBalanced:         "balance monthly payment against total cost",
}

var ErrNoAffordableTerm = errors.New("no term fits the maximum monthly payment")

type TermRecommendationService struct {
	advisor *AdvisorService
	logger  zerolog.Logger
}

func NewTermRecommendationService(advisor *AdvisorService, logger zerolog.Logger) *TermRecommendationService {
	return &TermRecommendationService{
		advisor: advisor,
		logger:  logger.With().Str("service", "term_recommendation").Logger(),
	}
}

// RecommendTerm evaluates every whole-year term in the requested range and
// ranks the affordable ones by the caller's preference.
func (s *TermRecommendationService) RecommendTerm(
	ctx context.Context,
	input domain.TermRecommendationInput,
) (domain.TermRecommendationResult, error) {

	if err := validateRecommendationInput(input); err != nil {
		return domain.TermRecommendationResult{}, err
	}

	type candidate struct {
		years    int
		schedule domain.Schedule
	}
	candidates := []candidate{}

	for years := input.MinTermYears; years <= input.MaxTermYears; years++ {
		schedule, err := Simulate(domain.MortgageTerms{
			Principal:          input.Principal,
			AnnualRatePercent:  input.AnnualRatePercent,
			TermYears:          years,
			AnniversaryEnabled: input.AnniversaryEnabled,
		})
		if err != nil {
			s.logger.Warn().Err(err).Int("term_years", years).Msg("skipping term")
			continue
		}

		if schedule.MonthlyPayment > input.MaxMonthlyPayment {
			continue
		}
		candidates = append(candidates, candidate{years: years, schedule: schedule})
	}

	if len(candidates) == 0 {
		return domain.TermRecommendationResult{}, fmt.Errorf("%w of %s", ErrNoAffordableTerm, format.Currency(input.MaxMonthlyPayment))
	}

	minInterest, maxInterest := math.Inf(1), math.Inf(-1)
	minPayment, maxPayment := math.Inf(1), math.Inf(-1)
	for _, c := range candidates {
		minInterest = math.Min(minInterest, c.schedule.Summary.TotalInterestPaid)
		maxInterest = math.Max(maxInterest, c.schedule.Summary.TotalInterestPaid)
		minPayment = math.Min(minPayment, c.schedule.MonthlyPayment)
		maxPayment = math.Max(maxPayment, c.schedule.MonthlyPayment)
	}

	recommendations := make([]domain.TermRecommendation, 0, len(candidates))
	for _, c := range candidates {
		interestScore := normalizedScore(c.schedule.Summary.TotalInterestPaid, minInterest, maxInterest)
		paymentScore := normalizedScore(c.schedule.MonthlyPayment, minPayment, maxPayment)

		recommendations = append(recommendations, domain.TermRecommendation{
			TermYears:      c.years,
			MonthlyPayment: roundTo2Decimals(c.schedule.MonthlyPayment),
			TotalInterest:  roundTo2Decimals(c.schedule.Summary.TotalInterestPaid),
			TotalMonths:    c.schedule.Summary.TotalMonths,
			Score:          weightedScore(input.Preference, interestScore, paymentScore),
			Reason:         generateReason(input.Preference),
		})
	}

	// Ties go to the shorter term.
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	end := min(len(recommendations), maxAlternatives+1)
	recommendations[0].Reason = s.advisor.ExplainTermRecommendation(
		ctx, input, recommendations[0], recommendations[1:end],
	)

	return domain.TermRecommendationResult{
		RecommendedTerm: recommendations[0].TermYears,
		Recommendations: recommendations,
	}, nil
}

func validateRecommendationInput(input domain.TermRecommendationInput) error {
	if err := ValidateTerms(domain.MortgageTerms{
		Principal:         input.Principal,
		AnnualRatePercent: input.AnnualRatePercent,
		TermYears:         MinTermYears,
	}); err != nil {
		return err
	}
	if input.MinTermYears < MinTermYears || input.MaxTermYears > MaxTermYears {
		return fmt.Errorf("%w: terms must be between %d and %d years", ErrInvalidInput, MinTermYears, MaxTermYears)
	}
	if input.MinTermYears > input.MaxTermYears {
		return fmt.Errorf("%w: minimum term is greater than maximum term", ErrInvalidInput)
	}
	if math.IsNaN(input.MaxMonthlyPayment) || input.MaxMonthlyPayment <= 0 {
		return fmt.Errorf("%w: maximum monthly payment must be positive", ErrInvalidInput)
	}
	if _, ok := preferenceDescriptions[input.Preference]; !ok {
		return fmt.Errorf("%w: unknown preference %q", ErrInvalidInput, input.Preference)
	}
	return nil
}

// normalizedScore maps value onto 0-10 where lo scores 10 and hi scores 0.
func normalizedScore(value, lo, hi float64) float64 {
	if hi <= lo {
		return 10
	}
	return 10 * (1 - (value-lo)/(hi-lo))
}

func weightedScore(preference string, interestScore, paymentScore float64) float64 {
	var score float64

	switch preference {
	case PreferenceMinimizeInterest:
		score = 0.8*interestScore + 0.2*paymentScore
	case PreferenceMinimizePayment:
		score = 0.2*interestScore + 0.8*paymentScore
	case PreferenceBalanced:
		score = 0.5*interestScore + 0.5*paymentScore
	}

	return roundTo2Decimals(score)
}

func generateReason(preference string) string {
	switch preference {
	case PreferenceMinimizeInterest:
		return "Term optimized to minimize total interest"
	case PreferenceMinimizePayment:
		return "Term optimized to minimize the monthly payment"
	case PreferenceBalanced:
		return "Best balance between monthly payment and total cost"
	}
	return "Recommendation based on the supplied parameters"
}
