package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mortgage-engine/domain"
	"mortgage-engine/logging"
)

func recommendationInput(preference string) domain.TermRecommendationInput {
	return domain.TermRecommendationInput{
		Principal:         200000,
		AnnualRatePercent: 6,
		MinTermYears:      10,
		MaxTermYears:      30,
		MaxMonthlyPayment: 1800,
		Preference:        preference,
	}
}

func newTestTermService() *TermRecommendationService {
	return NewTermRecommendationService(offlineAdvisor(), logging.NewSilent())
}

func TestRecommendTerm_FiltersByMaxPayment(t *testing.T) {
	result, err := newTestTermService().RecommendTerm(context.Background(), recommendationInput(PreferenceBalanced))

	require.NoError(t, err)
	require.NotEmpty(t, result.Recommendations)
	for _, r := range result.Recommendations {
		assert.LessOrEqual(t, r.MonthlyPayment, 1800.0)
		// 200,000 at 6% costs about $1,762.47 a month over 14 years and
		// $1,849.35 over 13, which is over budget.
		assert.GreaterOrEqual(t, r.TermYears, 14)
	}
	assert.Len(t, result.Recommendations, 17)
	assert.Equal(t, result.Recommendations[0].TermYears, result.RecommendedTerm)
}

func TestRecommendTerm_MinimizeInterestPicksShortestAffordableTerm(t *testing.T) {
	result, err := newTestTermService().RecommendTerm(context.Background(), recommendationInput(PreferenceMinimizeInterest))

	require.NoError(t, err)
	assert.Equal(t, 14, result.RecommendedTerm)
	assert.Contains(t, result.Recommendations[0].Reason, "14-year term")
}

func TestRecommendTerm_MinimizePaymentPicksLongestTerm(t *testing.T) {
	result, err := newTestTermService().RecommendTerm(context.Background(), recommendationInput(PreferenceMinimizePayment))

	require.NoError(t, err)
	assert.Equal(t, 30, result.RecommendedTerm)
	for i := 1; i < len(result.Recommendations); i++ {
		assert.GreaterOrEqual(t, result.Recommendations[i-1].Score, result.Recommendations[i].Score)
	}
}

func TestRecommendTerm_NothingAffordable(t *testing.T) {
	input := recommendationInput(PreferenceBalanced)
	input.MaxMonthlyPayment = 100

	_, err := newTestTermService().RecommendTerm(context.Background(), input)

	assert.ErrorIs(t, err, ErrNoAffordableTerm)
}

func TestRecommendTerm_InvalidInput(t *testing.T) {
	cases := map[string]func(*domain.TermRecommendationInput){
		"bad preference":   func(in *domain.TermRecommendationInput) { in.Preference = "cheapest" },
		"min above max":    func(in *domain.TermRecommendationInput) { in.MinTermYears = 20; in.MaxTermYears = 10 },
		"max term too big": func(in *domain.TermRecommendationInput) { in.MaxTermYears = 40 },
		"no budget":        func(in *domain.TermRecommendationInput) { in.MaxMonthlyPayment = 0 },
		"tiny principal":   func(in *domain.TermRecommendationInput) { in.Principal = 10 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			input := recommendationInput(PreferenceBalanced)
			mutate(&input)

			_, err := newTestTermService().RecommendTerm(context.Background(), input)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestNormalizedScore(t *testing.T) {
	assert.Equal(t, 10.0, normalizedScore(5, 5, 15))
	assert.Equal(t, 0.0, normalizedScore(15, 5, 15))
	assert.Equal(t, 5.0, normalizedScore(10, 5, 15))
	assert.Equal(t, 10.0, normalizedScore(7, 7, 7))
}
