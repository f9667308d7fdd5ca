package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"mortgage-engine/domain"
	"mortgage-engine/format"
)

// AdvisorService writes plain-language explanations of calculation results.
// With no API key it falls back to fixed templates.
type AdvisorService struct {
	apiKey     string
	apiURL     string
	model      string
	enabled    bool
	httpClient *http.Client
	logger     zerolog.Logger
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const advisorSystemPrompt = "You are a mortgage advisor. You explain amortization schedules, " +
	"prepayment savings and term choices clearly and accurately, using the exact figures you are given."

func NewAdvisorService(apiKey, apiURL, model string, timeout time.Duration, logger zerolog.Logger) *AdvisorService {
	return &AdvisorService{
		apiKey:  apiKey,
		apiURL:  apiURL,
		model:   model,
		enabled: apiKey != "",
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With().Str("service", "advisor").Logger(),
	}
}

// ExplainComparison describes what anniversary prepayments save.
func (s *AdvisorService) ExplainComparison(ctx context.Context, c domain.PrepaymentComparison) string {
	if !s.enabled {
		return fallbackComparisonExplanation(c)
	}

	prompt := fmt.Sprintf(`Explain the effect of annual anniversary prepayments on this mortgage in 3-4 sentences.

LOAN:
- Principal: %s
- Annual interest rate: %.2f%%
- Term: %d years
- Monthly payment: %s

WITHOUT PREPAYMENTS:
- Paid off in %d months, total interest %s

WITH PREPAYMENTS (%.0f%% of principal each year, at most %s):
- Paid off in %d months, total interest %s, prepayments %s

Interest saved: %s. Months saved: %d.`,
		format.Currency(c.Terms.Principal), c.Terms.AnnualRatePercent, c.Terms.TermYears,
		format.Currency(c.MonthlyPayment),
		c.Standard.TotalMonths, format.Currency(c.Standard.TotalInterestPaid),
		AnniversaryPaymentRate*100, format.Currency(MaxAnniversaryPayment),
		c.WithPrepayment.TotalMonths, format.Currency(c.WithPrepayment.TotalInterestPaid),
		format.Currency(c.WithPrepayment.TotalAnniversaryPayments),
		format.Currency(c.Savings.InterestSaved), c.Savings.MonthsSaved)

	explanation, err := s.callLLM(ctx, prompt)
	if err != nil {
		s.logger.Warn().Err(err).Msg("advisor call failed for prepayment comparison")
		return fallbackComparisonExplanation(c)
	}
	return explanation
}

// ExplainTermRecommendation describes why the top-ranked term was chosen.
func (s *AdvisorService) ExplainTermRecommendation(
	ctx context.Context,
	input domain.TermRecommendationInput,
	top domain.TermRecommendation,
	alternatives []domain.TermRecommendation,
) string {
	if !s.enabled {
		return fallbackTermExplanation(top, input.Preference)
	}

	var alt strings.Builder
	for _, a := range alternatives {
		fmt.Fprintf(&alt, "- %d years: payment %s, total interest %s\n",
			a.TermYears, format.Currency(a.MonthlyPayment), format.Currency(a.TotalInterest))
	}

	prompt := fmt.Sprintf(`Explain in 3-4 sentences why a %d-year term is the best fit for this borrower.

LOAN:
- Principal: %s
- Annual interest rate: %.2f%%
- Maximum affordable monthly payment: %s
- Preference: %s

RECOMMENDED: %d years, monthly payment %s, total interest %s

ALTERNATIVES:
%s`,
		top.TermYears,
		format.Currency(input.Principal), input.AnnualRatePercent,
		format.Currency(input.MaxMonthlyPayment), preferenceDescriptions[input.Preference],
		top.TermYears, format.Currency(top.MonthlyPayment), format.Currency(top.TotalInterest),
		alt.String())

	explanation, err := s.callLLM(ctx, prompt)
	if err != nil {
		s.logger.Warn().Err(err).Msg("advisor call failed for term recommendation")
		return fallbackTermExplanation(top, input.Preference)
	}
	return explanation
}

func (s *AdvisorService) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: advisorSystemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens: 300,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("advisor API error (status %d): %s", resp.StatusCode, string(body))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("advisor API returned no choices")
	}

	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

func fallbackComparisonExplanation(c domain.PrepaymentComparison) string {
	if c.Savings.MonthsSaved <= 0 {
		return fmt.Sprintf("Anniversary prepayments do not shorten this %d-year mortgage; the regular payments retire the balance before a prepayment falls due.",
			c.Terms.TermYears)
	}
	return fmt.Sprintf("Paying %s each year on the loan anniversary retires the mortgage in %d months instead of %d, %d months (%s) early, and saves %s in interest. Total prepayments come to %s.",
		format.Currency(math.Min(AnniversaryPaymentRate*c.Terms.Principal, MaxAnniversaryPayment)),
		c.WithPrepayment.TotalMonths, c.Standard.TotalMonths,
		c.Savings.MonthsSaved, format.Years(c.Savings.MonthsSaved),
		format.Currency(c.Savings.InterestSaved),
		format.Currency(c.WithPrepayment.TotalAnniversaryPayments))
}

func fallbackTermExplanation(top domain.TermRecommendation, preference string) string {
	switch preference {
	case PreferenceMinimizeInterest:
		return fmt.Sprintf("A %d-year term keeps total interest to %s while the monthly payment of %s stays within your budget.",
			top.TermYears, format.Currency(top.TotalInterest), format.Currency(top.MonthlyPayment))
	case PreferenceMinimizePayment:
		return fmt.Sprintf("A %d-year term gives the lowest monthly payment, %s, leaving the most room in your monthly budget.",
			top.TermYears, format.Currency(top.MonthlyPayment))
	default:
		return fmt.Sprintf("A %d-year term balances a monthly payment of %s against total interest of %s.",
			top.TermYears, format.Currency(top.MonthlyPayment), format.Currency(top.TotalInterest))
	}
}
