package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"mortgage-engine/domain"
	"mortgage-engine/repository"
)

// roundTo2Decimals rounds a float64 to 2 decimals
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

type MortgageService struct {
	repo     repository.ScheduleRepository
	cache    repository.CacheRepository
	cacheTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewMortgageService creates a new MortgageService with the given repository and cache.
func NewMortgageService(
	repo repository.ScheduleRepository,
	cache repository.CacheRepository,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) *MortgageService {
	return &MortgageService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.With().Str("service", "mortgage").Logger(),
		now:      time.Now,
	}
}

// ValidateTerms enforces the accepted input ranges.
func ValidateTerms(terms domain.MortgageTerms) error {
	if math.IsNaN(terms.Principal) || terms.Principal < MinPrincipal || terms.Principal > MaxPrincipal {
		return fmt.Errorf("%w: principal must be between $%.0f and $%.0f", ErrInvalidInput, MinPrincipal, MaxPrincipal)
	}
	if math.IsNaN(terms.AnnualRatePercent) || terms.AnnualRatePercent < MinAnnualRate || terms.AnnualRatePercent > MaxAnnualRate {
		return fmt.Errorf("%w: annual interest rate must be between %.1f%% and %.1f%%", ErrInvalidInput, MinAnnualRate, MaxAnnualRate)
	}
	if terms.TermYears < MinTermYears || terms.TermYears > MaxTermYears {
		return fmt.Errorf("%w: term must be between %d and %d years", ErrInvalidInput, MinTermYears, MaxTermYears)
	}
	return nil
}

// Simulate computes the payment and the full schedule without touching the
// cache or the repository.
func Simulate(terms domain.MortgageTerms) (domain.Schedule, error) {
	payment, err := ComputeMonthlyPayment(terms.Principal, terms.AnnualRatePercent, terms.TermYears)
	if err != nil {
		return domain.Schedule{}, err
	}

	entries, summary, err := RunSchedule(
		terms.Principal,
		terms.AnnualRatePercent,
		terms.TermYears,
		payment,
		terms.AnniversaryEnabled,
	)
	if err != nil {
		return domain.Schedule{}, err
	}

	return domain.Schedule{
		Terms:          terms,
		MonthlyPayment: payment,
		Entries:        entries,
		Summary:        summary,
	}, nil
}

func scheduleCacheKey(terms domain.MortgageTerms) string {
	raw := strings.Join([]string{
		strconv.FormatFloat(terms.Principal, 'g', -1, 64),
		strconv.FormatFloat(terms.AnnualRatePercent, 'g', -1, 64),
		strconv.Itoa(terms.TermYears),
		strconv.FormatBool(terms.AnniversaryEnabled),
	}, "|")
	return fmt.Sprintf("mortgage:schedule:%016x", xxhash.Sum64String(raw))
}

// Calculate validates the terms and returns the schedule, serving repeated
// requests from the cache. Cache and repository failures are logged only.
func (s *MortgageService) Calculate(
	ctx context.Context,
	terms domain.MortgageTerms,
) (domain.Schedule, error) {

	if err := ValidateTerms(terms); err != nil {
		return domain.Schedule{}, err
	}

	key := scheduleCacheKey(terms)
	if cached, ok := s.cache.Get(ctx, key); ok {
		var schedule domain.Schedule
		err := json.Unmarshal([]byte(cached), &schedule)
		if err == nil {
			s.logger.Debug().Str("key", key).Msg("schedule cache hit")
			return schedule, nil
		}
		s.logger.Warn().Err(err).Str("key", key).Msg("discarding unreadable cache entry")
	}

	schedule, err := Simulate(terms)
	if err != nil {
		return domain.Schedule{}, err
	}

	record := repository.CalculationRecord{
		ID:             uuid.New(),
		Terms:          terms,
		MonthlyPayment: schedule.MonthlyPayment,
		Summary:        schedule.Summary,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.repo.Save(ctx, record); err != nil {
		s.logger.Warn().Err(err).Msg("failed to save mortgage calculation")
	} else {
		schedule.CalculationID = record.ID.String()
	}

	if payload, err := json.Marshal(schedule); err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode schedule for cache")
	} else if err := s.cache.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to cache schedule")
	}

	s.logger.Info().
		Float64("principal", terms.Principal).
		Float64("rate", terms.AnnualRatePercent).
		Int("term_years", terms.TermYears).
		Bool("anniversary", terms.AnniversaryEnabled).
		Int("months", schedule.Summary.TotalMonths).
		Msg("schedule calculated")

	return schedule, nil
}

// FindCalculation returns a previously recorded calculation.
func (s *MortgageService) FindCalculation(ctx context.Context, id string) (repository.CalculationRecord, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return repository.CalculationRecord{}, fmt.Errorf("%w: calculation id %q", ErrInvalidInput, id)
	}
	return s.repo.FindByID(ctx, parsed)
}
