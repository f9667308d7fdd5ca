package service

import (
	"fmt"
	"math"

	"mortgage-engine/domain"
)

func monthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / (MonthsInYear * 100)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validateCoreInputs(principal, annualRatePercent float64, termYears int) error {
	if !isFinite(principal) || principal <= 0 {
		return fmt.Errorf("%w: principal must be positive, got %v", ErrInvalidInput, principal)
	}
	if !isFinite(annualRatePercent) || annualRatePercent < 0 {
		return fmt.Errorf("%w: annual rate must be non-negative, got %v", ErrInvalidInput, annualRatePercent)
	}
	if termYears <= 0 || termYears > MaxSimulatedTermYears {
		return fmt.Errorf("%w: term must be between 1 and %d years, got %d", ErrInvalidInput, MaxSimulatedTermYears, termYears)
	}
	return nil
}

// ComputeMonthlyPayment returns the level payment that retires principal over
// termYears at the given annual rate, compounded monthly.
func ComputeMonthlyPayment(principal, annualRatePercent float64, termYears int) (float64, error) {
	if err := validateCoreInputs(principal, annualRatePercent, termYears); err != nil {
		return 0, err
	}

	termMonths := float64(termYears * MonthsInYear)
	r := monthlyRate(annualRatePercent)

	if r == 0 {
		return principal / termMonths, nil
	}

	payment := principal * r / (1 - math.Pow(1+r, -termMonths))
	if !isFinite(payment) || payment < 0 {
		return 0, fmt.Errorf("%w: payment is not a finite amount", ErrInvalidInput)
	}
	return payment, nil
}

// anniversaryPayment is the lump sum due at a 12-month boundary: a share of
// the original principal, capped, and never more than what is still owed.
func anniversaryPayment(principal, remaining float64) float64 {
	return math.Min(math.Min(AnniversaryPaymentRate*principal, MaxAnniversaryPayment), remaining)
}

func snapToZero(balance float64) float64 {
	if balance < CentThreshold {
		return 0
	}
	return balance
}

// RunSchedule simulates the mortgage month by month until the balance is
// retired. The last regular payment is clamped to the residual balance plus
// interest, so the balance never goes negative.
func RunSchedule(
	principal float64,
	annualRatePercent float64,
	termYears int,
	monthlyPayment float64,
	anniversaryEnabled bool,
) ([]domain.MonthlyEntry, domain.ScheduleSummary, error) {

	if err := validateCoreInputs(principal, annualRatePercent, termYears); err != nil {
		return nil, domain.ScheduleSummary{}, err
	}
	if !isFinite(monthlyPayment) || monthlyPayment < 0 {
		return nil, domain.ScheduleSummary{}, fmt.Errorf("%w: monthly payment must be a non-negative amount, got %v", ErrInvalidInput, monthlyPayment)
	}

	r := monthlyRate(annualRatePercent)
	termMonths := termYears * MonthsInYear
	maxMonths := termMonths * IterationSafetyMultiple

	entries := make([]domain.MonthlyEntry, 0, termMonths)
	remaining := principal

	for month := 1; remaining > 0; month++ {
		if month > maxMonths {
			return nil, domain.ScheduleSummary{}, fmt.Errorf("%w: balance %.2f still outstanding after %d months", ErrNonAmortizingPayment, remaining, maxMonths)
		}

		interest := remaining * r

		payment := monthlyPayment
		if payment >= remaining+interest {
			payment = remaining + interest
		}

		principalPaid := payment - interest
		if principalPaid <= 0 {
			return nil, domain.ScheduleSummary{}, fmt.Errorf("%w: payment %.2f does not cover interest %.2f in month %d", ErrNonAmortizingPayment, payment, interest, month)
		}

		remaining = snapToZero(remaining - principalPaid)

		entry := domain.MonthlyEntry{
			Month:              month,
			Payment:            payment,
			Interest:           interest,
			PrincipalPaid:      principalPaid,
			RemainingPrincipal: remaining,
		}

		if anniversaryEnabled && month%MonthsInYear == 0 && remaining > 0 {
			extra := anniversaryPayment(principal, remaining)
			remaining = snapToZero(remaining - extra)
			entry.AnniversaryPayment = &extra
			entry.RemainingPrincipal = remaining
		}

		entries = append(entries, entry)
	}

	return entries, BuildSummary(entries, principal, termYears), nil
}

// BuildSummary reduces a completed schedule into its totals.
func BuildSummary(entries []domain.MonthlyEntry, principal float64, termYears int) domain.ScheduleSummary {
	var summary domain.ScheduleSummary

	for _, e := range entries {
		summary.TotalInterestPaid += e.Interest
		summary.TotalMonthlyPayments += e.Payment
		if e.AnniversaryPayment != nil {
			summary.TotalAnniversaryPayments += *e.AnniversaryPayment
		}
	}

	summary.TotalMonths = len(entries)
	summary.MonthsSaved = termYears*MonthsInYear - summary.TotalMonths
	summary.TotalCost = summary.TotalMonthlyPayments + summary.TotalAnniversaryPayments

	return summary
}
