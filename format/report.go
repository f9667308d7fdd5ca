package format

import (
	"fmt"
	"io"
	"text/tabwriter"

	"mortgage-engine/domain"
)

// WriteSchedule prints the monthly payment, the month/principal table with
// anniversary payment lines, and the summary.
func WriteSchedule(w io.Writer, schedule domain.Schedule) error {
	if _, err := fmt.Fprintf(w, "Monthly payment is: %s\n\n", Currency(schedule.MonthlyPayment)); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "Month\tPrincipal")
	for _, e := range schedule.Entries {
		if e.AnniversaryPayment == nil {
			fmt.Fprintf(tw, "%d\t%s\n", e.Month, Currency(e.RemainingPrincipal))
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\n", e.Month, Currency(e.RemainingPrincipal+*e.AnniversaryPayment))
		fmt.Fprintf(tw, "\tAnniversary payment made: %s. Remaining principal is: %s\n",
			Currency(*e.AnniversaryPayment), Currency(e.RemainingPrincipal))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	return WriteSummary(w, schedule.Terms, schedule.Summary)
}

// WriteSummary prints the totals. Anniversary lines only appear when the
// prepayment option was chosen.
func WriteSummary(w io.Writer, terms domain.MortgageTerms, summary domain.ScheduleSummary) error {
	lines := []string{
		"\n--- Mortgage Summary ---",
		fmt.Sprintf("Total Monthly Payments: %s", Currency(summary.TotalMonthlyPayments)),
		fmt.Sprintf("Total Interest Paid: %s", Currency(summary.TotalInterestPaid)),
	}
	if terms.AnniversaryEnabled {
		lines = append(lines,
			fmt.Sprintf("Total Anniversary Payments: %s", Currency(summary.TotalAnniversaryPayments)),
			fmt.Sprintf("Paid mortgage off %d months early.", summary.MonthsSaved),
		)
	}
	lines = append(lines, fmt.Sprintf("Total Cost of Mortgage: %s", Currency(summary.TotalCost)))

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
