// Command mortgage prints an amortization schedule for a fixed-rate mortgage.
// Without flags it prompts for each input, re-asking until the value is in range.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"mortgage-engine/domain"
	"mortgage-engine/format"
	"mortgage-engine/logging"
	"mortgage-engine/service"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mortgage", flag.ContinueOnError)
	fs.SetOutput(stderr)

	principal := fs.Float64("principal", 0, "principal amount in $ (1,000-500,000)")
	rate := fs.Float64("rate", 0, "annual interest rate as % (1-10)")
	term := fs.Int("term", 0, "payment term in years (1-30)")
	anniversary := fs.Bool("anniversary", false, "make anniversary payments")
	summaryOnly := fs.Bool("summary", false, "print only the summary")
	logLevel := fs.String("log-level", "warn", "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	logger := logging.NewWithOutput(*logLevel, stderr)

	termFlags := 0
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "principal", "rate", "term", "anniversary":
			termFlags++
		}
	})

	var terms domain.MortgageTerms
	if termFlags == 0 {
		var err error
		terms, err = promptTerms(bufio.NewReader(stdin), stdout)
		if err != nil {
			logger.Error().Err(err).Msg("reading input")
			return 1
		}
	} else {
		terms = domain.MortgageTerms{
			Principal:          *principal,
			AnnualRatePercent:  *rate,
			TermYears:          *term,
			AnniversaryEnabled: *anniversary,
		}
		if err := service.ValidateTerms(terms); err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
	}

	schedule, err := service.Simulate(terms)
	if err != nil {
		logger.Error().Err(err).Msg("calculating schedule")
		return 1
	}
	logger.Debug().Int("months", schedule.Summary.TotalMonths).Msg("schedule calculated")

	if *summaryOnly {
		fmt.Fprintf(stdout, "Monthly payment is: %s\n", format.Currency(schedule.MonthlyPayment))
		err = format.WriteSummary(stdout, schedule.Terms, schedule.Summary)
	} else {
		err = format.WriteSchedule(stdout, schedule)
	}
	if err != nil {
		logger.Error().Err(err).Msg("writing output")
		return 1
	}
	return 0
}

func promptTerms(in *bufio.Reader, out io.Writer) (domain.MortgageTerms, error) {
	var terms domain.MortgageTerms
	var err error

	terms.Principal, err = promptFloat(in, out,
		fmt.Sprintf("Enter principal amount in $ (%s-%s): ", format.Currency(service.MinPrincipal), format.Currency(service.MaxPrincipal)),
		service.MinPrincipal, service.MaxPrincipal)
	if err != nil {
		return terms, err
	}

	terms.TermYears, err = promptInt(in, out,
		fmt.Sprintf("Enter payment term in years (%d-%d): ", service.MinTermYears, service.MaxTermYears),
		service.MinTermYears, service.MaxTermYears)
	if err != nil {
		return terms, err
	}

	terms.AnnualRatePercent, err = promptFloat(in, out,
		fmt.Sprintf("Enter annual interest rate as %% (%.1f-%.1f): ", service.MinAnnualRate, service.MaxAnnualRate),
		service.MinAnnualRate, service.MaxAnnualRate)
	if err != nil {
		return terms, err
	}

	for {
		answer, err := readLine(in, out, "Enter 'y' to make anniversary payments, 'n' otherwise: ")
		if err != nil {
			return terms, err
		}
		switch strings.ToLower(answer) {
		case "y":
			terms.AnniversaryEnabled = true
			return terms, nil
		case "n":
			return terms, nil
		}
		fmt.Fprintln(out, "Invalid input. Please enter 'y' or 'n'.")
	}
}

// promptFloat re-asks until the answer parses and lies in [lo, hi].
func promptFloat(in *bufio.Reader, out io.Writer, prompt string, lo, hi float64) (float64, error) {
	for {
		answer, err := readLine(in, out, prompt)
		if err != nil {
			return 0, err
		}

		v, err := strconv.ParseFloat(strings.ReplaceAll(answer, ",", ""), 64)
		if err != nil {
			fmt.Fprintln(out, "Invalid input. Please enter a number.")
			continue
		}
		if v < lo || v > hi {
			fmt.Fprintf(out, "Please enter a value between %v and %v.\n", lo, hi)
			continue
		}
		return v, nil
	}
}

func promptInt(in *bufio.Reader, out io.Writer, prompt string, lo, hi int) (int, error) {
	for {
		answer, err := readLine(in, out, prompt)
		if err != nil {
			return 0, err
		}

		v, err := strconv.Atoi(answer)
		if err != nil {
			fmt.Fprintln(out, "Invalid input. Please enter a whole number.")
			continue
		}
		if v < lo || v > hi {
			fmt.Fprintf(out, "Please enter a value between %d and %d.\n", lo, hi)
			continue
		}
		return v, nil
	}
}

func readLine(in *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("no more input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
