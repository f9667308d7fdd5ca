package main

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptTerms_RepromptsOutOfRange(t *testing.T) {
	input := strings.Join([]string{
		"500",     // principal too small
		"abc",     // not a number
		"100,000", // accepted
		"31",      // term too long
		"2.5",     // not whole
		"30",
		"11", // rate too high
		"5",
		"maybe",
		"Y",
	}, "\n") + "\n"
	var out bytes.Buffer

	terms, err := promptTerms(bufio.NewReader(strings.NewReader(input)), &out)

	require.NoError(t, err)
	assert.Equal(t, 100000.0, terms.Principal)
	assert.Equal(t, 30, terms.TermYears)
	assert.Equal(t, 5.0, terms.AnnualRatePercent)
	assert.True(t, terms.AnniversaryEnabled)

	text := out.String()
	assert.Contains(t, text, "Enter principal amount in $ ($1,000.00-$500,000.00): ")
	assert.Contains(t, text, "Please enter a value between 1000 and 500000.")
	assert.Contains(t, text, "Invalid input. Please enter a whole number.")
	assert.Contains(t, text, "Invalid input. Please enter 'y' or 'n'.")
}

func TestPromptTerms_EndOfInput(t *testing.T) {
	var out bytes.Buffer

	_, err := promptTerms(bufio.NewReader(strings.NewReader("1000\n")), &out)

	assert.Error(t, err)
}

func TestRun_Flags(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-principal", "100000", "-rate", "5", "-term", "30", "-summary"}, strings.NewReader(""), &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "Monthly payment is: $536.82")
	assert.Contains(t, stdout.String(), "Total Interest Paid: $93,255.")
	assert.NotContains(t, stdout.String(), "Principal\n")
}

func TestRun_FullSchedule(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-principal", "1000", "-rate", "1", "-term", "1"}, strings.NewReader(""), &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Regexp(t, `\n12\s+\$0\.00\n`, stdout.String())
	assert.Contains(t, stdout.String(), "Total Cost of Mortgage:")
}

func TestRun_Interactive(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run(nil, strings.NewReader("20000\n2\n4\nn\n"), &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Regexp(t, `\n24\s+\$0\.00\n`, stdout.String())
	assert.NotContains(t, stdout.String(), "Anniversary")
}

func TestRun_RejectsOutOfRangeFlags(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-principal", "100000", "-rate", "12", "-term", "30"}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "annual interest rate must be between")
}

func TestRun_AnniversaryFlagAloneIsNotIgnored(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-anniversary"}, strings.NewReader("100000\n30\n5\nn\n"), &stdout, &stderr)

	assert.Equal(t, 2, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "principal must be between")
}

func TestRun_SummaryFlagKeepsPrompts(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-summary"}, strings.NewReader("20000\n2\n4\nn\n"), &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "Enter principal amount")
	assert.Contains(t, stdout.String(), "--- Mortgage Summary ---")
}
