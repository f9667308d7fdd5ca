package service

const (
	MinPrincipal  = 1_000.0
	MaxPrincipal  = 500_000.0
	MinAnnualRate = 1.0
	MaxAnnualRate = 10.0
	MinTermYears  = 1
	MaxTermYears  = 30
	MonthsInYear  = 12

	// Anniversary prepayment: a share of the original principal, capped at a
	// fixed ceiling and then at the remaining balance. Comparisons are inclusive.
	AnniversaryPaymentRate = 0.05
	MaxAnniversaryPayment  = 5_000.0

	// Balances below one cent are snapped to zero.
	CentThreshold = 0.01

	// Longest term the simulation core accepts. Service callers are held to
	// MaxTermYears.
	MaxSimulatedTermYears = 1_000

	// Simulations stop with ErrNonAmortizingPayment past termMonths * this.
	IterationSafetyMultiple = 10
)
