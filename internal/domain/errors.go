package domain

import "errors"

// Validation errors represent malformed domain entities.
var (
	// ErrUnknownTransactionType indicates a transaction record carries a type
	// outside the closed set of supported types.
	ErrUnknownTransactionType = errors.New("unknown transaction type")

	// ErrNegativeQuantity indicates a transaction quantity below zero.
	// Quantities are absolute values; sells are expressed by type, not sign.
	ErrNegativeQuantity = errors.New("quantity cannot be negative")

	// ErrNegativeAmount indicates a price or fee below zero.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrEmptyAccountName indicates an account without a name.
	ErrEmptyAccountName = errors.New("account name cannot be empty")

	// ErrUnknownAccountType indicates an account type outside the closed set.
	ErrUnknownAccountType = errors.New("unknown account type")
)

// Calculation errors represent inputs the engine refuses to compute on.
// They are sentinel values so callers can branch with errors.Is instead of
// matching message strings.
var (
	// ErrInsufficientData indicates a return series shorter than the minimum
	// sample size required for beta/correlation statistics.
	ErrInsufficientData = errors.New("insufficient data: need at least 5 paired returns")

	// ErrMismatchedLengths indicates portfolio and benchmark return series of
	// different lengths.
	ErrMismatchedLengths = errors.New("portfolio and benchmark series must have equal length")

	// ErrInvalidPortfolioValue indicates a non-positive start or end value.
	ErrInvalidPortfolioValue = errors.New("portfolio values must be positive")

	// ErrInvalidDayRange indicates a period outside 1..3650 days.
	ErrInvalidDayRange = errors.New("days must be between 1 and 3650")

	// ErrUnsupportedBenchmark indicates a benchmark identifier outside the
	// supported catalog.
	ErrUnsupportedBenchmark = errors.New("unsupported benchmark")

	// ErrZeroIncome indicates a ratio computation against zero or negative
	// gross income, which makes income-multiple targets meaningless.
	ErrZeroIncome = errors.New("gross annual income must be positive")

	// ErrNoPortfolios indicates a comparison request with an empty portfolio list.
	ErrNoPortfolios = errors.New("at least one portfolio is required")
)

// Upstream errors represent failures of external collaborators that the
// engine propagates unchanged rather than papering over.
var (
	// ErrPriceUnavailable indicates the market data collaborator could not
	// supply a current price. The engine never substitutes a guessed value.
	ErrPriceUnavailable = errors.New("no current price available")

	// ErrAccountNotFound indicates an account with the given ID does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrBenchmarkReturnUnavailable indicates no stored return figure for a
	// benchmark and period.
	ErrBenchmarkReturnUnavailable = errors.New("benchmark return unavailable")
)
