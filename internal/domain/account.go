package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType represents the type of account in the system
type AccountType string

const (
	AccountTypeBrokerage  AccountType = "BROKERAGE"
	AccountTypeRetirement AccountType = "RETIREMENT"
	AccountTypeSavings    AccountType = "SAVINGS"
	AccountTypeChecking   AccountType = "CHECKING"
)

// Account represents an account entity in the domain layer.
// Accounts flagged IsExcluded are filtered out of portfolio aggregation
// before any holding math runs.
type Account struct {
	ID          uuid.UUID
	Name        string
	AccountType AccountType
	Balance     decimal.Decimal
	IsExcluded  bool
}

// Validate ensures the account adheres to domain rules
// Returns an error if validation fails
func (a *Account) Validate() error {
	if a.Name == "" {
		return ErrEmptyAccountName
	}

	switch a.AccountType {
	case AccountTypeBrokerage, AccountTypeRetirement, AccountTypeSavings, AccountTypeChecking:
	default:
		return ErrUnknownAccountType
	}

	return nil
}

// RatioProfile carries the personal figures the ratio benchmarks are
// computed against. Optional balances are nil when unknown.
type RatioProfile struct {
	Age                   int
	GrossAnnualIncome     decimal.Decimal
	AnnualSavings         decimal.Decimal
	CurrentCapital        decimal.Decimal
	MortgageBalance       *decimal.Decimal
	StudentLoanBalance    *decimal.Decimal
	PrimaryResidenceValue *decimal.Decimal
}
