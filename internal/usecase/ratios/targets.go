// Package ratios benchmarks personal finances against age-indexed target
// ratios (capital-to-income, savings rate, mortgage-to-income), classifies
// life stages and scores retirement readiness.
package ratios

import (
	"github.com/shopspring/decimal"
)

// RetirementAge is the planning horizon all targets converge on.
const RetirementAge = 65

// SavingsRateTarget is the flat share of gross income to save each year.
var SavingsRateTarget = decimal.NewFromFloat(0.12)

// ageBracket maps the start of a five-year age bracket to an income-multiple
// target. Brackets are half-open: a bracket applies from its start age up to
// the next bracket's start.
type ageBracket struct {
	fromAge int
	target  decimal.Decimal
}

// capitalTargets is the capital-to-income ladder: how many multiples of gross
// income should be accumulated by the start of each bracket, reaching 12x at
// retirement age.
var capitalTargets = []ageBracket{
	{25, decimal.NewFromFloat(0.5)},
	{30, decimal.NewFromFloat(1.0)},
	{35, decimal.NewFromFloat(2.0)},
	{40, decimal.NewFromFloat(3.5)},
	{45, decimal.NewFromFloat(5.0)},
	{50, decimal.NewFromFloat(7.0)},
	{55, decimal.NewFromFloat(9.0)},
	{60, decimal.NewFromFloat(11.0)},
	{65, decimal.NewFromFloat(12.0)},
}

// mortgageTargets is the mortgage-to-income ceiling: how many multiples of
// gross income the outstanding mortgage should not exceed, shrinking to zero
// by retirement age.
var mortgageTargets = []ageBracket{
	{25, decimal.NewFromFloat(2.0)},
	{30, decimal.NewFromFloat(1.9)},
	{35, decimal.NewFromFloat(1.8)},
	{40, decimal.NewFromFloat(1.5)},
	{45, decimal.NewFromFloat(1.2)},
	{50, decimal.NewFromFloat(0.9)},
	{55, decimal.NewFromFloat(0.6)},
	{60, decimal.NewFromFloat(0.3)},
	{65, decimal.Zero},
}

// bracketTarget walks a ladder and returns the target of the bracket age
// falls into, or fallback below the first bracket.
func bracketTarget(brackets []ageBracket, age int, fallback decimal.Decimal) decimal.Decimal {
	target := fallback
	for _, bracket := range brackets {
		if age < bracket.fromAge {
			break
		}
		target = bracket.target
	}
	return target
}

// CapitalTargetForAge returns the capital-to-income multiple targeted at the
// given age. Under 25 the target is zero.
func CapitalTargetForAge(age int) decimal.Decimal {
	return bracketTarget(capitalTargets, age, decimal.Zero)
}

// MortgageTargetForAge returns the mortgage-to-income ceiling at the given
// age. Under 25 the ceiling matches the youngest bracket.
func MortgageTargetForAge(age int) decimal.Decimal {
	return bracketTarget(mortgageTargets, age, decimal.NewFromFloat(2.0))
}
