// Package decmath provides the arbitrary-precision arithmetic primitives the
// rest of the calculation engine is built on: integer powers, roots,
// transcendental wrappers and the standard compound-growth formulas.
//
// Transcendental operations (Power, NthRoot, Exp, Ln and everything built on
// them) go through a float64 adapter and are accurate to roughly 15
// significant decimal digits. That adapter is the only place binary floating
// point appears in the engine; if tighter guarantees are ever needed, this
// package is the single boundary to replace.
package decmath

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	one        = decimal.NewFromInt(1)
	hundred    = decimal.NewFromInt(100)
	seventyTwo = decimal.NewFromInt(72)
)

// DefaultRootIterations is the bracket-halving budget used when callers do
// not specify one. Twenty halvings narrow the bracket by a factor of ~10^6.
const DefaultRootIterations = 20

// fromFloat converts a float result back to a decimal, mapping NaN and
// infinities to zero so no caller ever sees a panic from the decimal package.
func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// Power raises base to an integer exponent.
// Fast paths: exponent 0 returns 1, exponent 1 returns base, base 0 returns 0.
// A negative exponent returns the reciprocal of the positive power.
// Everything else goes through the float adapter (exp(ln|base|*exponent)),
// so results lose precision beyond ~15 significant digits.
func Power(base decimal.Decimal, exponent int64) decimal.Decimal {
	if exponent == 0 {
		return one
	}
	if exponent == 1 {
		return base
	}
	if base.IsZero() {
		return decimal.Zero
	}
	if exponent < 0 {
		p := Power(base, -exponent)
		if p.IsZero() {
			return decimal.Zero
		}
		return one.Div(p)
	}

	// Work on the magnitude; reapply sign by exponent parity so negative
	// bases never reach math.Log.
	f, _ := base.Abs().Float64()
	result := fromFloat(math.Exp(math.Log(f) * float64(exponent)))
	if base.IsNegative() && exponent%2 != 0 {
		return result.Neg()
	}
	return result
}

// NthRoot computes the nth root of value via the float adapter.
// Non-positive values and n < 1 return zero.
func NthRoot(value decimal.Decimal, n int64) decimal.Decimal {
	if n < 1 || value.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if n == 1 {
		return value
	}
	f, _ := value.Float64()
	return fromFloat(math.Exp(math.Log(f) / float64(n)))
}

// BinarySearchNthRoot computes the nth root of target by halving a
// [low, high] bracket until mid^n matches target or the iteration budget is
// exhausted. The fixed budget guarantees termination independent of the
// precision of the inputs. Pass iterations <= 0 for DefaultRootIterations.
func BinarySearchNthRoot(target decimal.Decimal, n int64, iterations int) decimal.Decimal {
	if n < 1 || target.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if n == 1 {
		return target
	}
	if iterations <= 0 {
		iterations = DefaultRootIterations
	}

	low := decimal.Zero
	high := target
	if high.LessThan(one) {
		// Roots of values below 1 exceed the value itself.
		high = one
	}

	two := decimal.NewFromInt(2)
	mid := low
	for i := 0; i < iterations; i++ {
		mid = low.Add(high).Div(two)
		midPow := intPow(mid, n)
		cmp := midPow.Cmp(target)
		if cmp == 0 {
			return mid
		}
		if cmp < 0 {
			low = mid
		} else {
			high = mid
		}
	}
	return mid
}

// intPow multiplies mid by itself n times in exact decimal arithmetic.
// n is small (root degrees), so the linear loop is fine.
func intPow(d decimal.Decimal, n int64) decimal.Decimal {
	result := one
	for i := int64(0); i < n; i++ {
		result = result.Mul(d)
	}
	return result
}

// Exp computes e^x via the float adapter.
func Exp(x decimal.Decimal) decimal.Decimal {
	f, _ := x.Float64()
	return fromFloat(math.Exp(f))
}

// Ln computes the natural logarithm of x via the float adapter.
// Non-positive inputs return zero.
func Ln(x decimal.Decimal) decimal.Decimal {
	if x.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	f, _ := x.Float64()
	return fromFloat(math.Log(f))
}

// CompoundGrowth computes principal * (1+rate)^periods.
// A zero rate short-circuits to the principal unchanged.
func CompoundGrowth(principal, rate decimal.Decimal, periods int64) decimal.Decimal {
	if rate.IsZero() || periods == 0 {
		return principal
	}
	return principal.Mul(Power(one.Add(rate), periods))
}

// FutureValueAnnuity computes the future value of a stream of equal payments
// compounding at rate per period: payment * ((1+rate)^periods - 1) / rate.
// A zero rate degenerates to payment * periods.
func FutureValueAnnuity(payment, rate decimal.Decimal, periods int64) decimal.Decimal {
	if periods <= 0 {
		return decimal.Zero
	}
	if rate.IsZero() {
		return payment.Mul(decimal.NewFromInt(periods))
	}
	growth := Power(one.Add(rate), periods).Sub(one)
	return payment.Mul(growth).Div(rate)
}

// PresentValue discounts a future value back by periods at rate:
// fv / (1+rate)^periods. A zero rate returns the future value unchanged.
func PresentValue(futureValue, rate decimal.Decimal, periods int64) decimal.Decimal {
	if rate.IsZero() || periods == 0 {
		return futureValue
	}
	divisor := Power(one.Add(rate), periods)
	if divisor.IsZero() {
		return decimal.Zero
	}
	return futureValue.Div(divisor)
}

// ContinuousCompound computes principal * e^(rate*time).
func ContinuousCompound(principal, rate, time decimal.Decimal) decimal.Decimal {
	if rate.IsZero() || time.IsZero() {
		return principal
	}
	return principal.Mul(Exp(rate.Mul(time)))
}

// EffectiveAnnualRate converts a nominal annual rate compounded
// periodsPerYear times into the effective annual rate:
// (1 + nominal/m)^m - 1. Fewer than two periods returns the nominal rate.
func EffectiveAnnualRate(nominal decimal.Decimal, periodsPerYear int64) decimal.Decimal {
	if periodsPerYear <= 1 {
		return nominal
	}
	perPeriod := nominal.Div(decimal.NewFromInt(periodsPerYear))
	return Power(one.Add(perPeriod), periodsPerYear).Sub(one)
}

// CAGR computes the compound annual growth rate that turns begin into end
// over years: (end/begin)^(1/years) - 1.
// Returns zero when begin <= 0, end <= 0 or years <= 0 rather than dividing
// by zero or feeding a non-positive ratio to the log.
func CAGR(begin, end decimal.Decimal, years int64) decimal.Decimal {
	if begin.LessThanOrEqual(decimal.Zero) || end.LessThanOrEqual(decimal.Zero) || years <= 0 {
		return decimal.Zero
	}
	ratio, _ := end.Div(begin).Float64()
	return fromFloat(math.Exp(math.Log(ratio) / float64(years))).Sub(one)
}

// RuleOf72 estimates the years needed to double an investment at a
// fractional annual rate (0.08 for 8%): 72 / (rate * 100).
// Non-positive rates return zero.
func RuleOf72(rate decimal.Decimal) decimal.Decimal {
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return seventyTwo.Div(rate.Mul(hundred))
}
