package ratios

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/quantfolio/calcengine-backend/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Status bands: at or above 105% of target counts as ahead, 90% and up as on
// track, anything lower as behind. For ceilings (mortgage) the comparison is
// inverted.
var (
	aheadBand   = decimal.NewFromFloat(1.05)
	onTrackBand = decimal.NewFromFloat(0.90)
)

// ComputeRatios computes the money ratios for a profile against their
// age-indexed targets. The mortgage ratio is only included when the profile
// carries a mortgage balance.
// Gross income is the denominator of every ratio, so zero or negative income
// is an error rather than a silent zero.
func ComputeRatios(profile domain.RatioProfile) ([]domain.RatioResult, error) {
	if profile.GrossAnnualIncome.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrZeroIncome
	}

	capitalTarget := CapitalTargetForAge(profile.Age)
	capitalRatio := profile.CurrentCapital.Div(profile.GrossAnnualIncome)
	savingsRatio := profile.AnnualSavings.Div(profile.GrossAnnualIncome)

	results := []domain.RatioResult{
		{
			Kind:         domain.RatioKindCapital,
			CurrentRatio: capitalRatio,
			TargetRatio:  capitalTarget,
			Status:       floorStatus(capitalRatio, capitalTarget),
		},
		{
			Kind:         domain.RatioKindSavings,
			CurrentRatio: savingsRatio,
			TargetRatio:  SavingsRateTarget,
			Status:       floorStatus(savingsRatio, SavingsRateTarget),
		},
	}

	if profile.MortgageBalance != nil {
		mortgageTarget := MortgageTargetForAge(profile.Age)
		mortgageRatio := profile.MortgageBalance.Div(profile.GrossAnnualIncome)
		results = append(results, domain.RatioResult{
			Kind:         domain.RatioKindMortgage,
			CurrentRatio: mortgageRatio,
			TargetRatio:  mortgageTarget,
			Status:       ceilingStatus(mortgageRatio, mortgageTarget),
		})
	}

	return results, nil
}

// floorStatus classifies a higher-is-better ratio against its target.
func floorStatus(current, target decimal.Decimal) domain.RatioStatus {
	if target.LessThanOrEqual(decimal.Zero) {
		// No target yet (e.g. capital before 25): any balance is ahead
		return domain.RatioStatusAhead
	}
	progress := current.Div(target)
	switch {
	case progress.GreaterThanOrEqual(aheadBand):
		return domain.RatioStatusAhead
	case progress.GreaterThanOrEqual(onTrackBand):
		return domain.RatioStatusOnTrack
	default:
		return domain.RatioStatusBehind
	}
}

// ceilingStatus classifies a lower-is-better ratio against its ceiling.
func ceilingStatus(current, target decimal.Decimal) domain.RatioStatus {
	if current.LessThanOrEqual(decimal.Zero) {
		return domain.RatioStatusAhead
	}
	if target.LessThanOrEqual(decimal.Zero) {
		// The ceiling is zero (at retirement age) and debt remains
		return domain.RatioStatusBehind
	}
	load := current.Div(target)
	switch {
	case load.LessThanOrEqual(onTrackBand):
		return domain.RatioStatusAhead
	case load.LessThanOrEqual(aheadBand):
		return domain.RatioStatusOnTrack
	default:
		return domain.RatioStatusBehind
	}
}

// LifeStageAnalysis classifies an age into a planning stage with its focus
// and the ratios that matter most in it.
func LifeStageAnalysis(age int) domain.LifeStageProfile {
	switch {
	case age < 35:
		return domain.LifeStageProfile{
			Stage:          domain.LifeStageEarlyCareer,
			Focus:          "Build the savings habit and let compounding start early",
			PriorityRatios: []domain.RatioKind{domain.RatioKindSavings, domain.RatioKindCapital},
		}
	case age < 50:
		return domain.LifeStageProfile{
			Stage:          domain.LifeStageMidCareer,
			Focus:          "Grow capital while paying the mortgage down ahead of schedule",
			PriorityRatios: []domain.RatioKind{domain.RatioKindCapital, domain.RatioKindMortgage, domain.RatioKindSavings},
		}
	case age < RetirementAge:
		return domain.LifeStageProfile{
			Stage:          domain.LifeStagePreRetirement,
			Focus:          "Close the capital gap and retire the mortgage before retiring yourself",
			PriorityRatios: []domain.RatioKind{domain.RatioKindCapital, domain.RatioKindMortgage},
		}
	default:
		return domain.LifeStageProfile{
			Stage:          domain.LifeStageRetirement,
			Focus:          "Preserve capital and keep withdrawals sustainable",
			PriorityRatios: []domain.RatioKind{domain.RatioKindCapital},
		}
	}
}

// RetirementReadinessScore scores how far the capital ratio has progressed
// toward its age-indexed target, clamped to [0, 100].
func RetirementReadinessScore(profile domain.RatioProfile, results []domain.RatioResult) domain.ReadinessScore {
	score := domain.ReadinessScore{
		Score:             hundred,
		YearsToRetirement: yearsToRetirement(profile.Age),
	}

	if capital := findRatio(results, domain.RatioKindCapital); capital != nil && capital.TargetRatio.IsPositive() {
		performance := capital.CurrentRatio.Div(capital.TargetRatio).Mul(hundred)
		score.Score = clamp(performance, decimal.Zero, hundred)
	}

	switch {
	case score.Score.GreaterThanOrEqual(decimal.NewFromInt(95)):
		score.Assessment = domain.ReadinessOnTrack
	case score.Score.GreaterThanOrEqual(decimal.NewFromInt(70)):
		score.Assessment = domain.ReadinessSlightlyBehind
	case score.Score.GreaterThanOrEqual(decimal.NewFromInt(30)):
		score.Assessment = domain.ReadinessBehind
	default:
		score.Assessment = domain.ReadinessCritical
	}

	return score
}

// CatchUpRecommendations generates guidance keyed off the ratios that are
// behind. Advice gets more aggressive inside the final fifteen working years,
// where tax-advantaged catch-up contribution room opens up.
func CatchUpRecommendations(profile domain.RatioProfile, results []domain.RatioResult) []string {
	remaining := yearsToRetirement(profile.Age)
	urgent := remaining <= 15

	recommendations := make([]string, 0, len(results)+1)
	behind := 0

	for _, result := range results {
		if result.Status != domain.RatioStatusBehind {
			continue
		}
		behind++

		switch result.Kind {
		case domain.RatioKindCapital:
			if urgent {
				recommendations = append(recommendations,
					"Max out retirement contributions including age-50+ catch-up limits; the capital gap will not close on the standard schedule")
			} else {
				recommendations = append(recommendations,
					fmt.Sprintf("Increase retirement contributions by 2-3%% of income per year until the capital ratio reaches %s", result.TargetRatio))
			}
		case domain.RatioKindSavings:
			if urgent {
				recommendations = append(recommendations,
					fmt.Sprintf("Raise the savings rate to at least %s%% immediately; redirect raises and windfalls before lifestyle absorbs them", SavingsRateTarget.Mul(hundred)))
			} else {
				recommendations = append(recommendations,
					"Raise the savings rate by one percentage point every six months until it reaches the target")
			}
		case domain.RatioKindMortgage:
			if urgent {
				recommendations = append(recommendations,
					"Prioritize extra principal payments; carrying a mortgage into retirement forces larger withdrawals")
			} else {
				recommendations = append(recommendations,
					"Add a modest extra principal payment each month to bring the mortgage in line with the age benchmark")
			}
		}
	}

	if behind >= 2 {
		recommendations = append(recommendations,
			"Multiple ratios are behind; review fixed expenses and consider a written plan that sequences debt paydown and savings increases")
	}

	return recommendations
}

// AcceleratedTimeline estimates an early-retirement schedule when the capital
// ratio is ahead of its target. Returns nil when it is not.
// The estimate finds the youngest bracket age whose target the current ratio
// already satisfies; the distance to the profile's age is the years ahead of
// schedule, and retirement moves earlier by the same amount.
func AcceleratedTimeline(profile domain.RatioProfile, results []domain.RatioResult) *domain.Timeline {
	capital := findRatio(results, domain.RatioKindCapital)
	if capital == nil || capital.Status != domain.RatioStatusAhead {
		return nil
	}

	// Walk the ladder to find the oldest bracket whose target is already met
	equivalentAge := profile.Age
	for _, bracket := range capitalTargets {
		if capital.CurrentRatio.GreaterThanOrEqual(bracket.target) && bracket.fromAge > equivalentAge {
			equivalentAge = bracket.fromAge
		}
	}

	yearsAhead := equivalentAge - profile.Age
	estimated := RetirementAge - yearsAhead
	if estimated < profile.Age {
		estimated = profile.Age
	}

	return &domain.Timeline{
		EstimatedRetirementAge: estimated,
		YearsAhead:             decimal.NewFromInt(int64(yearsAhead)),
	}
}

func yearsToRetirement(age int) int {
	if age >= RetirementAge {
		return 0
	}
	return RetirementAge - age
}

func findRatio(results []domain.RatioResult, kind domain.RatioKind) *domain.RatioResult {
	for i := range results {
		if results[i].Kind == kind {
			return &results[i]
		}
	}
	return nil
}

func clamp(value, low, high decimal.Decimal) decimal.Decimal {
	if value.LessThan(low) {
		return low
	}
	if value.GreaterThan(high) {
		return high
	}
	return value
}
