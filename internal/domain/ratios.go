package domain

import (
	"github.com/shopspring/decimal"
)

// RatioKind identifies one of the age-benchmarked money ratios.
type RatioKind string

const (
	RatioKindCapital  RatioKind = "CAPITAL_TO_INCOME"
	RatioKindSavings  RatioKind = "SAVINGS_RATE"
	RatioKindMortgage RatioKind = "MORTGAGE_TO_INCOME"
)

// RatioStatus classifies a current ratio against its age-indexed target.
type RatioStatus string

const (
	RatioStatusAhead   RatioStatus = "AHEAD"
	RatioStatusOnTrack RatioStatus = "ON_TRACK"
	RatioStatusBehind  RatioStatus = "BEHIND"
)

// RatioResult represents one computed money ratio against its target.
type RatioResult struct {
	Kind         RatioKind
	CurrentRatio decimal.Decimal
	TargetRatio  decimal.Decimal
	Status       RatioStatus
}

// LifeStage classifies an age into a broad financial planning stage.
type LifeStage string

const (
	LifeStageEarlyCareer   LifeStage = "EARLY_CAREER"
	LifeStageMidCareer     LifeStage = "MID_CAREER"
	LifeStagePreRetirement LifeStage = "PRE_RETIREMENT"
	LifeStageRetirement    LifeStage = "RETIREMENT"
)

// LifeStageProfile describes the focus and priority ratios for a life stage.
type LifeStageProfile struct {
	Stage          LifeStage
	Focus          string
	PriorityRatios []RatioKind
}

// ReadinessAssessment buckets a retirement readiness score.
type ReadinessAssessment string

const (
	ReadinessOnTrack        ReadinessAssessment = "ON_TRACK"
	ReadinessSlightlyBehind ReadinessAssessment = "SLIGHTLY_BEHIND"
	ReadinessBehind         ReadinessAssessment = "BEHIND"
	ReadinessCritical       ReadinessAssessment = "CRITICAL"
)

// ReadinessScore represents how far along the capital ratio is toward its
// age-indexed target, clamped to [0, 100].
type ReadinessScore struct {
	Score             decimal.Decimal
	Assessment        ReadinessAssessment
	YearsToRetirement int
}

// Timeline represents an estimated early-retirement schedule for someone
// whose capital ratio is ahead of target.
type Timeline struct {
	EstimatedRetirementAge int
	YearsAhead             decimal.Decimal
}
