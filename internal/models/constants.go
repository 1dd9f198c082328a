package models

// Analysis types accepted by the orchestrator.
const (
	AnalysisTypePBPK            = "pbpk"
	AnalysisTypeMonteCarlo      = "monte_carlo"
	AnalysisTypeSynergyML       = "synergy_ml"
	AnalysisTypeOptimization    = "optimization"
	AnalysisTypeBioavailability = "bioavailability"
)

// Supplement categories.
const (
	CategoryVitamin   = "vitamin"
	CategoryMineral   = "mineral"
	CategoryHerb      = "herb"
	CategoryAminoAcid = "amino_acid"
	CategoryOther     = "other"
)

// Intake timings.
const (
	TimingMorning  = "morning"
	TimingEvening  = "evening"
	TimingWithMeal = "with_meal"
	TimingAny      = "any"
)

// Evidence levels.
const (
	EvidenceStrong   = "strong"
	EvidenceModerate = "moderate"
	EvidenceLimited  = "limited"
)

// StatisticalSignificance is recorded on every persisted analysis record.
const StatisticalSignificance = 0.95

func ValidAnalysisType(t string) bool {
	switch t {
	case AnalysisTypePBPK, AnalysisTypeMonteCarlo, AnalysisTypeSynergyML,
		AnalysisTypeOptimization, AnalysisTypeBioavailability:
		return true
	}
	return false
}
