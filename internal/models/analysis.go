package models

import "time"

// ConcentrationPoint is one sample of a concentration-time curve.
type ConcentrationPoint struct {
	TimeHour      float64 `json:"time"`
	Concentration float64 `json:"concentration"`
}

// PKProfile is the computed concentration-time behaviour of one supplement
// for one user, over hours 0..24.
type PKProfile struct {
	TimeProfile        []ConcentrationPoint `json:"time_profile"`
	PeakTime           float64              `json:"peak_time"`
	PeakConcentration  float64              `json:"peak_concentration"`
	AUC                float64              `json:"auc"`
	AdjustedParameters PKParameters         `json:"adjusted_parameters"`
}

// MetricStats aggregates one output metric across a Monte Carlo sample.
type MetricStats struct {
	Mean         float64   `json:"mean"`
	Std          float64   `json:"std"`
	Percentile5  float64   `json:"percentile_5"`
	Percentile95 float64   `json:"percentile_95"`
	Distribution []float64 `json:"distribution"`
}

type MonteCarloResult struct {
	PeakConcentration  MetricStats `json:"peak_concentration"`
	AUC                MetricStats `json:"auc"`
	Iterations         int         `json:"iterations"`
	ConfidenceInterval int         `json:"confidence_interval"`
}

// SynergyFeatures is the feature vector extracted from a supplement pair.
// Extraction is order-independent so predictions are symmetric.
type SynergyFeatures struct {
	CategorySimilarity             float64 `json:"category_similarity"`
	MechanismOverlap               float64 `json:"mechanism_overlap"`
	BioavailabilityComplementarity float64 `json:"bioavailability_complementarity"`
	TimingCompatibility            float64 `json:"timing_compatibility"`
	InteractionRisk                float64 `json:"interaction_risk"`
}

// SafetyAssessment is a static low-risk placeholder until a real interaction
// checker replaces it.
type SafetyAssessment struct {
	InteractionRisk         string `json:"interaction_risk"`
	ContraindicationOverlap bool   `json:"contraindication_overlap"`
	DosageConcerns          bool   `json:"dosage_concerns"`
	MonitoringRequired      bool   `json:"monitoring_required"`
}

type SynergyPrediction struct {
	SupplementPair         [2]string        `json:"supplement_pair"`
	SynergyScore           float64          `json:"synergy_score"`
	ConfidenceLevel        float64          `json:"confidence_level"`
	PredictedEfficacyBoost float64          `json:"predicted_efficacy_boost"`
	MechanismDescription   string           `json:"mechanism_description"`
	SafetyAssessment       SafetyAssessment `json:"safety_assessment"`
	Features               SynergyFeatures  `json:"features"`
}

type DoseAssignment struct {
	SupplementID   string  `json:"supplement_id"`
	SupplementName string  `json:"supplement_name"`
	OptimizedDose  float64 `json:"optimized_dose"`
	Unit           string  `json:"unit"`
}

type SynergyEffect struct {
	Supplements   [2]string `json:"supplements"`
	SynergyScore  float64   `json:"synergy_score"`
	EfficacyBoost float64   `json:"efficacy_boost"`
}

type PredictedOutcomes struct {
	EfficacyScore  float64         `json:"efficacy_score"`
	CostScore      float64         `json:"cost_score"`
	SafetyScore    float64         `json:"safety_score"`
	SynergyEffects []SynergyEffect `json:"synergy_effects"`
}

type OptimizedProtocol struct {
	OptimizedDosages  []DoseAssignment  `json:"optimized_dosages"`
	PredictedOutcomes PredictedOutcomes `json:"predicted_outcomes"`
	OptimizationScore float64           `json:"optimization_score"`
	ConfidenceScore   float64           `json:"confidence_score"`
}

// FormAnalysis scores one pharmaceutical form of a supplement for a user.
type FormAnalysis struct {
	Form                  string  `json:"form"`
	Name                  string  `json:"name"`
	BioavailabilityFactor float64 `json:"bioavailability_factor"`
	AbsorptionRate        float64 `json:"absorption_rate"`
	EquivalentDose        float64 `json:"equivalent_dose"`
	CostMultiplier        float64 `json:"cost_multiplier"`
	CostPerEffectiveUnit  float64 `json:"cost_per_effective_unit"`
	ClinicalEvidence      string  `json:"clinical_evidence"`
	MechanismDescription  string  `json:"mechanism_description"`
	PeakTimeHours         float64 `json:"peak_time_hours"`
	DurationHours         float64 `json:"duration_hours"`
	Score                 float64 `json:"score"`
}

type CircadianTiming struct {
	Optimal  string `json:"optimal"`
	Reason   string `json:"reason"`
	WithMeal bool   `json:"with_meal"`
}

type BioavailabilityReport struct {
	SupplementID         string          `json:"supplement_id"`
	SupplementName       string          `json:"supplement_name"`
	BioavailabilityScore float64         `json:"bioavailability_score"`
	OptimalForm          string          `json:"optimal_form"`
	CostBenefitForm      string          `json:"cost_benefit_form"`
	FormsAnalysis        []FormAnalysis  `json:"forms_analysis"`
	Timing               CircadianTiming `json:"timing"`
	AbsorptionEnhancers  []string        `json:"absorption_enhancers"`
	AbsorptionInhibitors []string        `json:"absorption_inhibitors"`
}

// Per-supplement wrappers returned by the orchestrator for the per-supplement
// analysis types.
type SupplementPKResult struct {
	SupplementID   string     `json:"supplement_id"`
	SupplementName string     `json:"supplement_name"`
	PBPKAnalysis   *PKProfile `json:"pbpk_analysis"`
}

type SupplementMonteCarloResult struct {
	SupplementID         string            `json:"supplement_id"`
	SupplementName       string            `json:"supplement_name"`
	MonteCarloSimulation *MonteCarloResult `json:"monte_carlo_simulation"`
}

type SynergyResults struct {
	SynergyPredictions []SynergyPrediction `json:"synergy_predictions"`
}

// AnalysisRecord is the append-only row persisted once per request.
type AnalysisRecord struct {
	ID                      string      `json:"id"`
	UserID                  string      `json:"user_id"`
	SupplementIDs           []string    `json:"supplement_ids"`
	AnalysisType            string      `json:"analysis_type"`
	InputParameters         UserProfile `json:"input_parameters"`
	Results                 interface{} `json:"results"`
	StatisticalSignificance float64     `json:"statistical_significance"`
	CreatedAt               time.Time   `json:"created_at"`
}

// AnalysisRequest is the request contract shared by the HTTP API and the CLI.
type AnalysisRequest struct {
	SupplementIDs []string    `json:"supplement_ids"`
	UserProfile   UserProfile `json:"user_profile"`
	AnalysisType  string      `json:"analysis_type"`
}

type AnalysisResponse struct {
	Success      bool        `json:"success"`
	AnalysisID   string      `json:"analysis_id,omitempty"`
	AnalysisType string      `json:"analysis_type,omitempty"`
	Results      interface{} `json:"results,omitempty"`
	Timestamp    string      `json:"timestamp,omitempty"`
	Error        string      `json:"error,omitempty"`
}
