package models

// PKParameters hold the single-compartment pharmacokinetic constants for a
// supplement. Zero values mean "not provided"; Normalize fills in the
// population defaults once at the data-store boundary.
type PKParameters struct {
	AbsorptionRate     float64 `json:"absorption_rate"`     // ka, 1/h
	Bioavailability    float64 `json:"bioavailability"`     // fraction absorbed
	Clearance          float64 `json:"clearance"`           // L/h
	VolumeDistribution float64 `json:"volume_distribution"` // L
	HalfLife           float64 `json:"half_life"`           // hours
	ProteinBinding     float64 `json:"protein_binding"`     // bound fraction
}

// DefaultPKParameters returns the population defaults applied when a
// supplement record carries no pharmacokinetic data.
func DefaultPKParameters() PKParameters {
	return PKParameters{
		AbsorptionRate:     0.8,
		Bioavailability:    1.0,
		Clearance:          0.1,
		VolumeDistribution: 70,
		HalfLife:           8,
		ProteinBinding:     0.9,
	}
}

// PopulationVariability pins the multiplicative variation factors used by the
// Monte Carlo simulation. A zero factor means "sample uniformly in [0.8, 1.2]".
type PopulationVariability struct {
	AgeFactor    float64 `json:"age_factor,omitempty"`
	WeightFactor float64 `json:"weight_factor,omitempty"`
}

type Supplement struct {
	ID                    string                 `json:"id"`
	Name                  string                 `json:"name"`
	Category              string                 `json:"category"`
	Description           string                 `json:"description,omitempty"`
	Benefits              []string               `json:"benefits"`
	TargetSymptoms        []string               `json:"target_symptoms,omitempty"`
	DosageMin             float64                `json:"dosage_min"`
	DosageMax             float64                `json:"dosage_max"`
	DosageUnit            string                 `json:"dosage_unit"`
	Timing                string                 `json:"timing"`
	EvidenceLevel         string                 `json:"evidence_level"`
	Contraindications     []string               `json:"contraindications,omitempty"`
	Interactions          []string               `json:"interactions"`
	PriceMin              float64                `json:"price_min"`
	PriceMax              float64                `json:"price_max"`
	BioavailabilityScore  float64                `json:"bioavailability_score"`
	PKParameters          *PKParameters          `json:"pk_parameters,omitempty"`
	PopulationVariability *PopulationVariability `json:"population_variability,omitempty"`
}

// Normalize applies the documented defaults for absent fields. Repositories
// call it on every scanned row so the engine never re-defaults.
func (s *Supplement) Normalize() {
	if s.Category == "" {
		s.Category = CategoryOther
	}
	if s.Timing == "" {
		s.Timing = TimingAny
	}
	if s.DosageUnit == "" {
		s.DosageUnit = "mg"
	}
	if s.DosageMax <= 0 {
		s.DosageMax = 1000
	}
	if s.DosageMin < 0 {
		s.DosageMin = 0
	}
	if s.PriceMin <= 0 {
		s.PriceMin = 10
	}
	if s.PriceMax <= 0 {
		s.PriceMax = 50
	}
	defaults := DefaultPKParameters()
	if s.PKParameters == nil {
		s.PKParameters = &defaults
		return
	}
	pk := s.PKParameters
	if pk.AbsorptionRate <= 0 {
		pk.AbsorptionRate = defaults.AbsorptionRate
	}
	if pk.Bioavailability <= 0 {
		pk.Bioavailability = defaults.Bioavailability
	}
	if pk.Clearance <= 0 {
		pk.Clearance = defaults.Clearance
	}
	if pk.VolumeDistribution <= 0 {
		pk.VolumeDistribution = defaults.VolumeDistribution
	}
	if pk.HalfLife <= 0 {
		pk.HalfLife = defaults.HalfLife
	}
	if pk.ProteinBinding <= 0 {
		pk.ProteinBinding = defaults.ProteinBinding
	}
}
