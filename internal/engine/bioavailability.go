package engine

import (
	"math"
	"sort"

	"github.com/nutralab/quantisim/internal/models"
)

// pharmaceuticalForm describes one delivery form relative to a standard
// tablet or capsule.
type pharmaceuticalForm struct {
	key                   string
	name                  string
	bioavailabilityFactor float64
	absorptionRate        float64
	peakTimeHours         float64
	durationHours         float64
	costMultiplier        float64
	clinicalEvidence      string
	mechanism             string
}

var pharmaceuticalForms = []pharmaceuticalForm{
	{
		key:                   "standard",
		name:                  "Standard",
		bioavailabilityFactor: 1.0,
		absorptionRate:        45,
		peakTimeHours:         2.5,
		durationHours:         4,
		costMultiplier:        1.0,
		clinicalEvidence:      "Baseline - Standard pharmaceutical preparations",
		mechanism:             "Conventional tablet/capsule formulation",
	},
	{
		key:                   "liposomal",
		name:                  "Liposomal",
		bioavailabilityFactor: 8.5,
		absorptionRate:        95,
		peakTimeHours:         0.5,
		durationHours:         12,
		costMultiplier:        4.5,
		clinicalEvidence:      "High - Multiple RCTs showing 8-15x higher absorption",
		mechanism:             "Phospholipid vesicles protect compounds through the GI tract and facilitate cellular uptake",
	},
	{
		key:                   "nanoemulsion",
		name:                  "Nanoemulsion",
		bioavailabilityFactor: 6.2,
		absorptionRate:        87,
		peakTimeHours:         0.75,
		durationHours:         8,
		costMultiplier:        3.8,
		clinicalEvidence:      "Moderate-High - Studies showing 5-8x improved absorption",
		mechanism:             "Nano-sized droplets increase surface area and solubility",
	},
	{
		key:                   "micronized",
		name:                  "Micronized",
		bioavailabilityFactor: 2.8,
		absorptionRate:        75,
		peakTimeHours:         1.5,
		durationHours:         6,
		costMultiplier:        2.2,
		clinicalEvidence:      "Moderate - Consistent 2-4x absorption improvement",
		mechanism:             "Reduced particle size increases dissolution rate",
	},
	{
		key:                   "chelated",
		name:                  "Chelated",
		bioavailabilityFactor: 3.5,
		absorptionRate:        80,
		peakTimeHours:         1.0,
		durationHours:         8,
		costMultiplier:        2.8,
		clinicalEvidence:      "High - Superior absorption vs inorganic forms",
		mechanism:             "Organic chelation protects minerals from interference",
	},
	{
		key:                   "sublingual",
		name:                  "Sublingual",
		bioavailabilityFactor: 4.2,
		absorptionRate:        85,
		peakTimeHours:         0.25,
		durationHours:         4,
		costMultiplier:        2.5,
		clinicalEvidence:      "High - Direct absorption bypassing first-pass metabolism",
		mechanism:             "Bypasses the digestive system via sublingual absorption",
	},
	{
		key:                   "enteric_coated",
		name:                  "Enteric Coated",
		bioavailabilityFactor: 2.1,
		absorptionRate:        70,
		peakTimeHours:         2.0,
		durationHours:         8,
		costMultiplier:        1.8,
		clinicalEvidence:      "Moderate - Protects from gastric degradation",
		mechanism:             "pH-dependent coating protects from stomach acid",
	},
}

var circadianTiming = map[string]models.CircadianTiming{
	models.CategoryVitamin:   {Optimal: "08:00", Reason: "Morning fat mobilization enhances absorption", WithMeal: true},
	models.CategoryMineral:   {Optimal: "19:00", Reason: "Evening absorption reduces competition", WithMeal: true},
	models.CategoryHerb:      {Optimal: "09:00", Reason: "Morning cortisol peak synergizes with adaptogenic effects", WithMeal: false},
	models.CategoryAminoAcid: {Optimal: "08:30", Reason: "Peak cognitive performance window", WithMeal: false},
	models.CategoryOther:     {Optimal: "07:00", Reason: "Empty stomach maximizes absorption", WithMeal: false},
}

var absorptionEnhancers = map[string][]string{
	models.CategoryVitamin:   {"Healthy fats", "Vitamin C", "Bioperine"},
	models.CategoryMineral:   {"Vitamin C", "Vitamin D", "Amino acid chelation"},
	models.CategoryHerb:      {"Bioperine", "Lecithin", "Quercetin"},
	models.CategoryAminoAcid: {"B-complex vitamins", "Vitamin C", "Empty stomach"},
}

var absorptionInhibitors = map[string][]string{
	models.CategoryVitamin:   {"Excess fiber", "Alcohol", "Certain medications"},
	models.CategoryMineral:   {"Phytates", "Oxalates", "Calcium competition"},
	models.CategoryHerb:      {"High-fat meals", "Alcohol", "Certain drugs"},
	models.CategoryAminoAcid: {"Other proteins", "High carb meals", "Caffeine"},
}

// AnalyzeBioavailability scores every known pharmaceutical form of a
// supplement for a user, picks the forms with the best absorption and the
// best score-per-cost, and summarizes timing and food interactions by
// category.
func AnalyzeBioavailability(supp *models.Supplement, profile models.UserProfile) *models.BioavailabilityReport {
	forms := make([]models.FormAnalysis, 0, len(pharmaceuticalForms))
	for _, form := range pharmaceuticalForms {
		adjusted := personalizedBioavailability(form.bioavailabilityFactor, profile, supp.Category)
		standardDose := supp.DosageMin
		if standardDose <= 0 {
			standardDose = 100
		}
		equivalentDose := math.Round(standardDose / adjusted)
		costPerEffectiveUnit := supp.PriceMin * form.costMultiplier / adjusted

		forms = append(forms, models.FormAnalysis{
			Form:                  form.key,
			Name:                  form.name,
			BioavailabilityFactor: adjusted,
			AbsorptionRate:        form.absorptionRate,
			EquivalentDose:        equivalentDose,
			CostMultiplier:        form.costMultiplier,
			CostPerEffectiveUnit:  costPerEffectiveUnit,
			ClinicalEvidence:      form.clinicalEvidence,
			MechanismDescription:  form.mechanism,
			PeakTimeHours:         form.peakTimeHours,
			DurationHours:         form.durationHours,
			Score:                 formScore(adjusted, costPerEffectiveUnit, form.absorptionRate),
		})
	}

	optimal := forms[0]
	costBenefit := forms[0]
	for _, f := range forms[1:] {
		if f.BioavailabilityFactor > optimal.BioavailabilityFactor {
			optimal = f
		}
		if f.Score > costBenefit.Score {
			costBenefit = f
		}
	}

	// Stable ordering for consumers: best score first.
	sort.SliceStable(forms, func(i, j int) bool { return forms[i].Score > forms[j].Score })

	score := math.Min(100, math.Round(
		optimal.BioavailabilityFactor/10*100+(optimal.AbsorptionRate-45)/2,
	))

	return &models.BioavailabilityReport{
		SupplementID:         supp.ID,
		SupplementName:       supp.Name,
		BioavailabilityScore: score,
		OptimalForm:          optimal.Name,
		CostBenefitForm:      costBenefit.Name,
		FormsAnalysis:        forms,
		Timing:               timingForCategory(supp.Category),
		AbsorptionEnhancers:  absorptionEnhancers[supp.Category],
		AbsorptionInhibitors: absorptionInhibitors[supp.Category],
	}
}

// personalizedBioavailability adjusts a form's base factor for age, gender
// and weight.
func personalizedBioavailability(base float64, profile models.UserProfile, category string) float64 {
	adjusted := base
	if profile.Age > 65 {
		adjusted *= 0.85 // reduced absorption in elderly
	}
	if profile.Age > 0 && profile.Age < 25 {
		adjusted *= 1.1
	}
	if profile.Gender == "female" && category == models.CategoryMineral {
		adjusted *= 1.15
	}
	if profile.Weight > 80 {
		adjusted *= 0.95
	}
	if profile.Weight > 0 && profile.Weight < 60 {
		adjusted *= 1.05
	}
	return math.Round(adjusted*100) / 100
}

func formScore(bioavailability, costPerUnit, absorptionRate float64) float64 {
	bioScore := bioavailability / 10 * 40
	costScore := math.Max(0, (100-costPerUnit)/2)
	absorptionScore := (absorptionRate - 45) / 2
	return math.Round(bioScore + costScore + absorptionScore)
}

func timingForCategory(category string) models.CircadianTiming {
	if timing, ok := circadianTiming[category]; ok {
		return timing
	}
	return circadianTiming[models.CategoryOther]
}
