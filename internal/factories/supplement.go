package factories

import (
	"math/rand"

	"github.com/jaswdr/faker"
	"github.com/nutralab/quantisim/internal/models"
)

var fake = faker.New()

type SupplementFactory struct{}

type catalogueEntry struct {
	name      string
	category  string
	benefits  []string
	timing    string
	evidence  string
	dosageMin float64
	dosageMax float64
}

var catalogue = []catalogueEntry{
	{"Magnesium Glycinate", models.CategoryMineral, []string{"sleep quality", "muscle relaxation", "stress reduction"}, models.TimingEvening, models.EvidenceStrong, 100, 400},
	{"Vitamin D3", models.CategoryVitamin, []string{"immune support", "bone health", "mood support"}, models.TimingWithMeal, models.EvidenceStrong, 1000, 4000},
	{"Omega-3 Fish Oil", models.CategoryOther, []string{"heart health", "cognitive function", "inflammation reduction"}, models.TimingWithMeal, models.EvidenceStrong, 500, 2000},
	{"Ashwagandha", models.CategoryHerb, []string{"stress reduction", "sleep quality", "energy"}, models.TimingAny, models.EvidenceModerate, 300, 600},
	{"L-Theanine", models.CategoryAminoAcid, []string{"focus", "stress reduction", "sleep quality"}, models.TimingAny, models.EvidenceModerate, 100, 400},
	{"Zinc Picolinate", models.CategoryMineral, []string{"immune support", "skin health"}, models.TimingWithMeal, models.EvidenceStrong, 15, 50},
	{"Rhodiola Rosea", models.CategoryHerb, []string{"energy", "stress reduction", "cognitive function"}, models.TimingMorning, models.EvidenceLimited, 200, 600},
	{"Vitamin B12", models.CategoryVitamin, []string{"energy", "cognitive function"}, models.TimingMorning, models.EvidenceStrong, 250, 1000},
	{"Creatine Monohydrate", models.CategoryAminoAcid, []string{"muscle strength", "cognitive function"}, models.TimingAny, models.EvidenceStrong, 3000, 5000},
	{"Curcumin", models.CategoryHerb, []string{"inflammation reduction", "joint health"}, models.TimingWithMeal, models.EvidenceModerate, 500, 2000},
}

// CreateSupplement builds one supplement from the reference catalogue with
// randomized pricing and pharmacokinetics, normalized and ready to insert.
func (sf *SupplementFactory) CreateSupplement() *models.Supplement {
	return sf.create(catalogue[rand.Intn(len(catalogue))])
}

func (sf *SupplementFactory) create(entry catalogueEntry) *models.Supplement {
	supp := &models.Supplement{
		ID:                   fake.UUID().V4(),
		Name:                 entry.name,
		Category:             entry.category,
		Description:          fake.Lorem().Sentence(12),
		Benefits:             entry.benefits,
		DosageMin:            entry.dosageMin,
		DosageMax:            entry.dosageMax,
		DosageUnit:           "mg",
		Timing:               entry.timing,
		EvidenceLevel:        entry.evidence,
		Interactions:         []string{},
		PriceMin:             fake.Float64(2, 5, 30),
		PriceMax:             fake.Float64(2, 30, 80),
		BioavailabilityScore: fake.Float64(2, 20, 95),
		PKParameters: &models.PKParameters{
			AbsorptionRate:     fake.Float64(2, 30, 150) / 100,
			Bioavailability:    fake.Float64(2, 40, 100) / 100,
			Clearance:          fake.Float64(2, 5, 30) / 100,
			VolumeDistribution: fake.Float64(0, 40, 100),
			HalfLife:           fake.Float64(0, 2, 24),
			ProteinBinding:     fake.Float64(2, 50, 99) / 100,
		},
	}
	supp.Normalize()
	return supp
}

// CreateCatalogue builds n supplements, cycling through the reference
// catalogue so small batches still cover every category.
func (sf *SupplementFactory) CreateCatalogue(n int) []*models.Supplement {
	supplements := make([]*models.Supplement, n)
	for i := 0; i < n; i++ {
		supplements[i] = sf.create(catalogue[i%len(catalogue)])
	}
	return supplements
}
