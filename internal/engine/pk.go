package engine

import (
	"math"

	"github.com/nutralab/quantisim/internal/models"
)

const (
	simulationHours = 24
	// normalizedDose characterizes the shape of the curve, not real exposure,
	// so it is fixed rather than taken from the user's dose.
	normalizedDose = 100.0
	ln2            = 0.693
)

// rateEpsilon decides when ka and ke are close enough that the standard
// one-compartment equation degenerates (division by ka-ke).
const rateEpsilon = 1e-9

// ComputePKProfile simulates a single-compartment absorption/elimination
// concentration-time curve for one supplement and one user, at integer hours
// 0 through 24. Clearance scales down with age, volume of distribution scales
// with weight; both adjustments default to 1 when the profile omits the field.
func ComputePKProfile(supp *models.Supplement, profile models.UserProfile) *models.PKProfile {
	params := *supp.PKParameters

	ageAdjustment := 1.0
	if profile.Age > 0 {
		ageAdjustment = math.Max(0.7, 1-(profile.Age-30)*0.01)
	}
	weightAdjustment := 1.0
	if profile.Weight > 0 {
		weightAdjustment = profile.Weight / 70
	}

	adjusted := params
	adjusted.Clearance = params.Clearance * ageAdjustment
	adjusted.VolumeDistribution = params.VolumeDistribution * weightAdjustment

	ka := adjusted.AbsorptionRate
	ke := ln2 / adjusted.HalfLife

	points := make([]models.ConcentrationPoint, 0, simulationHours+1)
	peakTime := 0.0
	peakConcentration := 0.0
	for t := 0; t <= simulationHours; t++ {
		conc := concentrationAt(float64(t), ka, ke, adjusted.Bioavailability, adjusted.VolumeDistribution)
		points = append(points, models.ConcentrationPoint{
			TimeHour:      float64(t),
			Concentration: conc,
		})
		if conc > peakConcentration {
			peakConcentration = conc
			peakTime = float64(t)
		}
	}

	return &models.PKProfile{
		TimeProfile:        points,
		PeakTime:           peakTime,
		PeakConcentration:  peakConcentration,
		AUC:                trapezoidalAUC(points),
		AdjustedParameters: adjusted,
	}
}

// concentrationAt evaluates the one-compartment oral absorption model. When
// ka == ke the standard equation divides by zero; in that case the limiting
// form C(t) = dose*ka*F/Vd * t*exp(-ka*t) is used instead.
func concentrationAt(t, ka, ke, bioavailability, volumeDistribution float64) float64 {
	scale := normalizedDose * ka * bioavailability / volumeDistribution
	var conc float64
	if math.Abs(ka-ke) < rateEpsilon {
		conc = scale * t * math.Exp(-ka*t)
	} else {
		conc = scale * (math.Exp(-ke*t) - math.Exp(-ka*t)) / (ka - ke)
	}
	return math.Max(0, conc)
}

// trapezoidalAUC integrates the hourly series with the trapezoidal rule.
func trapezoidalAUC(points []models.ConcentrationPoint) float64 {
	auc := 0.0
	for i := 1; i < len(points); i++ {
		dt := points[i].TimeHour - points[i-1].TimeHour
		auc += (points[i-1].Concentration + points[i].Concentration) / 2 * dt
	}
	return auc
}
