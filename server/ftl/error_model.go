package ftl

import (
	"math"

	"github.com/shopspring/decimal"
)

// ErrorModelParams bundles the analytic retention-error coefficients. Field
// names mirror the FTL_CONFIG error-modeling keys; see config_keys.go.
type ErrorModelParams struct {
	Temperature float64 // Celsius
	Ea          float64 // activation energy term feeding the Arrhenius factor
	Epsilon     float64 // floor RBER
	Alpha       float64 // retention/erase-count term scale
	Beta        float64 // layer-index term scale
	Gamma       float64 // layer-index linear coefficient
	KTerm       float64 // log10(RBER) intercept
	MTerm       float64 // log10(retention) exponent
	NTerm       float64 // log10(erase count) exponent
	Sigma       float64 // deterministic margin added to the prediction
	PageSize    uint32
	Seed        uint32
}

// ErrorModel is a pure function of (retention, eraseCount, layerIndex) and
// deliberately carries no RNG state: the reference's literal analytic form
// was not among the retained original source files, so this is a documented
// reconstruction (boltzmann-style
// Arrhenius acceleration times a log-linear retention/endurance term). The
// Arrhenius factor is exp(-Ea/kT) in absolute terms, so with Ea = 0.6 eV at
// 40 C (the ftltest scenario coefficients) it is about 2e-10 and the
// prediction is dominated by Epsilon and the layer term. Sigma widens
// the prediction deterministically rather than through a stochastic draw,
// so two calls with identical inputs always agree -- required for the
// refresh scheduler's enrolment math to be reproducible.
type ErrorModel struct {
	p ErrorModelParams
}

// boltzmannEV is Boltzmann's constant in eV/K, used for the Arrhenius term.
const boltzmannEV = 8.617333262e-5

func NewErrorModel(p ErrorModelParams) *ErrorModel {
	return &ErrorModel{p: p}
}

func (m *ErrorModel) arrheniusFactor() float64 {
	kelvin := m.p.Temperature + 273.15
	if kelvin <= 0 {
		kelvin = 1
	}
	return math.Exp(-m.p.Ea / (boltzmannEV * kelvin))
}

// Rber predicts the raw bit error rate after retaining data for retentionNs
// nanoseconds on a block with the given eraseCount, at the given layerIndex.
func (m *ErrorModel) Rber(retentionNs uint64, eraseCount uint64, layerIndex uint32) float32 {
	retentionHours := float64(retentionNs) / 3.6e12
	if retentionHours < 1e-9 {
		retentionHours = 1e-9
	}
	ec := float64(eraseCount) + 1

	log10Rber := m.p.KTerm + m.p.MTerm*math.Log10(retentionHours) + m.p.NTerm*math.Log10(ec)
	base := math.Pow(10, log10Rber)

	value := m.p.Epsilon + m.p.Alpha*base*m.arrheniusFactor() + m.p.Beta*m.p.Gamma*float64(layerIndex) + m.p.Sigma
	if value < 0 {
		value = 0
	}

	// Round to a fixed decimal precision so the result is identical across
	// platforms/float environments -- the refresh scheduler's enrolment
	// horizon selection depends on stable threshold comparisons.
	rounded, _ := decimal.NewFromFloat(value).Round(12).Float64()
	return float32(rounded)
}
