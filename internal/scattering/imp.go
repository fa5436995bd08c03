package scattering

import (
	"math"

	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"

	"github.com/wildstyl3r/escat/internal/constants"
	"github.com/wildstyl3r/escat/internal/transport"
)

// IonizedImpurity is elastic scattering off charged dopants in the
// Brooks-Herring model: a Coulomb potential screened by free carriers.
type IonizedImpurity struct {
	base

	// inverse screening length squared, (ndoping, ntemperatures) [bohr^-2]
	screening *sparse.DenseArray

	// cached strength, (ndoping, ntemperatures); band and spin independent
	prefactor *sparse.DenseArray
}

// NewIonizedImpurity precomputes the screening lengths and the impurity
// concentration N_ii = |n_e| Z_d^2 + |n_h| Z_a^2 for every (doping,
// temperature) pair, and logs both per pair at debug level.
func NewIonizedImpurity(props *MaterialProperties, state *transport.State, log logrus.FieldLogger) (*IonizedImpurity, error) {
	b, err := newBase(IMP, props, state, log)
	if err != nil {
		return nil, err
	}
	m := &IonizedImpurity{base: b}
	m.log.Debug("Initializing IMP scattering")

	staticDielectric := *props.StaticDielectric
	donor := *props.DonorCharge
	acceptor := *props.AcceptorCharge

	m.screening = InverseScreeningLengthSq(state, staticDielectric)
	m.prefactor = m.grid()

	const perBohr3ToPerCm3 = 1. / (constants.BohrToCm * constants.BohrToCm * constants.BohrToCm)
	for n := range m.doping {
		for t, temp := range m.temperatures {
			nConc := math.Abs(state.ElectronConc.Get(n, t))
			pConc := math.Abs(state.HoleConc.Get(n, t))
			impurityConcentration := nConc*donor*donor + pConc*acceptor*acceptor
			m.prefactor.Set(impurityConcentration*
				(4.*math.Pi)*(4.*math.Pi)*constants.Second/
				(staticDielectric*staticDielectric), n, t)
			m.log.WithFields(logrus.Fields{"mechanism": IMP}).Debugf(
				"%3.2e cm⁻³ & %g K: β² = %4.3e a₀⁻², Nᵢᵢ = %4.3e cm⁻³",
				m.doping[n]*perBohr3ToPerCm3, temp,
				m.screening.Get(n, t),
				impurityConcentration*perBohr3ToPerCm3)
		}
	}
	return m, nil
}

// InverseScreeningLengthSq exposes the cached screening array; the caller
// must not modify it.
func (m *IonizedImpurity) InverseScreeningLengthSq() *sparse.DenseArray {
	return m.screening
}

func (m *IonizedImpurity) Prefactor(spin transport.Spin, bandIdx int) (*sparse.DenseArray, error) {
	if err := m.checkBand(spin, bandIdx); err != nil {
		return nil, err
	}
	return m.prefactor, nil
}

// Factor is the screened Coulomb form 1 / (q² + β²[n,t])².
func (m *IonizedImpurity) Factor(qSq *sparse.DenseArray) *sparse.DenseArray {
	out := m.extended(qSq)
	nq := len(qSq.Elements)
	for n := range m.doping {
		for t := range m.temperatures {
			beta := m.screening.Get(n, t)
			offset := (n*len(m.temperatures) + t) * nq
			for i, q := range qSq.Elements {
				screened := q + beta
				out.Elements[offset+i] = 1. / (screened * screened)
			}
		}
	}
	return out
}
