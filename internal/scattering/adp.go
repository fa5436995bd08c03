package scattering

import (
	"math"

	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"

	"github.com/wildstyl3r/escat/internal/constants"
	"github.com/wildstyl3r/escat/internal/transport"
	"github.com/wildstyl3r/escat/internal/utils"
)

// AcousticDeformation is elastic scattering of electrons by acoustic
// phonons in the deformation potential approximation. The rate is
// isotropic in momentum transfer and linear in temperature.
type AcousticDeformation struct {
	base
	isMetal bool
	vbIdx   map[transport.Spin]int

	// deformation potential(s) [Ha]: scalar for metals, (valence,
	// conduction) for semiconductors.
	deformation ScalarOrPair

	// temperature- and deformation-independent part of the prefactor,
	// [au / K].
	prefactor float64
}

// NewAcousticDeformation converts the deformation potential(s) to atomic
// units and resolves the scalar/pair form against the metallic flag:
// a mismatch falls back with a warning rather than failing.
func NewAcousticDeformation(props *MaterialProperties, state *transport.State, log logrus.FieldLogger) (*AcousticDeformation, error) {
	b, err := newBase(ADP, props, state, log)
	if err != nil {
		return nil, err
	}
	a := &AcousticDeformation{
		base:    b,
		isMetal: state.IsMetal,
		vbIdx:   state.VBIdx,
	}
	a.prefactor = constants.KBolzmannAU * constants.Second /
		(4. * math.Pi * math.Pi * *props.ElasticConstant * constants.GPaToAU)

	d := *props.DeformationPotential
	switch {
	case a.isMetal && d.IsPair():
		a.log.Warn("system is metallic but deformation potentials for both " +
			"the valence and conduction bands have been set... using the " +
			"valence band potential for all bands")
		a.deformation = Scalar(utils.EV2Ha(d.First()))
	case a.isMetal:
		a.deformation = Scalar(utils.EV2Ha(d.First()))
	case !d.IsPair():
		a.log.Warn("system is semiconducting but only one deformation " +
			"potential has been set... using this potential for all bands")
		a.deformation = Pair(utils.EV2Ha(d.First()), utils.EV2Ha(d.First()))
	default:
		a.deformation = Pair(utils.EV2Ha(d.First()), utils.EV2Ha(d.Second()))
	}
	return a, nil
}

// Prefactor selects the valence or conduction deformation potential by
// comparing bandIdx against the valence band index of the spin channel;
// metals use a single potential for every band.
func (a *AcousticDeformation) Prefactor(spin transport.Spin, bandIdx int) (*sparse.DenseArray, error) {
	if err := a.checkBand(spin, bandIdx); err != nil {
		return nil, err
	}
	d := a.deformation.First()
	if !a.isMetal && bandIdx > a.vbIdx[spin] {
		d = a.deformation.Second()
	}
	out := a.grid()
	for n := range a.doping {
		for t, temp := range a.temperatures {
			out.Set(a.prefactor*temp*d*d, n, t)
		}
	}
	return out, nil
}

// Factor is identically 1: acoustic deformation potential scattering has no
// momentum-transfer dependence.
func (a *AcousticDeformation) Factor(qSq *sparse.DenseArray) *sparse.DenseArray {
	out := a.extended(qSq)
	for i := range out.Elements {
		out.Elements[i] = 1.
	}
	return out
}
