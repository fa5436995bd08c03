package scattering

import (
	"math"

	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"

	"github.com/wildstyl3r/escat/internal/constants"
	"github.com/wildstyl3r/escat/internal/transport"
)

// Piezoelectric is elastic scattering from the lattice polarization that
// acoustic strain induces in non-centrosymmetric crystals. The form factor
// diverges as q → 0; the divergence is physical and propagated unguarded.
type Piezoelectric struct {
	base

	// temperature-independent strength [au / K]
	prefactor float64
}

func NewPiezoelectric(props *MaterialProperties, state *transport.State, log logrus.FieldLogger) (*Piezoelectric, error) {
	b, err := newBase(PIE, props, state, log)
	if err != nil {
		return nil, err
	}
	p := &Piezoelectric{base: b}

	piezo := *props.PiezoelectricCoefficient
	// C m^-2 enters squared over the dielectric response; 1e9/e rescales the
	// pressure-like combination to the internal unit system.
	unitConversion := 1.e9 / constants.ElectronCharge
	p.prefactor = unitConversion *
		constants.ElectronCharge * constants.ElectronCharge *
		constants.KBolzmannEV * piezo * piezo /
		(4. * math.Pi * math.Pi * constants.HBarEVs *
			constants.FreeSpacePermittivityE0 * *props.StaticDielectric)
	return p, nil
}

// Prefactor is linear in temperature and independent of band, spin and
// doping; the doping axis is tiled to the common shape.
func (p *Piezoelectric) Prefactor(spin transport.Spin, bandIdx int) (*sparse.DenseArray, error) {
	if err := p.checkBand(spin, bandIdx); err != nil {
		return nil, err
	}
	out := p.grid()
	for n := range p.doping {
		for t, temp := range p.temperatures {
			out.Set(p.prefactor*temp, n, t)
		}
	}
	return out, nil
}

// Factor is 1/q², tiled over doping and temperature. Exact zeros in qSq
// produce +Inf.
func (p *Piezoelectric) Factor(qSq *sparse.DenseArray) *sparse.DenseArray {
	out := p.extended(qSq)
	nq := len(qSq.Elements)
	for n := range p.doping {
		for t := range p.temperatures {
			offset := (n*len(p.temperatures) + t) * nq
			for i, q := range qSq.Elements {
				out.Elements[offset+i] = 1. / q
			}
		}
	}
	return out
}
