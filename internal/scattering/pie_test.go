package scattering_test

import (
	"math"
	"testing"

	"github.com/ctessum/sparse"
	"github.com/gonum/floats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildstyl3r/escat/internal/constants"
	"github.com/wildstyl3r/escat/internal/scattering"
	"github.com/wildstyl3r/escat/internal/transport"
)

func newPIE(t *testing.T) (*scattering.Piezoelectric, *transport.State) {
	t.Helper()
	state := testState(false)
	piezo, dielectric := 0.5, 10.
	props := &scattering.MaterialProperties{
		PiezoelectricCoefficient: &piezo,
		StaticDielectric:         &dielectric,
	}
	mechanism, err := scattering.NewPiezoelectric(props, state, nil)
	require.NoError(t, err)
	return mechanism, state
}

// TestPiezoelectric_TemperatureLinear: prefactor(T2)/prefactor(T1) == T2/T1
// at fixed doping.
func TestPiezoelectric_TemperatureLinear(t *testing.T) {
	mechanism, state := newPIE(t)
	prefactor, err := mechanism.Prefactor(transport.SpinUp, 0)
	require.NoError(t, err)
	require.Equal(t, []int{2, 2}, prefactor.Shape)

	for n := range state.Doping {
		ratio := prefactor.Get(n, 1) / prefactor.Get(n, 0)
		want := state.Temperatures[1] / state.Temperatures[0]
		assert.True(t, floats.EqualWithinAbsOrRel(ratio, want, 0, 1e-12),
			"T ratio %g, want %g", ratio, want)
	}
}

// TestPiezoelectric_ClosedForm checks the prefactor by direct substitution
// of P = 0.5 C m^-2, eps_s = 10.
func TestPiezoelectric_ClosedForm(t *testing.T) {
	mechanism, state := newPIE(t)
	prefactor, err := mechanism.Prefactor(transport.SpinUp, 0)
	require.NoError(t, err)

	e := constants.ElectronCharge
	scalar := (1.e9 / e) * e * e * constants.KBolzmannEV * 0.5 * 0.5 /
		(4. * math.Pi * math.Pi * constants.HBarEVs * constants.FreeSpacePermittivityE0 * 10.)
	for tIdx, temp := range state.Temperatures {
		got := prefactor.Get(0, tIdx)
		assert.True(t, floats.EqualWithinAbsOrRel(got, scalar*temp, 0, 1e-12),
			"prefactor %g, want %g", got, scalar*temp)
	}
}

func TestPiezoelectric_BandIndependent(t *testing.T) {
	mechanism, _ := newPIE(t)
	a, err := mechanism.Prefactor(transport.SpinUp, 0)
	require.NoError(t, err)
	b, err := mechanism.Prefactor(transport.SpinUp, 3)
	require.NoError(t, err)
	assert.Equal(t, a.Elements, b.Elements)
}

// TestPiezoelectric_FactorInverseQSq: 1/q^2 tiled over doping and
// temperature; an exact zero diverges to +Inf and is propagated.
func TestPiezoelectric_FactorInverseQSq(t *testing.T) {
	mechanism, _ := newPIE(t)

	qSq := sparse.ZerosDense(3)
	qSq.Elements[0] = 0.25
	qSq.Elements[1] = 4.
	qSq.Elements[2] = 0.
	factor := mechanism.Factor(qSq)
	require.Equal(t, []int{2, 2, 3}, factor.Shape)

	for n := 0; n < 2; n++ {
		for tIdx := 0; tIdx < 2; tIdx++ {
			assert.Equal(t, 4., factor.Get(n, tIdx, 0))
			assert.Equal(t, 0.25, factor.Get(n, tIdx, 1))
			assert.True(t, math.IsInf(factor.Get(n, tIdx, 2), 1))
		}
	}
}

func TestPiezoelectric_MissingProperty(t *testing.T) {
	state := testState(false)
	piezo := 0.5
	props := &scattering.MaterialProperties{PiezoelectricCoefficient: &piezo}
	_, err := scattering.NewPiezoelectric(props, state, nil)
	assert.Error(t, err)
}
