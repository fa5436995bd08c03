package scattering

import (
	"math"
	"sync"

	"github.com/ctessum/sparse"

	"github.com/wildstyl3r/escat/internal/constants"
	"github.com/wildstyl3r/escat/internal/transport"
	"github.com/wildstyl3r/escat/internal/utils"
)

// FermiDirac is the electron occupation at the given energy for Fermi level
// fermi and thermal energy kT, all in the same units. kT = 0 yields a step
// function with a NaN exactly at the Fermi level.
func FermiDirac(energy, fermi, kT float64) float64 {
	return 1. / (1. + math.Exp((energy-fermi)/kT))
}

// InverseScreeningLengthSq computes the free-carrier inverse screening
// length squared, shape (ndoping, ntemperatures), [bohr^-2], from the
// Fermi-Dirac weighted density of states:
//
//	beta^2[n,t] = 4 pi / (eps_s kB T V) * Int dos(E) f(E) (1 - f(E)) dE
//
// Each (doping, temperature) entry is independent; rows are evaluated
// concurrently. A zero temperature divides by zero and propagates NaN/Inf
// rather than being guarded.
func InverseScreeningLengthSq(state *transport.State, staticDielectric float64) *sparse.DenseArray {
	out := sparse.ZerosDense(len(state.Doping), len(state.Temperatures))
	energies := state.DOS.Energies
	tdos := state.DOS.Total
	volume := state.Structure.Volume

	var wg sync.WaitGroup
	for n := range state.Doping {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			integrand := make([]float64, len(energies))
			for t, temp := range state.Temperatures {
				fermi := state.FermiLevels.Get(n, t)
				kT := constants.KBolzmannAU * temp
				for i, energy := range energies {
					f := FermiDirac(energy, fermi, kT)
					integrand[i] = tdos[i] * f * (1. - f)
				}
				integral := utils.Trapz(integrand, energies)
				out.Set(integral*4.*math.Pi/
					(staticDielectric*constants.KBolzmannAU*temp*volume), n, t)
			}
		}(n)
	}
	wg.Wait()
	return out
}
