package scattering_test

import (
	"github.com/ctessum/sparse"

	"github.com/wildstyl3r/escat/internal/scattering"
	"github.com/wildstyl3r/escat/internal/transport"
)

// testState builds a small snapshot: 2 doping levels, temperatures 300 and
// 600 K, one spin channel with 4 bands on 3 k-points and the valence band
// at index 1, a flat DOS of 10 states/Ha on [-0.5, 0.5] Ha and a 1000 bohr^3
// cell.
func testState(metal bool) *transport.State {
	const nDOS = 101
	dos := transport.DOS{
		Energies: make([]float64, nDOS),
		Total:    make([]float64, nDOS),
	}
	for i := range dos.Energies {
		dos.Energies[i] = -0.5 + float64(i)/float64(nDOS-1)
		dos.Total[i] = 10.
	}

	fermi := sparse.ZerosDense(2, 2) // all at 0 Ha, mid-gap
	electron := sparse.ZerosDense(2, 2)
	hole := sparse.ZerosDense(2, 2)
	for n := 0; n < 2; n++ {
		for t := 0; t < 2; t++ {
			electron.Set(1.e-9*float64(n+1), n, t)
			hole.Set(2.e-10*float64(t+1), n, t)
		}
	}

	return &transport.State{
		Doping:       []float64{-1.48e-9, 1.48e-8}, // ~1e16, 1e17 cm^-3
		Temperatures: []float64{300., 600.},
		Energies: map[transport.Spin]*sparse.DenseArray{
			transport.SpinUp: sparse.ZerosDense(4, 3),
		},
		FermiLevels:  fermi,
		ElectronConc: electron,
		HoleConc:     hole,
		DOS:          dos,
		Structure:    transport.Structure{Volume: 1000.},
		IsMetal:      metal,
		VBIdx:        map[transport.Spin]int{transport.SpinUp: 1},
	}
}

func fullProperties() *scattering.MaterialProperties {
	deformation := scattering.Pair(5., 7.)
	elastic := 150.
	acceptor := 1.
	donor := 2.
	dielectric := 10.
	piezo := 0.5
	return &scattering.MaterialProperties{
		DeformationPotential:     &deformation,
		ElasticConstant:          &elastic,
		AcceptorCharge:           &acceptor,
		DonorCharge:              &donor,
		StaticDielectric:         &dielectric,
		PiezoelectricCoefficient: &piezo,
	}
}
