// Package transport holds the read-only electronic-structure snapshot that
// scattering mechanisms are built against: doping and temperature grids,
// band energies, self-consistent Fermi levels, carrier concentrations and
// the density of states, all in Hartree atomic units.
package transport

import (
	"fmt"
	"sort"

	"github.com/ctessum/sparse"
)

type Spin int

const (
	SpinUp Spin = iota
	SpinDown
)

func (s Spin) String() string {
	switch s {
	case SpinUp:
		return "up"
	case SpinDown:
		return "down"
	}
	return fmt.Sprintf("spin(%d)", int(s))
}

// DOS is the total density of states tabulated on an energy grid.
type DOS struct {
	Energies []float64 // [Ha]
	Total    []float64 // [states / Ha / cell]
}

type Structure struct {
	Lattice [3][3]float64 // row vectors [bohr]
	Volume  float64       // [bohr^3]
}

// State is immutable once constructed; mechanisms keep references into it.
type State struct {
	Doping       []float64 // [bohr^-3], signed (negative = electrons)
	Temperatures []float64 // [K]

	// Energies holds band energies per spin channel with shape
	// (nbands, nkpoints), [Ha].
	Energies map[Spin]*sparse.DenseArray

	// (ndoping, ntemperatures) each.
	FermiLevels  *sparse.DenseArray // [Ha]
	ElectronConc *sparse.DenseArray // [bohr^-3]
	HoleConc     *sparse.DenseArray // [bohr^-3]

	DOS       DOS
	Structure Structure

	IsMetal bool
	// VBIdx is the index of the highest valence band per spin channel.
	// Unused for metals.
	VBIdx map[Spin]int
}

// ShapeMismatchError reports arrays whose dimensions disagree with the
// doping/temperature/band grids of the snapshot.
type ShapeMismatchError struct {
	Context string
	Want    []int
	Got     []int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("transport: %s: shape mismatch: want %v, got %v", e.Context, e.Want, e.Got)
}

func (s *State) Spins() []Spin {
	spins := make([]Spin, 0, len(s.Energies))
	for spin := range s.Energies {
		spins = append(spins, spin)
	}
	sort.Slice(spins, func(i, j int) bool { return spins[i] < spins[j] })
	return spins
}

func (s *State) NBands(spin Spin) int {
	if e, ok := s.Energies[spin]; ok {
		return e.Shape[0]
	}
	return 0
}

func (s *State) NKPoints(spin Spin) int {
	if e, ok := s.Energies[spin]; ok {
		return e.Shape[1]
	}
	return 0
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Validate checks the internal consistency of the snapshot. Any failure is
// an input error and aborts the run.
func (s *State) Validate() error {
	if len(s.Doping) == 0 || len(s.Temperatures) == 0 {
		return fmt.Errorf("transport: empty doping or temperature grid")
	}
	if len(s.Energies) == 0 {
		return fmt.Errorf("transport: no spin channels")
	}
	want := []int{len(s.Doping), len(s.Temperatures)}
	for name, arr := range map[string]*sparse.DenseArray{
		"fermi levels":            s.FermiLevels,
		"electron concentrations": s.ElectronConc,
		"hole concentrations":     s.HoleConc,
	} {
		if arr == nil {
			return fmt.Errorf("transport: missing %s", name)
		}
		if !sameShape(arr.Shape, want) {
			return &ShapeMismatchError{Context: name, Want: want, Got: arr.Shape}
		}
	}
	for spin, energies := range s.Energies {
		if len(energies.Shape) != 2 || energies.Shape[0] == 0 || energies.Shape[1] == 0 {
			return &ShapeMismatchError{Context: fmt.Sprintf("band energies (spin %v)", spin), Want: []int{-1, -1}, Got: energies.Shape}
		}
		if !s.IsMetal {
			if _, ok := s.VBIdx[spin]; !ok {
				return fmt.Errorf("transport: semiconducting system lacks valence band index for spin %v", spin)
			}
		}
	}
	if len(s.DOS.Energies) != len(s.DOS.Total) {
		return &ShapeMismatchError{Context: "density of states", Want: []int{len(s.DOS.Energies)}, Got: []int{len(s.DOS.Total)}}
	}
	if len(s.DOS.Energies) < 2 {
		return fmt.Errorf("transport: density of states grid needs at least 2 points")
	}
	if s.Structure.Volume <= 0 {
		return fmt.Errorf("transport: non-positive cell volume %g", s.Structure.Volume)
	}
	return nil
}
