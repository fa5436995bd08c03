// Package scattering implements elastic electron-scattering mechanisms:
// acoustic deformation potential (ADP), ionized impurity (IMP) and
// piezoelectric (PIE). Each mechanism yields a doping/temperature-dependent
// strength via Prefactor and a momentum-transfer form factor via Factor;
// callers combine the two elementwise into a scattering rate contribution.
package scattering

import (
	"fmt"
	"sort"

	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"

	"github.com/wildstyl3r/escat/internal/transport"
)

// Mechanism names, used to select mechanisms from a run configuration.
const (
	ADP = "ADP"
	IMP = "IMP"
	PIE = "PIE"
)

// Mechanism is an elastic scattering channel. Implementations are immutable
// after construction; Prefactor and Factor are pure.
type Mechanism interface {
	Name() string

	// RequiredProperties lists the material property keys the mechanism
	// needs; construction fails with *MissingPropertyError when one is
	// absent.
	RequiredProperties() []string

	// Prefactor returns the scattering strength for one band of one spin
	// channel with shape (ndoping, ntemperatures), in atomic units.
	// bandIdx must lie in [0, nbands) for that spin. The returned array is
	// owned by the mechanism and must not be modified.
	Prefactor(spin transport.Spin, bandIdx int) (*sparse.DenseArray, error)

	// Factor returns the momentum-transfer form factor with shape
	// (ndoping, ntemperatures) + qSq.Shape. qSq holds squared momentum
	// transfer norms [bohr^-2]; zeros may produce infinities for singular
	// mechanisms, which are propagated as-is.
	Factor(qSq *sparse.DenseArray) *sparse.DenseArray
}

// MissingPropertyError reports a required material property that was not
// supplied for a mechanism.
type MissingPropertyError struct {
	Mechanism string
	Property  string
}

func (e *MissingPropertyError) Error() string {
	return fmt.Sprintf("scattering: %s requires material property %q", e.Mechanism, e.Property)
}

// MaterialProperties carries externally supplied material parameters in
// their conventional units. Nil fields are absent.
type MaterialProperties struct {
	DeformationPotential     *ScalarOrPair `toml:"deformation_potential"`     // [eV]; pair = (valence, conduction)
	ElasticConstant          *float64      `toml:"elastic_constant"`          // [GPa]
	AcceptorCharge           *float64      `toml:"acceptor_charge"`           // [e]
	DonorCharge              *float64      `toml:"donor_charge"`              // [e]
	StaticDielectric         *float64      `toml:"static_dielectric"`         // relative
	PiezoelectricCoefficient *float64      `toml:"piezoelectric_coefficient"` // [C m^-2]
}

func (p *MaterialProperties) has(name string) bool {
	switch name {
	case "deformation_potential":
		return p.DeformationPotential != nil
	case "elastic_constant":
		return p.ElasticConstant != nil
	case "acceptor_charge":
		return p.AcceptorCharge != nil
	case "donor_charge":
		return p.DonorCharge != nil
	case "static_dielectric":
		return p.StaticDielectric != nil
	case "piezoelectric_coefficient":
		return p.PiezoelectricCoefficient != nil
	}
	return false
}

var requiredProperties = map[string][]string{
	ADP: {"deformation_potential", "elastic_constant"},
	IMP: {"acceptor_charge", "donor_charge", "static_dielectric"},
	PIE: {"piezoelectric_coefficient", "static_dielectric"},
}

type builder func(*MaterialProperties, *transport.State, logrus.FieldLogger) (Mechanism, error)

var builders = map[string]builder{
	ADP: func(p *MaterialProperties, s *transport.State, log logrus.FieldLogger) (Mechanism, error) {
		return NewAcousticDeformation(p, s, log)
	},
	IMP: func(p *MaterialProperties, s *transport.State, log logrus.FieldLogger) (Mechanism, error) {
		return NewIonizedImpurity(p, s, log)
	},
	PIE: func(p *MaterialProperties, s *transport.State, log logrus.FieldLogger) (Mechanism, error) {
		return NewPiezoelectric(p, s, log)
	},
}

// New constructs the named mechanism. log may be nil, in which case the
// standard logger receives construction diagnostics.
func New(name string, props *MaterialProperties, state *transport.State, log logrus.FieldLogger) (Mechanism, error) {
	build, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("scattering: unknown mechanism %q; valid options are ADP, IMP and PIE", name)
	}
	return build(props, state, log)
}

// Available returns the names of every mechanism whose required properties
// are all present, sorted alphabetically.
func Available(props *MaterialProperties) []string {
	var names []string
	for name, required := range requiredProperties {
		ok := true
		for _, property := range required {
			if !props.has(property) {
				ok = false
				break
			}
		}
		if ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// base carries the grids shared by every mechanism.
type base struct {
	name         string
	doping       []float64
	temperatures []float64
	nbands       map[transport.Spin]int
	spins        []transport.Spin
	log          logrus.FieldLogger
}

func newBase(name string, props *MaterialProperties, state *transport.State, log logrus.FieldLogger) (base, error) {
	for _, property := range requiredProperties[name] {
		if !props.has(property) {
			return base{}, &MissingPropertyError{Mechanism: name, Property: property}
		}
	}
	if err := state.Validate(); err != nil {
		return base{}, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	spins := state.Spins()
	nbands := make(map[transport.Spin]int, len(spins))
	for _, spin := range spins {
		nbands[spin] = state.NBands(spin)
	}
	return base{
		name:         name,
		doping:       state.Doping,
		temperatures: state.Temperatures,
		nbands:       nbands,
		spins:        spins,
		log:          log,
	}, nil
}

func (b *base) Name() string {
	return b.name
}

func (b *base) RequiredProperties() []string {
	return requiredProperties[b.name]
}

func (b *base) checkBand(spin transport.Spin, bandIdx int) error {
	n, ok := b.nbands[spin]
	if !ok {
		return fmt.Errorf("scattering: %s: no spin channel %v", b.name, spin)
	}
	if bandIdx < 0 || bandIdx >= n {
		return fmt.Errorf("scattering: %s: band index %d out of range for spin %v (%d bands)", b.name, bandIdx, spin, n)
	}
	return nil
}

// grid allocates a zeroed (ndoping, ntemperatures) array.
func (b *base) grid() *sparse.DenseArray {
	return sparse.ZerosDense(len(b.doping), len(b.temperatures))
}

// extended allocates a zeroed (ndoping, ntemperatures) + qSq.Shape array.
func (b *base) extended(qSq *sparse.DenseArray) *sparse.DenseArray {
	shape := make([]int, 0, 2+len(qSq.Shape))
	shape = append(shape, len(b.doping), len(b.temperatures))
	shape = append(shape, qSq.Shape...)
	return sparse.ZerosDense(shape...)
}
