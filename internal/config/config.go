// Package config loads run configurations from TOML and converts externally
// supplied units (eV, GPa, C m^-2, cm^-3, Å^3) to atomic units at the
// boundary; everything downstream works in atomic units only.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/ctessum/sparse"

	"github.com/wildstyl3r/escat/internal/constants"
	"github.com/wildstyl3r/escat/internal/scattering"
	"github.com/wildstyl3r/escat/internal/transport"
	"github.com/wildstyl3r/escat/internal/utils"
)

type Config struct {
	OutputDir string
	MakeDir   bool
	Threads   int
	Models    map[string]Model
}

// Model describes one material system: its scattering-relevant properties
// and the transport snapshot arrays.
type Model struct {
	Materials scattering.MaterialProperties `toml:"materials"`

	Doping       []float64   `toml:"doping"`        // [cm^-3], signed
	Temperatures []float64   `toml:"temperatures"`  // [K]
	FermiLevels  [][]float64 `toml:"fermi_levels"`  // [eV], rows = doping, columns = temperatures
	ElectronConc [][]float64 `toml:"electron_conc"` // [cm^-3]
	HoleConc     [][]float64 `toml:"hole_conc"`     // [cm^-3]

	DOSFile string  `toml:"dos_file"` // two columns: energy [eV], total DOS [states/eV]
	Volume  float64 `toml:"volume"`   // [Å^3]

	Metal bool                   `toml:"metal"`
	Bands map[string]BandChannel `toml:"bands"` // keys "up", "down"

	// momentum transfer grid [bohr^-1]
	QMin    float64 `toml:"q_min"`
	QMax    float64 `toml:"q_max"`
	QPoints int     `toml:"q_points"`
}

type BandChannel struct {
	EnergiesFile string `toml:"energies_file"` // rows = bands, columns = k-points [eV]
	VBIdx        int    `toml:"vb_idx"`
}

var spinNames = map[string]transport.Spin{
	"up":   transport.SpinUp,
	"down": transport.SpinDown,
}

func Load(configFileName string) (Config, error) {
	var config Config
	meta, err := toml.DecodeFile(configFileName, &config)
	if err != nil {
		return config, err
	}
	if len(config.Models) == 0 {
		return config, fmt.Errorf("no models provided in %s", configFileName)
	}
	for name := range config.Models {
		model := config.Models[name]
		if !meta.IsDefined("Models", name, "temperatures") {
			model.Temperatures = []float64{300.}
		}
		if !meta.IsDefined("Models", name, "q_min") {
			model.QMin = 0.01
		}
		if !meta.IsDefined("Models", name, "q_max") {
			model.QMax = 1.
		}
		if !meta.IsDefined("Models", name, "q_points") {
			model.QPoints = 100
		}
		config.Models[name] = model
	}
	return config, nil
}

func toDense(rows [][]float64, scale float64, context string) (*sparse.DenseArray, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("config: empty %s", context)
	}
	out := sparse.ZerosDense(len(rows), len(rows[0]))
	for i := range rows {
		if len(rows[i]) != len(rows[0]) {
			return nil, &transport.ShapeMismatchError{
				Context: context,
				Want:    []int{len(rows), len(rows[0])},
				Got:     []int{len(rows), len(rows[i])},
			}
		}
		for j, v := range rows[i] {
			out.Elements[i*len(rows[0])+j] = v * scale
		}
	}
	return out, nil
}

// State converts the model arrays to atomic units, loads the DOS and band
// energy tables and validates the assembled snapshot.
func (m *Model) State() (*transport.State, error) {
	const cm3ToBohr3 = constants.BohrToCm * constants.BohrToCm * constants.BohrToCm

	doping := make([]float64, len(m.Doping))
	for i, d := range m.Doping {
		doping[i] = d * cm3ToBohr3
	}

	fermi, err := toDense(m.FermiLevels, constants.EVToHartree, "fermi levels")
	if err != nil {
		return nil, err
	}
	electron, err := toDense(m.ElectronConc, cm3ToBohr3, "electron concentrations")
	if err != nil {
		return nil, err
	}
	hole, err := toDense(m.HoleConc, cm3ToBohr3, "hole concentrations")
	if err != nil {
		return nil, err
	}

	dosTable, err := utils.ReadFloatPairs(m.DOSFile)
	if err != nil {
		return nil, fmt.Errorf("config: DOS table: %w", err)
	}
	dos := transport.DOS{
		Energies: make([]float64, len(dosTable)),
		Total:    make([]float64, len(dosTable)),
	}
	for i, row := range dosTable {
		dos.Energies[i] = utils.EV2Ha(row[0])
		dos.Total[i] = row[1] / constants.EVToHartree
	}

	energies := make(map[transport.Spin]*sparse.DenseArray, len(m.Bands))
	vbIdx := make(map[transport.Spin]int, len(m.Bands))
	for name, channel := range m.Bands {
		spin, ok := spinNames[name]
		if !ok {
			return nil, fmt.Errorf("config: unknown spin channel %q; valid keys are up and down", name)
		}
		table, err := utils.ReadFloatTable(channel.EnergiesFile)
		if err != nil {
			return nil, fmt.Errorf("config: band energies (spin %v): %w", spin, err)
		}
		bands, err := toDense(table, constants.EVToHartree, fmt.Sprintf("band energies (spin %v)", spin))
		if err != nil {
			return nil, err
		}
		energies[spin] = bands
		vbIdx[spin] = channel.VBIdx
	}

	const ang3ToBohr3 = constants.AngstromToBohr * constants.AngstromToBohr * constants.AngstromToBohr
	state := &transport.State{
		Doping:       doping,
		Temperatures: m.Temperatures,
		Energies:     energies,
		FermiLevels:  fermi,
		ElectronConc: electron,
		HoleConc:     hole,
		DOS:          dos,
		Structure:    transport.Structure{Volume: m.Volume * ang3ToBohr3},
		IsMetal:      m.Metal,
		VBIdx:        vbIdx,
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}
	return state, nil
}

// QGrid returns the momentum transfer norms [bohr^-1] and their squares.
func (m *Model) QGrid() (q []float64, qSq *sparse.DenseArray, err error) {
	if m.QPoints < 2 || m.QMax <= m.QMin {
		return nil, nil, fmt.Errorf("config: degenerate momentum transfer grid [%g, %g] with %d points", m.QMin, m.QMax, m.QPoints)
	}
	q = make([]float64, m.QPoints)
	qSq = sparse.ZerosDense(m.QPoints)
	step := (m.QMax - m.QMin) / float64(m.QPoints-1)
	for i := range q {
		q[i] = m.QMin + float64(i)*step
		qSq.Elements[i] = q[i] * q[i]
	}
	return q, qSq, nil
}
