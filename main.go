package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/ctessum/sparse"
	"github.com/facette/natsort"
	"github.com/sirupsen/logrus"

	"github.com/wildstyl3r/escat/internal/config"
	"github.com/wildstyl3r/escat/internal/constants"
	"github.com/wildstyl3r/escat/internal/rates"
	"github.com/wildstyl3r/escat/internal/scattering"
	"github.com/wildstyl3r/escat/internal/transport"
	"github.com/wildstyl3r/escat/internal/utils"
)

func main() {
	var configFileNamePointer = flag.String("input", "rates.toml", "run configuration in toml format")
	var verbose = flag.Bool("v", false, "log per-(doping, temperature) screening diagnostics")
	var threads = flag.Int("threads", 0, "prefactor worker count (0 = GOMAXPROCS)")
	var saveTotal = flag.Bool("total", true, "save the rate summed over mechanisms")
	flag.Parse()

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	startTime := time.Now()
	fmt.Printf("Current time: %s\n", startTime.UTC().Format(time.UnixDate))

	cfg, err := config.Load(*configFileNamePointer)
	if err != nil {
		log.Fatal(err)
	}
	if *threads == 0 {
		*threads = cfg.Threads
	}

	outputPath := ""
	if cfg.OutputDir != "" && cfg.OutputDir != "." {
		os.MkdirAll(cfg.OutputDir, 0750)
		outputPath = cfg.OutputDir + "/"
	}

	modelNames := make([]string, 0, len(cfg.Models))
	for name := range cfg.Models {
		modelNames = append(modelNames, name)
	}
	sort.Slice(modelNames, func(i, j int) bool {
		return natsort.Compare(modelNames[i], modelNames[j])
	})

	for _, modelName := range modelNames {
		model := cfg.Models[modelName]
		fmt.Println("\n" + modelName)

		state, err := model.State()
		if err != nil {
			log.Errorf("%s: %v", modelName, err)
			continue
		}
		q, qSq, err := model.QGrid()
		if err != nil {
			log.Errorf("%s: %v", modelName, err)
			continue
		}

		names := scattering.Available(&model.Materials)
		if len(names) == 0 {
			log.Warnf("%s: no mechanism has all its material properties set", modelName)
			continue
		}
		mechanisms := make([]scattering.Mechanism, 0, len(names))
		for _, name := range names {
			mechanism, err := scattering.New(name, &model.Materials, state, log)
			if err != nil {
				log.Fatalf("%s: %v", modelName, err)
			}
			mechanisms = append(mechanisms, mechanism)
		}

		contributions, err := rates.Elastic(state, mechanisms, qSq, *threads)
		if err != nil {
			log.Fatalf("%s: %v", modelName, err)
		}

		for name, perSpin := range contributions {
			meanRate := 0.
			for _, arr := range perSpin {
				meanRate += utils.Average(arr.Elements)
			}
			log.WithFields(logrus.Fields{
				"model":     modelName,
				"mechanism": name,
			}).Infof("mean elastic rate contribution: %4.3e au", meanRate/float64(len(perSpin)))

			if err := saveRates(state, q, perSpin, cfg.MakeDir, outputPath, modelName, name); err != nil {
				log.Error(err)
			}
		}

		if *saveTotal {
			total, err := rates.Total(contributions)
			if err != nil {
				log.Fatalf("%s: %v", modelName, err)
			}
			if err := saveRates(state, q, total, cfg.MakeDir, outputPath, modelName, "total"); err != nil {
				log.Error(err)
			}
		}
	}
	fmt.Printf("Elapsed time: %v\n", time.Since(startTime))
}

// saveRates writes one CSV per model and mechanism: the momentum transfer
// norm followed by the band-averaged rate contribution for every
// (spin, doping, temperature) column.
func saveRates(state *transport.State, q []float64, perSpin map[transport.Spin]*sparse.DenseArray, makeDir bool, outputPath, modelName, mechanism string) error {
	const perBohr3ToPerCm3 = 1. / (constants.BohrToCm * constants.BohrToCm * constants.BohrToCm)

	columns := []string{"q (a0^-1)"}
	spins := state.Spins()
	for _, spin := range spins {
		for n := range state.Doping {
			for t := range state.Temperatures {
				columns = append(columns, fmt.Sprintf("%v %3.2e cm^-3 %g K (au)",
					spin, state.Doping[n]*perBohr3ToPerCm3, state.Temperatures[t]))
			}
		}
	}

	data := make(utils.CSV, len(q))
	ndop, ntemp, nq := len(state.Doping), len(state.Temperatures), len(q)
	for k := range q {
		row := []string{strconv.FormatFloat(q[k], 'f', -1, 64)}
		for _, spin := range spins {
			arr := perSpin[spin]
			nbands := arr.Shape[0]
			for n := 0; n < ndop; n++ {
				for t := 0; t < ntemp; t++ {
					avg := 0.
					for b := 0; b < nbands; b++ {
						avg += arr.Elements[((b*ndop+n)*ntemp+t)*nq+k]
					}
					avg /= float64(nbands)
					row = append(row, strconv.FormatFloat(avg, 'e', 6, 64))
				}
			}
		}
		data[k] = row
	}

	subpath, filename := "", modelName+"_"+mechanism
	if makeDir {
		subpath, filename = modelName, mechanism
	}
	return utils.WriteAsCSV(data, makeDir, outputPath, subpath, filename, columns)
}
