package utils

import (
	"golang.org/x/exp/constraints"

	"github.com/wildstyl3r/escat/internal/constants"
)

type Number interface {
	constraints.Float | constraints.Integer
}

func SumSlice[T Number](arr []T) (r T) {
	for i := range arr {
		r += arr[i]
	}
	return
}

func Average[T Number](s []T) (mean float64) {
	for i := range s {
		mean += float64(s[i])
	}
	mean /= float64(len(s))
	return
}

// Trapz integrates y over the (possibly non-uniform) grid x.
// len(y) must equal len(x).
func Trapz(y, x []float64) (sum float64) {
	for i := 1; i < len(x); i++ {
		sum += (y[i] + y[i-1]) * (x[i] - x[i-1])
	}
	sum *= 0.5
	return
}

func EV2Ha(val float64) float64 {
	return val * constants.EVToHartree
}

func Ha2eV(val float64) float64 {
	return val / constants.EVToHartree
}
