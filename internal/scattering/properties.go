package scattering

import "fmt"

// ScalarOrPair holds either a single value or a (valence, conduction) pair,
// matching the two accepted forms of the deformation potential.
type ScalarOrPair struct {
	vals []float64
}

func Scalar(v float64) ScalarOrPair {
	return ScalarOrPair{vals: []float64{v}}
}

func Pair(valence, conduction float64) ScalarOrPair {
	return ScalarOrPair{vals: []float64{valence, conduction}}
}

func (s ScalarOrPair) IsPair() bool {
	return len(s.vals) == 2
}

// First returns the scalar value, or the valence value of a pair.
func (s ScalarOrPair) First() float64 {
	return s.vals[0]
}

// Second returns the conduction value of a pair, or the scalar value.
func (s ScalarOrPair) Second() float64 {
	return s.vals[len(s.vals)-1]
}

// UnmarshalTOML accepts `x = 8.6` and `x = [8.6, 9.1]`.
func (s *ScalarOrPair) UnmarshalTOML(data interface{}) error {
	switch v := data.(type) {
	case float64:
		s.vals = []float64{v}
		return nil
	case int64:
		s.vals = []float64{float64(v)}
		return nil
	case []interface{}:
		if len(v) != 2 {
			return fmt.Errorf("expected 2 values, got %d", len(v))
		}
		s.vals = make([]float64, 2)
		for i := range v {
			switch e := v[i].(type) {
			case float64:
				s.vals[i] = e
			case int64:
				s.vals[i] = float64(e)
			default:
				return fmt.Errorf("expected a number, got %T", v[i])
			}
		}
		return nil
	}
	return fmt.Errorf("expected a number or a pair of numbers, got %T", data)
}
