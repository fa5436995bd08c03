// Package rates assembles elastic scattering rate contributions by
// combining each mechanism's Prefactor and Factor over bands and k-points.
package rates

import (
	"runtime"
	"sync"

	"github.com/ctessum/sparse"
	"github.com/gonum/floats"

	"github.com/wildstyl3r/escat/internal/scattering"
	"github.com/wildstyl3r/escat/internal/transport"
)

// Contributions maps mechanism name -> spin channel -> rate contribution
// with shape (nbands, ndoping, ntemperatures) + qSq.Shape.
type Contributions map[string]map[transport.Spin]*sparse.DenseArray

// Elastic evaluates every mechanism on the squared momentum-transfer grid
// qSq. The form factor is band independent and computed once per mechanism;
// band prefactors are evaluated on a worker pool of the given size
// (<= 0 selects GOMAXPROCS workers).
func Elastic(state *transport.State, mechanisms []scattering.Mechanism, qSq *sparse.DenseArray, threads int) (Contributions, error) {
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	ndop, ntemp := len(state.Doping), len(state.Temperatures)
	nq := len(qSq.Elements)

	out := make(Contributions, len(mechanisms))
	for _, mechanism := range mechanisms {
		factor := mechanism.Factor(qSq)
		wantShape := append([]int{ndop, ntemp}, qSq.Shape...)
		if len(factor.Elements) != ndop*ntemp*nq {
			return nil, &transport.ShapeMismatchError{
				Context: mechanism.Name() + " form factor",
				Want:    wantShape,
				Got:     factor.Shape,
			}
		}

		perSpin := make(map[transport.Spin]*sparse.DenseArray, len(state.Spins()))
		for _, spin := range state.Spins() {
			nbands := state.NBands(spin)
			arr := sparse.ZerosDense(append([]int{nbands}, wantShape...)...)

			bands := make(chan int)
			var wg sync.WaitGroup
			var mu sync.Mutex
			var firstErr error
			for w := 0; w < threads; w++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for band := range bands {
						prefactor, err := mechanism.Prefactor(spin, band)
						if err != nil {
							mu.Lock()
							if firstErr == nil {
								firstErr = err
							}
							mu.Unlock()
							continue
						}
						for n := 0; n < ndop; n++ {
							for t := 0; t < ntemp; t++ {
								p := prefactor.Get(n, t)
								src := (n*ntemp + t) * nq
								dst := ((band*ndop+n)*ntemp + t) * nq
								for i := 0; i < nq; i++ {
									arr.Elements[dst+i] = p * factor.Elements[src+i]
								}
							}
						}
					}
				}()
			}
			for band := 0; band < nbands; band++ {
				bands <- band
			}
			close(bands)
			wg.Wait()
			if firstErr != nil {
				return nil, firstErr
			}
			perSpin[spin] = arr
		}
		out[mechanism.Name()] = perSpin
	}
	return out, nil
}

// Total sums the mechanism contributions elementwise per spin channel
// (Matthiessen's rule for independent elastic channels).
func Total(parts Contributions) (map[transport.Spin]*sparse.DenseArray, error) {
	total := make(map[transport.Spin]*sparse.DenseArray)
	for name, perSpin := range parts {
		for spin, arr := range perSpin {
			acc, ok := total[spin]
			if !ok {
				acc = sparse.ZerosDense(arr.Shape...)
				total[spin] = acc
			}
			if len(acc.Elements) != len(arr.Elements) {
				return nil, &transport.ShapeMismatchError{
					Context: name + " contribution",
					Want:    acc.Shape,
					Got:     arr.Shape,
				}
			}
			floats.Add(acc.Elements, arr.Elements)
		}
	}
	return total, nil
}
