// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package nucleosome

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// SavGol is a Savitzky-Golay smoothing filter: every output is the value, at
// the output position, of the least-squares polynomial of degree Order fitted
// to the Window samples centered on it.
//
// Near the ends of the sequence there is no centered window.  The first (and
// last) Window/2 outputs are instead read off the polynomial fitted to the
// first (last) Window samples, which matches scipy.signal.savgol_filter's
// default mode='interp'.
type SavGol struct {
	Window int
	Order  int
}

func (sg SavGol) validate() error {
	if sg.Window < 1 || sg.Window%2 == 0 {
		return fmt.Errorf("nucleosome: filter window must be a positive odd number, got %d", sg.Window)
	}
	if sg.Order < 0 || sg.Order >= sg.Window {
		return fmt.Errorf("nucleosome: filter order must be in [0, %d), got %d", sg.Window, sg.Order)
	}
	return nil
}

// projection returns the Window x Window least-squares projection ("hat")
// matrix H = V (V^T V)^-1 V^T of the Vandermonde matrix V of the window
// offsets.  Row r of H maps the Window samples to the fitted polynomial's
// value at offset r; the middle row is the usual convolution kernel.
func (sg SavGol) projection() (*mat.Dense, error) {
	half := sg.Window / 2
	ncol := sg.Order + 1
	v := mat.NewDense(sg.Window, ncol, nil)
	for i := 0; i < sg.Window; i++ {
		// H depends only on the column space of V, so centered offsets are
		// fine.
		x := float64(i - half)
		for j := 0; j < ncol; j++ {
			v.Set(i, j, math.Pow(x, float64(j)))
		}
	}
	var vtv mat.Dense
	vtv.Mul(v.T(), v)
	var inv mat.Dense
	if err := inv.Inverse(&vtv); err != nil {
		return nil, fmt.Errorf("nucleosome: savgol normal equations: %v", err)
	}
	var tmp mat.Dense
	tmp.Mul(v, &inv)
	hat := mat.NewDense(sg.Window, sg.Window, nil)
	hat.Mul(&tmp, v.T())
	return hat, nil
}

// Coefficients returns the convolution kernel used for interior positions.
func (sg SavGol) Coefficients() ([]float64, error) {
	if err := sg.validate(); err != nil {
		return nil, err
	}
	hat, err := sg.projection()
	if err != nil {
		return nil, err
	}
	return mat.Row(nil, sg.Window/2, hat), nil
}

// Filter smooths x.  len(x) must be at least Window.
func (sg SavGol) Filter(x []float64) ([]float64, error) {
	if err := sg.validate(); err != nil {
		return nil, err
	}
	n := len(x)
	if n == 0 {
		return nil, &EmptyInputError{What: "positions"}
	}
	if n < sg.Window {
		return nil, &RegionTooSmallError{Len: n, Min: sg.Window, Reason: "the smoothing window"}
	}
	hat, err := sg.projection()
	if err != nil {
		return nil, err
	}
	half := sg.Window / 2
	out := make([]float64, n)
	kernel := mat.Row(nil, half, hat)
	for i := half; i < n-half; i++ {
		window := x[i-half : i+half+1]
		var sum float64
		for k, c := range kernel {
			sum += c * window[k]
		}
		out[i] = sum
	}
	// Edges: evaluate the fit of the first/last full window at the positions
	// that lack a centered window.
	head := x[:sg.Window]
	tail := x[n-sg.Window:]
	row := make([]float64, sg.Window)
	for r := 0; r < half; r++ {
		mat.Row(row, r, hat)
		out[r] = dot(row, head)
		tr := sg.Window - half + r
		mat.Row(row, tr, hat)
		out[n-half+r] = dot(row, tail)
	}
	return out, nil
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
