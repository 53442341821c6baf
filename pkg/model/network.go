// Copyright (c) 2026, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import (
	"fmt"
	"math"
)

// LayerType identifies a layer in an exported network.
type LayerType string

const (
	LayerDense     LayerType = "dense"
	LayerBatchNorm LayerType = "batch_norm"
	LayerDropout   LayerType = "dropout"
)

// Activation is applied to the output of a dense layer.
type Activation string

const (
	ActivationLinear  Activation = "linear"
	ActivationReLU    Activation = "relu"
	ActivationSoftmax Activation = "softmax"
	ActivationSigmoid Activation = "sigmoid"
	ActivationTanh    Activation = "tanh"
)

// defaultBatchNormEpsilon matches the epsilon most frameworks export with.
const defaultBatchNormEpsilon = 1e-3

// Layer is one step of a feed-forward network. Dense layers use Weights
// laid out [input][output] and Bias [output]. Batch normalization layers use
// the moving statistics. Dropout is the identity at inference.
type Layer struct {
	Type       LayerType   `json:"type" yaml:"type"`
	Weights    [][]float64 `json:"weights,omitempty" yaml:"weights,omitempty"`
	Bias       []float64   `json:"bias,omitempty" yaml:"bias,omitempty"`
	Activation Activation  `json:"activation,omitempty" yaml:"activation,omitempty"`

	Gamma          []float64 `json:"gamma,omitempty" yaml:"gamma,omitempty"`
	Beta           []float64 `json:"beta,omitempty" yaml:"beta,omitempty"`
	MovingMean     []float64 `json:"moving_mean,omitempty" yaml:"moving_mean,omitempty"`
	MovingVariance []float64 `json:"moving_variance,omitempty" yaml:"moving_variance,omitempty"`
	Epsilon        float64   `json:"epsilon,omitempty" yaml:"epsilon,omitempty"`
}

// Network is a sequential stack of layers exported from a trained model.
type Network struct {
	Layers []Layer `json:"layers" yaml:"layers"`
}

// InputSize returns the width the first dense or batch norm layer expects,
// or 0 when the network has none.
func (n *Network) InputSize() int {
	for _, l := range n.Layers {
		switch l.Type {
		case LayerDense:
			return len(l.Weights)
		case LayerBatchNorm:
			return len(l.MovingMean)
		case LayerDropout:
			continue
		}
	}
	return 0
}

// OutputSize returns the width produced by the last sized layer.
func (n *Network) OutputSize() int {
	size := 0
	for _, l := range n.Layers {
		switch l.Type {
		case LayerDense:
			size = len(l.Bias)
		case LayerBatchNorm:
			size = len(l.MovingMean)
		case LayerDropout:
		}
	}
	return size
}

// Validate checks that every layer is well formed and that consecutive
// layer widths agree.
func (n *Network) Validate() error {
	if len(n.Layers) == 0 {
		return fmt.Errorf("network has no layers")
	}

	width := 0
	for i, l := range n.Layers {
		switch l.Type {
		case LayerDense:
			if len(l.Weights) == 0 || len(l.Bias) == 0 {
				return fmt.Errorf("layer %d: dense layer needs weights and bias", i)
			}
			for r, row := range l.Weights {
				if len(row) != len(l.Bias) {
					return fmt.Errorf("layer %d: weights row %d has %d columns, bias has %d", i, r, len(row), len(l.Bias))
				}
			}
			if width != 0 && len(l.Weights) != width {
				return fmt.Errorf("layer %d: expects %d inputs, previous layer produces %d", i, len(l.Weights), width)
			}
			switch l.Activation {
			case "", ActivationLinear, ActivationReLU, ActivationSoftmax, ActivationSigmoid, ActivationTanh:
			default:
				return fmt.Errorf("layer %d: unsupported activation %q", i, l.Activation)
			}
			width = len(l.Bias)
		case LayerBatchNorm:
			size := len(l.MovingMean)
			if size == 0 || len(l.MovingVariance) != size || len(l.Gamma) != size || len(l.Beta) != size {
				return fmt.Errorf("layer %d: batch norm parameters must share one non-zero length", i)
			}
			if width != 0 && size != width {
				return fmt.Errorf("layer %d: expects %d inputs, previous layer produces %d", i, size, width)
			}
			width = size
		case LayerDropout:
		default:
			return fmt.Errorf("layer %d: unsupported layer type %q", i, l.Type)
		}
	}

	if width == 0 {
		return fmt.Errorf("network has no dense or batch norm layers")
	}
	return nil
}

// Forward runs x through the network in inference mode.
func (n *Network) Forward(x []float64) ([]float64, error) {
	if want := n.InputSize(); len(x) != want {
		return nil, fmt.Errorf("network expects %d inputs, got %d", want, len(x))
	}

	out := append([]float64(nil), x...)
	for _, l := range n.Layers {
		switch l.Type {
		case LayerDense:
			out = dense(l, out)
		case LayerBatchNorm:
			out = batchNorm(l, out)
		case LayerDropout:
		}
	}
	return out, nil
}

func dense(l Layer, x []float64) []float64 {
	y := make([]float64, len(l.Bias))
	copy(y, l.Bias)
	for i, xi := range x {
		if xi == 0 {
			continue
		}
		row := l.Weights[i]
		for j := range y {
			y[j] += xi * row[j]
		}
	}
	return activate(l.Activation, y)
}

func batchNorm(l Layer, x []float64) []float64 {
	eps := l.Epsilon
	if eps == 0 {
		eps = defaultBatchNormEpsilon
	}
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = (xi-l.MovingMean[i])/math.Sqrt(l.MovingVariance[i]+eps)*l.Gamma[i] + l.Beta[i]
	}
	return y
}

func activate(a Activation, y []float64) []float64 {
	switch a {
	case ActivationReLU:
		for i, v := range y {
			if v < 0 {
				y[i] = 0
			}
		}
	case ActivationSigmoid:
		for i, v := range y {
			y[i] = 1 / (1 + math.Exp(-v))
		}
	case ActivationTanh:
		for i, v := range y {
			y[i] = math.Tanh(v)
		}
	case ActivationSoftmax:
		softmax(y)
	case ActivationLinear, "":
	}
	return y
}

func softmax(y []float64) {
	maxV := math.Inf(-1)
	for _, v := range y {
		maxV = math.Max(maxV, v)
	}
	sum := 0.0
	for i, v := range y {
		y[i] = math.Exp(v - maxV)
		sum += y[i]
	}
	for i := range y {
		y[i] /= sum
	}
}

// Argmax returns the index of the largest value; the first wins on ties.
func Argmax(v []float64) int {
	best := -1
	for i, x := range v {
		if best < 0 || x > v[best] {
			best = i
		}
	}
	return best
}
