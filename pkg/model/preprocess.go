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

// Scaler standardizes a fixed-width feature vector as (x - mean) / scale.
// A zero scale leaves the centered value unscaled.
type Scaler struct {
	Mean  []float64 `json:"mean" yaml:"mean"`
	Scale []float64 `json:"scale" yaml:"scale"`
}

// Validate checks that mean and scale have the same non-zero width.
func (s *Scaler) Validate() error {
	if len(s.Mean) == 0 {
		return fmt.Errorf("scaler has no features")
	}
	if len(s.Mean) != len(s.Scale) {
		return fmt.Errorf("scaler mean has %d features, scale has %d", len(s.Mean), len(s.Scale))
	}
	return nil
}

// Transform returns a scaled copy of x.
func (s *Scaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.Mean) {
		return nil, fmt.Errorf("scaler expects %d features, got %d", len(s.Mean), len(x))
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = standardize(v, s.Mean[i], s.Scale[i])
	}
	return out, nil
}

func standardize(v, mean, scale float64) float64 {
	if scale == 0 || math.IsNaN(scale) {
		scale = 1
	}
	return (v - mean) / scale
}

// LabelDecoder maps class indices back to the labels the model was trained on.
type LabelDecoder struct {
	Classes []string `json:"classes" yaml:"classes"`
}

// Validate checks that at least one class is known.
func (d *LabelDecoder) Validate() error {
	if len(d.Classes) == 0 {
		return fmt.Errorf("label decoder has no classes")
	}
	return nil
}

// Decode returns the label for class index i.
func (d *LabelDecoder) Decode(i int) (string, error) {
	if i < 0 || i >= len(d.Classes) {
		return "", fmt.Errorf("class index %d out of range [0, %d)", i, len(d.Classes))
	}
	return d.Classes[i], nil
}
