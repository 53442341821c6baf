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
	"encoding/json"
	"fmt"
	"strconv"
)

// ColumnKind selects how an encoder column turns a record value into features.
type ColumnKind string

const (
	// ColumnNumeric emits one standardized value.
	ColumnNumeric ColumnKind = "numeric"
	// ColumnCategorical emits a one-hot vector in category order. Unknown
	// categories encode as all zeros.
	ColumnCategorical ColumnKind = "categorical"
	// ColumnPassthrough emits the raw numeric value.
	ColumnPassthrough ColumnKind = "passthrough"
)

// Column is one input of a FeatureEncoder.
type Column struct {
	Name       string     `json:"name" yaml:"name"`
	Kind       ColumnKind `json:"kind" yaml:"kind"`
	Mean       float64    `json:"mean,omitempty" yaml:"mean,omitempty"`
	Scale      float64    `json:"scale,omitempty" yaml:"scale,omitempty"`
	Categories []string   `json:"categories,omitempty" yaml:"categories,omitempty"`
}

// Width returns the number of features the column produces.
func (c Column) Width() int {
	if c.Kind == ColumnCategorical {
		return len(c.Categories)
	}
	return 1
}

// FeatureEncoder turns a named record into a numeric vector by encoding each
// column in order and concatenating the results.
type FeatureEncoder struct {
	Columns []Column `json:"columns" yaml:"columns"`
}

// Validate checks column kinds and names.
func (e *FeatureEncoder) Validate() error {
	if len(e.Columns) == 0 {
		return fmt.Errorf("encoder has no columns")
	}
	for i, c := range e.Columns {
		if c.Name == "" {
			return fmt.Errorf("encoder column %d has no name", i)
		}
		switch c.Kind {
		case ColumnNumeric, ColumnPassthrough:
		case ColumnCategorical:
			if len(c.Categories) == 0 {
				return fmt.Errorf("categorical column %q has no categories", c.Name)
			}
		default:
			return fmt.Errorf("column %q has unsupported kind %q", c.Name, c.Kind)
		}
	}
	return nil
}

// Width returns the length of every vector Encode produces.
func (e *FeatureEncoder) Width() int {
	w := 0
	for _, c := range e.Columns {
		w += c.Width()
	}
	return w
}

// Encode returns the feature vector for record. Every column must be present.
func (e *FeatureEncoder) Encode(record map[string]any) ([]float64, error) {
	out := make([]float64, 0, e.Width())
	for _, c := range e.Columns {
		v, ok := record[c.Name]
		if !ok {
			return nil, fmt.Errorf("record has no column %q", c.Name)
		}

		switch c.Kind {
		case ColumnNumeric, ColumnPassthrough:
			f, err := toFloat(v)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", c.Name, err)
			}
			if c.Kind == ColumnNumeric {
				f = standardize(f, c.Mean, c.Scale)
			}
			out = append(out, f)
		case ColumnCategorical:
			s := toCategory(v)
			for _, cat := range c.Categories {
				if cat == s {
					out = append(out, 1)
				} else {
					out = append(out, 0)
				}
			}
		}
	}
	return out, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("value %v (%T) is not numeric", v, v)
	}
}

func toCategory(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}
