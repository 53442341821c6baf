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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClassifier(t *testing.T) *Classifier {
	t.Helper()
	// Output 0 grows with bmi, output 1 with body fat.
	c, err := NewClassifier(
		&Scaler{Mean: []float64{0, 0, 0, 0}, Scale: []float64{1, 1, 1, 1}},
		&Network{Layers: []Layer{{
			Type:       LayerDense,
			Weights:    [][]float64{{1, 0}, {0, 1}, {0, 0}, {0, 0}},
			Bias:       []float64{0, 0},
			Activation: ActivationSoftmax,
		}}},
		&LabelDecoder{Classes: []string{"bmi-heavy", "fat-heavy"}},
	)
	require.NoError(t, err)
	return c
}

func TestClassifier_Classify(t *testing.T) {
	c := testClassifier(t)

	got, err := c.Classify([]float64{25, 10, 10, 1})
	require.NoError(t, err)
	assert.Equal(t, "bmi-heavy", got)

	got, err = c.Classify([]float64{10, 25, 10, 1})
	require.NoError(t, err)
	assert.Equal(t, "fat-heavy", got)

	_, err = c.Classify([]float64{1, 2})
	assert.Error(t, err)
}

func TestClassifier_Deterministic(t *testing.T) {
	c := testClassifier(t)
	first, err := c.Classify([]float64{20.71, 21.95, 10, 1})
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := c.Classify([]float64{20.71, 21.95, 10, 1})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestNewClassifier_Mismatches(t *testing.T) {
	scaler := &Scaler{Mean: []float64{0, 0, 0, 0}, Scale: []float64{1, 1, 1, 1}}
	net := &Network{Layers: []Layer{identityDense(4, ActivationSoftmax)}}

	_, err := NewClassifier(nil, net, &LabelDecoder{Classes: []string{"a"}})
	assert.Error(t, err)

	_, err = NewClassifier(scaler, net, &LabelDecoder{Classes: []string{"a", "b"}})
	assert.ErrorContains(t, err, "produces 4 classes")

	_, err = NewClassifier(&Scaler{Mean: []float64{0}, Scale: []float64{1}}, net,
		&LabelDecoder{Classes: []string{"a", "b", "c", "d"}})
	assert.ErrorContains(t, err, "expects 4 inputs")
}

func testRecommender(t *testing.T) *Recommender {
	t.Helper()
	child := &FeatureEncoder{Columns: []Column{
		{Name: "Food Preferences", Kind: ColumnCategorical, Categories: []string{"Vegan", "Halal"}},
	}}
	food := &FeatureEncoder{Columns: []Column{
		{Name: "label", Kind: ColumnCategorical, Categories: []string{"Vegan", "Halal"}},
	}}
	r, err := NewRecommender(child, food, &DualTower{
		ChildTower: Network{Layers: []Layer{identityDense(2, ActivationLinear)}},
		FoodTower:  Network{Layers: []Layer{identityDense(2, ActivationLinear)}},
	})
	require.NoError(t, err)
	return r
}

func TestRecommender_Score(t *testing.T) {
	r := testRecommender(t)

	foods := []map[string]any{
		{"label": "Vegan", "name": "tofu"},
		{"label": "Halal", "name": "chicken"},
		{"label": "Other", "name": "mystery"},
	}
	scores, err := r.Score(map[string]any{"Food Preferences": "Vegan"}, foods)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.InDelta(t, 1.0, scores[0], 1e-12)
	assert.InDelta(t, 0.0, scores[1], 1e-12)
	assert.Equal(t, 0.0, scores[2])

	for _, s := range scores {
		assert.GreaterOrEqual(t, s, -1.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}

func TestRecommender_ScoreErrors(t *testing.T) {
	r := testRecommender(t)

	_, err := r.Score(map[string]any{}, []map[string]any{{"label": "Vegan"}})
	assert.ErrorContains(t, err, "encode child")

	_, err = r.Score(map[string]any{"Food Preferences": "Vegan"}, []map[string]any{{"name": "x"}})
	assert.ErrorContains(t, err, "encode food 0")
}

func TestNewRecommender_Mismatches(t *testing.T) {
	enc2 := &FeatureEncoder{Columns: []Column{{Name: "a", Kind: ColumnCategorical, Categories: []string{"x", "y"}}}}
	enc1 := &FeatureEncoder{Columns: []Column{{Name: "a", Kind: ColumnNumeric}}}

	_, err := NewRecommender(enc1, enc2, &DualTower{
		ChildTower: Network{Layers: []Layer{identityDense(2, ActivationLinear)}},
		FoodTower:  Network{Layers: []Layer{identityDense(2, ActivationLinear)}},
	})
	assert.ErrorContains(t, err, "child encoder produces 1")

	_, err = NewRecommender(enc2, enc2, &DualTower{
		ChildTower: Network{Layers: []Layer{identityDense(2, ActivationLinear)}},
		FoodTower: Network{Layers: []Layer{{
			Type: LayerDense, Weights: [][]float64{{1, 0, 0}, {0, 1, 0}}, Bias: []float64{0, 0, 0},
		}}},
	})
	assert.ErrorContains(t, err, "dimensions")

	_, err = NewRecommender(nil, enc2, &DualTower{})
	assert.Error(t, err)
}
