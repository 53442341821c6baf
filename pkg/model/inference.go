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

// Classifier maps the scaled [bmi, body fat, age, gender] vector onto a
// nutrition status label.
type Classifier struct {
	Scaler  *Scaler
	Network *Network
	Labels  *LabelDecoder
}

// NewClassifier checks that the three artifacts fit together.
func NewClassifier(scaler *Scaler, network *Network, labels *LabelDecoder) (*Classifier, error) {
	if scaler == nil || network == nil || labels == nil {
		return nil, fmt.Errorf("classifier needs a scaler, a network and a label decoder")
	}
	if err := scaler.Validate(); err != nil {
		return nil, err
	}
	if err := network.Validate(); err != nil {
		return nil, fmt.Errorf("classifier network: %w", err)
	}
	if err := labels.Validate(); err != nil {
		return nil, err
	}
	if in := network.InputSize(); in != len(scaler.Mean) {
		return nil, fmt.Errorf("classifier network expects %d inputs, scaler produces %d", in, len(scaler.Mean))
	}
	if out := network.OutputSize(); out != len(labels.Classes) {
		return nil, fmt.Errorf("classifier network produces %d classes, label decoder knows %d", out, len(labels.Classes))
	}
	return &Classifier{Scaler: scaler, Network: network, Labels: labels}, nil
}

// Classify returns the most probable label for features.
func (c *Classifier) Classify(features []float64) (string, error) {
	scaled, err := c.Scaler.Transform(features)
	if err != nil {
		return "", err
	}
	probs, err := c.Network.Forward(scaled)
	if err != nil {
		return "", err
	}
	return c.Labels.Decode(Argmax(probs))
}

// DualTower embeds children and foods into one space.
type DualTower struct {
	ChildTower Network `json:"child_tower" yaml:"child_tower"`
	FoodTower  Network `json:"food_tower" yaml:"food_tower"`
}

// Recommender scores every food against a child by the cosine similarity of
// their tower embeddings.
type Recommender struct {
	ChildEncoder *FeatureEncoder
	FoodEncoder  *FeatureEncoder
	Towers       *DualTower
}

// NewRecommender checks that encoder widths match the tower inputs and that
// both towers embed into the same dimension.
func NewRecommender(child, food *FeatureEncoder, towers *DualTower) (*Recommender, error) {
	if child == nil || food == nil || towers == nil {
		return nil, fmt.Errorf("recommender needs two encoders and the dual tower")
	}
	if err := child.Validate(); err != nil {
		return nil, fmt.Errorf("child encoder: %w", err)
	}
	if err := food.Validate(); err != nil {
		return nil, fmt.Errorf("food encoder: %w", err)
	}
	if err := towers.ChildTower.Validate(); err != nil {
		return nil, fmt.Errorf("child tower: %w", err)
	}
	if err := towers.FoodTower.Validate(); err != nil {
		return nil, fmt.Errorf("food tower: %w", err)
	}
	if child.Width() != towers.ChildTower.InputSize() {
		return nil, fmt.Errorf("child encoder produces %d features, child tower expects %d",
			child.Width(), towers.ChildTower.InputSize())
	}
	if food.Width() != towers.FoodTower.InputSize() {
		return nil, fmt.Errorf("food encoder produces %d features, food tower expects %d",
			food.Width(), towers.FoodTower.InputSize())
	}
	if towers.ChildTower.OutputSize() != towers.FoodTower.OutputSize() {
		return nil, fmt.Errorf("child embeddings have %d dimensions, food embeddings %d",
			towers.ChildTower.OutputSize(), towers.FoodTower.OutputSize())
	}
	return &Recommender{ChildEncoder: child, FoodEncoder: food, Towers: towers}, nil
}

// Score returns one similarity per food, in the order given.
func (r *Recommender) Score(child map[string]any, foods []map[string]any) ([]float64, error) {
	childVec, err := r.ChildEncoder.Encode(child)
	if err != nil {
		return nil, fmt.Errorf("failed to encode child: %w", err)
	}
	childEmb, err := r.Towers.ChildTower.Forward(childVec)
	if err != nil {
		return nil, fmt.Errorf("child tower: %w", err)
	}

	scores := make([]float64, len(foods))
	for i, food := range foods {
		foodVec, err := r.FoodEncoder.Encode(food)
		if err != nil {
			return nil, fmt.Errorf("failed to encode food %d: %w", i, err)
		}
		foodEmb, err := r.Towers.FoodTower.Forward(foodVec)
		if err != nil {
			return nil, fmt.Errorf("food tower: %w", err)
		}
		scores[i] = CosineSimilarity(childEmb, foodEmb)
	}
	return scores, nil
}

// CosineSimilarity returns a·b / (|a||b|). It is 0 when either vector has
// zero norm or the lengths differ.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
