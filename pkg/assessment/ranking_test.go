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

package assessment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NVIDIA/nutrition-advisor/pkg/catalog"
)

func TestTopK(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		k      int
		want   []int
	}{
		{"descending", []float64{0.1, 0.9, 0.5, 0.7}, 2, []int{1, 3}},
		{"ties keep catalog order", []float64{0.5, 0.9, 0.5, 0.5, 0.9, 0.1}, 4, []int{1, 4, 0, 2}},
		{"fewer than k", []float64{0.2, 0.3}, 5, []int{1, 0}},
		{"empty", nil, 5, []int{}},
		{"nan ranks last", []float64{math.NaN(), -0.5, 0.2}, 3, []int{2, 1, 0}},
		{"negative scores", []float64{-0.9, -0.1, -0.5}, 2, []int{1, 2}},
		{"k zero", []float64{0.1, 0.2}, 0, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TopK(tt.scores, tt.k))
		})
	}
}

func TestTopK_DoesNotMutateScores(t *testing.T) {
	scores := []float64{0.3, 0.1, 0.2}
	TopK(scores, 2)
	assert.Equal(t, []float64{0.3, 0.1, 0.2}, scores)
}

func foods(labels ...string) []catalog.FoodItem {
	items := make([]catalog.FoodItem, len(labels))
	for i, l := range labels {
		items[i] = catalog.FoodItem{"label": l, "rank": i}
	}
	return items
}

func TestFilterByPreference(t *testing.T) {
	ranked := foods("Tempe", "Ikan", "Tahu", "Ikan", "Nasi")

	tests := []struct {
		name         string
		preferences  string
		wantRanks    []int
		wantFallback bool
	}{
		{"single match", "Tahu", []int{2}, false},
		{"keeps ranked order", "Nasi,Tempe", []int{0, 4}, false},
		{"duplicates kept", "Ikan", []int{1, 3}, false},
		{"no match falls back", "Sapi", []int{0, 1, 2, 3, 4}, true},
		{"empty string falls back", "", []int{0, 1, 2, 3, 4}, true},
		{"case sensitive", "tempe", []int{0, 1, 2, 3, 4}, true},
		{"tokens are not trimmed", "Nasi, Tempe", []int{4}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, fallback := FilterByPreference(ranked, tt.preferences)
			assert.Equal(t, tt.wantFallback, fallback)
			ranks := make([]int, len(got))
			for i, item := range got {
				ranks[i] = item["rank"].(int)
			}
			assert.Equal(t, tt.wantRanks, ranks)
		})
	}
}

func TestSplitPreferences(t *testing.T) {
	assert.Equal(t, []string{"Tempe", " Ikan", ""}, SplitPreferences("Tempe, Ikan,"))
	assert.Equal(t, []string{""}, SplitPreferences(""))
}
