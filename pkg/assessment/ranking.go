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
	"sort"
	"strings"

	"github.com/NVIDIA/nutrition-advisor/pkg/catalog"
)

// DefaultTopK is the number of foods kept after scoring.
const DefaultTopK = 5

// TopK returns the indices of the k highest scores, best first. Equal
// scores keep catalog order and NaN ranks below every number.
func TopK(scores []float64, k int) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		sa, sb := scores[idx[a]], scores[idx[b]]
		if math.IsNaN(sb) {
			return !math.IsNaN(sa)
		}
		return sa > sb
	})
	if k >= 0 && k < len(idx) {
		idx = idx[:k]
	}
	return idx
}

// SplitPreferences splits a comma separated preference list. Tokens are
// kept verbatim, surrounding spaces included.
func SplitPreferences(s string) []string {
	return strings.Split(s, ",")
}

// FilterByPreference keeps the items whose label is one of the preferences.
// When none match, the items are returned unchanged and fallback is true.
func FilterByPreference(items []catalog.FoodItem, preferences string) (filtered []catalog.FoodItem, fallback bool) {
	wanted := make(map[string]struct{})
	for _, p := range SplitPreferences(preferences) {
		wanted[p] = struct{}{}
	}

	for _, item := range items {
		if _, ok := wanted[item.Label()]; ok {
			filtered = append(filtered, item)
		}
	}
	if len(filtered) == 0 {
		return items, true
	}
	return filtered, false
}
