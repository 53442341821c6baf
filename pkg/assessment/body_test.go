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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeMetrics(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		want    Metrics
	}{
		{
			name:    "boy",
			profile: Profile{Age: 10, Height: 130, Weight: 35, Gender: GenderMale},
			want:    Metrics{BMI: 20.71, BodyFatPercentage: 10.95, BMR: 1124.36, Calories: 1124.36},
		},
		{
			name:    "girl",
			profile: Profile{Age: 10, Height: 130, Weight: 35, Gender: GenderFemale},
			want:    Metrics{BMI: 20.71, BodyFatPercentage: 21.75, BMR: 1130.68, Calories: 1130.68},
		},
		{
			name:    "small girl",
			profile: Profile{Age: 5, Height: 110, Weight: 18, Gender: GenderFemale},
			want:    Metrics{BMI: 14.88, BodyFatPercentage: 13.61, BMR: 933.17, Calories: 933.17},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeMetrics(tt.profile)
			assert.InDelta(t, tt.want.BMI, got.BMI, 1e-9)
			assert.InDelta(t, tt.want.BodyFatPercentage, got.BodyFatPercentage, 1e-9)
			assert.InDelta(t, tt.want.BMR, got.BMR, 1e-9)
			assert.Equal(t, got.BMR, got.Calories)
		})
	}
}

func TestBodyFatUsesRoundedBMI(t *testing.T) {
	p := Profile{Age: 10, Height: 130, Weight: 35, Gender: GenderMale}
	m := ComputeMetrics(p)
	assert.InDelta(t, round2(BodyFatPercentage(GenderMale, m.BMI, 10)), m.BodyFatPercentage, 1e-9)
}

func TestComputeMetrics_Deterministic(t *testing.T) {
	p := Profile{Age: 7, Height: 121.3, Weight: 22.8, Gender: GenderFemale}
	first := ComputeMetrics(p)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ComputeMetrics(p))
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 20.71, round2(20.710059))
	assert.Equal(t, 1124.36, round2(1124.357))
	assert.Equal(t, -3.5, round2(-3.4951))
	assert.Equal(t, 0.0, round2(0.004))
}
