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

import "math"

// Metrics are the body measures derived from a profile, rounded to two
// decimals.
type Metrics struct {
	BMI               float64 `json:"bmi" yaml:"bmi"`
	BodyFatPercentage float64 `json:"body_fat_percentage" yaml:"body_fat_percentage"`
	BMR               float64 `json:"bmr" yaml:"bmr"`
	Calories          float64 `json:"calories" yaml:"calories"`
}

// ComputeMetrics derives BMI, body fat and BMR. Body fat is estimated from
// the rounded BMI. Calories equals BMR; no activity factor is applied.
func ComputeMetrics(p Profile) Metrics {
	bmi := round2(BMI(p.Height, p.Weight))
	bmr := round2(BMR(p.Weight, p.Height, p.Age, p.Gender))
	return Metrics{
		BMI:               bmi,
		BodyFatPercentage: round2(BodyFatPercentage(p.Gender, bmi, p.Age)),
		BMR:               bmr,
		Calories:          bmr,
	}
}

// BMI is weight in kilograms over height in meters squared.
func BMI(heightCM, weightKG float64) float64 {
	m := heightCM / 100
	return weightKG / (m * m)
}

// BodyFatPercentage uses the Deurenberg equation.
func BodyFatPercentage(g Gender, bmi float64, age int) float64 {
	if g == GenderMale {
		return 1.20*bmi + 0.23*float64(age) - 16.2
	}
	return 1.20*bmi + 0.23*float64(age) - 5.4
}

// BMR uses the revised Harris-Benedict equation, in kcal per day.
func BMR(weightKG, heightCM float64, age int, g Gender) float64 {
	if g == GenderMale {
		return 88.362 + 13.397*weightKG + 4.799*heightCM - 5.677*float64(age)
	}
	return 447.593 + 9.247*weightKG + 3.098*heightCM - 4.330*float64(age)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
