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
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	apperrors "github.com/NVIDIA/nutrition-advisor/pkg/errors"
)

// Request field names, in the order they are checked.
const (
	FieldAge              = "age"
	FieldHeight           = "height"
	FieldWeight           = "weight"
	FieldGender           = "gender"
	FieldFoodPreferences  = "food_preferences"
	FieldHealthConditions = "health_conditions"
)

var requiredFields = []string{
	FieldAge,
	FieldHeight,
	FieldWeight,
	FieldGender,
	FieldFoodPreferences,
	FieldHealthConditions,
}

// Gender is encoded the way the classifier was trained: 1 male, 0 female.
type Gender int

const (
	GenderFemale Gender = 0
	GenderMale   Gender = 1
)

// HealthCondition is one of the conditions the recommender knows.
type HealthCondition string

const (
	ConditionHealthy      HealthCondition = "Sehat"
	ConditionAnemia       HealthCondition = "Anemia"
	ConditionHypertension HealthCondition = "Hypertension"
	ConditionDiabetes     HealthCondition = "Diabetes"
	ConditionObesity      HealthCondition = "Obesity"
)

// HealthConditions lists the accepted values of health_conditions.
var HealthConditions = []HealthCondition{
	ConditionHealthy,
	ConditionAnemia,
	ConditionHypertension,
	ConditionDiabetes,
	ConditionObesity,
}

// Valid reports whether c is an accepted condition. Matching is case sensitive.
func (c HealthCondition) Valid() bool {
	for _, known := range HealthConditions {
		if c == known {
			return true
		}
	}
	return false
}

// Exclusive bounds of the numeric inputs.
const (
	MinHeightCM = 65.0
	MaxHeightCM = 300.0
	MinWeightKG = 6.0
	MaxWeightKG = 200.0
	MinAge      = 0
	MaxAge      = 19
)

// Profile is a validated assessment request.
type Profile struct {
	Age              int             `json:"age" yaml:"age"`
	Height           float64         `json:"height" yaml:"height"`
	Weight           float64         `json:"weight" yaml:"weight"`
	Gender           Gender          `json:"gender" yaml:"gender"`
	FoodPreferences  string          `json:"food_preferences" yaml:"food_preferences"`
	HealthConditions HealthCondition `json:"health_conditions" yaml:"health_conditions"`
}

// ParseProfile validates a decoded request body. Checks run in a fixed
// order: presence of every field, field types, enumerations, then ranges.
// The first failure is returned as a validation StructuredError whose
// message names the field.
func ParseProfile(raw map[string]any) (*Profile, error) {
	if raw == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "request body must be a JSON object")
	}

	for _, field := range requiredFields {
		if _, ok := raw[field]; !ok {
			return nil, apperrors.NewWithContext(apperrors.ErrCodeMissingField,
				fmt.Sprintf("Field '%s' is required.", field), map[string]any{"field": field})
		}
	}

	var (
		p   Profile
		err error
	)
	if p.Age, err = integerField(raw, FieldAge); err != nil {
		return nil, err
	}
	if p.Height, err = numberField(raw, FieldHeight); err != nil {
		return nil, err
	}
	if p.Weight, err = numberField(raw, FieldWeight); err != nil {
		return nil, err
	}
	gender, err := integerField(raw, FieldGender)
	if err != nil {
		return nil, err
	}
	p.Gender = Gender(gender)
	if p.FoodPreferences, err = stringField(raw, FieldFoodPreferences); err != nil {
		return nil, err
	}
	conditions, err := stringField(raw, FieldHealthConditions)
	if err != nil {
		return nil, err
	}
	p.HealthConditions = HealthCondition(conditions)

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks enumerations and ranges of an already typed profile.
func (p *Profile) Validate() error {
	if p.Gender != GenderFemale && p.Gender != GenderMale {
		return invalidGender(strconv.Itoa(int(p.Gender)))
	}
	if !p.HealthConditions.Valid() {
		return apperrors.NewWithContext(apperrors.ErrCodeInvalidEnum,
			fmt.Sprintf("Field 'health_conditions' must be one of %v, got %q.", HealthConditions, p.HealthConditions),
			map[string]any{"field": FieldHealthConditions})
	}
	if !(p.Height > MinHeightCM && p.Height < MaxHeightCM) {
		return outOfRange(FieldHeight, p.Height, MinHeightCM, MaxHeightCM)
	}
	if !(p.Weight > MinWeightKG && p.Weight < MaxWeightKG) {
		return outOfRange(FieldWeight, p.Weight, MinWeightKG, MaxWeightKG)
	}
	if !(p.Age > MinAge && p.Age < MaxAge) {
		return outOfRange(FieldAge, float64(p.Age), MinAge, MaxAge)
	}
	return nil
}

func outOfRange(field string, v, lo, hi float64) error {
	return apperrors.NewWithContext(apperrors.ErrCodeOutOfRange,
		fmt.Sprintf("Field '%s' is out of valid range: %g is not between %g and %g.", field, v, lo, hi),
		map[string]any{"field": field})
}

func invalidType(field, want string, v any) error {
	return apperrors.NewWithContext(apperrors.ErrCodeInvalidType,
		fmt.Sprintf("Field '%s' must be %s, got %s.", field, want, describe(v)),
		map[string]any{"field": field})
}

// numberField accepts JSON numbers only. Numeric strings are not coerced.
func numberField(raw map[string]any, field string) (float64, error) {
	var f float64
	switch v := raw[field].(type) {
	case json.Number:
		parsed, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return 0, invalidType(field, "a number", v)
		}
		f = parsed
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	default:
		return 0, invalidType(field, "a number", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, invalidType(field, "a finite number", raw[field])
	}
	return f, nil
}

// integerField accepts whole JSON numbers, so 10 and 10.0 both pass.
func integerField(raw map[string]any, field string) (int, error) {
	f, err := numberField(raw, field)
	if err != nil {
		return 0, invalidType(field, "an integer", raw[field])
	}
	if f != math.Trunc(f) {
		return 0, invalidType(field, "an integer", raw[field])
	}
	if math.Abs(f) > math.MaxInt32 {
		return 0, integerOutOfBounds(field, f)
	}
	return int(f), nil
}

// integerOutOfBounds reports a whole number too large to hold as the class
// Validate would have given it.
func integerOutOfBounds(field string, f float64) error {
	switch field {
	case FieldGender:
		return invalidGender(strconv.FormatFloat(f, 'g', -1, 64))
	case FieldAge:
		return outOfRange(FieldAge, f, MinAge, MaxAge)
	default:
		return outOfRange(field, f, math.MinInt32, math.MaxInt32)
	}
}

func invalidGender(got string) error {
	return apperrors.NewWithContext(apperrors.ErrCodeInvalidEnum,
		fmt.Sprintf("Field 'gender' must be 0 (female) or 1 (male), got %s.", got),
		map[string]any{"field": FieldGender})
}

func stringField(raw map[string]any, field string) (string, error) {
	s, ok := raw[field].(string)
	if !ok {
		return "", invalidType(field, "a string", raw[field])
	}
	return s, nil
}

func describe(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("string %q", t)
	case bool:
		return "boolean"
	case json.Number, float64, float32, int, int64:
		return fmt.Sprintf("number %v", t)
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", t)
	}
}
