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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/NVIDIA/nutrition-advisor/pkg/artifact"
	"github.com/NVIDIA/nutrition-advisor/pkg/catalog"
	apperrors "github.com/NVIDIA/nutrition-advisor/pkg/errors"
	"github.com/NVIDIA/nutrition-advisor/pkg/server"
)

// Classifier maps [bmi, body fat, age, gender] to a nutrition status.
type Classifier interface {
	Classify(features []float64) (string, error)
}

// Scorer returns one similarity per food record, in catalog order.
type Scorer interface {
	Score(child map[string]any, foods []map[string]any) ([]float64, error)
}

// Child record columns the scorer's encoder reads.
const (
	ColumnAge              = "age"
	ColumnHeight           = "height"
	ColumnWeight           = "weight"
	ColumnBMI              = "BMI"
	ColumnBodyFat          = "Body_Fat_Percentage"
	ColumnBMR              = "BMR"
	ColumnCalories         = "Calories"
	ColumnNutritionStatus  = "Nutrition_Status"
	ColumnFoodPreferences  = "Food Preferences"
	ColumnHealthConditions = "Health Conditions"
)

// State is a step of one assessment.
type State string

const (
	StateReceived        State = "RECEIVED"
	StateValidated       State = "VALIDATED"
	StateMetricsComputed State = "METRICS_COMPUTED"
	StateClassified      State = "CLASSIFIED"
	StateRecommended     State = "RECOMMENDED"
	StateFiltered        State = "FILTERED"
	StateError           State = "ERROR"
)

// Result is the assessment returned to clients.
type Result struct {
	NutritionStatus   string             `json:"Status Gizi" yaml:"Status Gizi"`
	BMI               float64            `json:"Index Masa Tubuh" yaml:"Index Masa Tubuh"`
	BodyFatPercentage float64            `json:"Persentase Lemak Tubuh" yaml:"Persentase Lemak Tubuh"`
	BMR               float64            `json:"Tingkat Metabolisme Basal" yaml:"Tingkat Metabolisme Basal"`
	Foods             []catalog.FoodItem `json:"Makanan yang direkomendasikan" yaml:"Makanan yang direkomendasikan"`
}

// Service runs assessments against a fixed set of models and a catalog.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	classifier Classifier
	scorer     Scorer
	catalog    *catalog.Catalog
	topK       int
}

// Option configures a Service.
type Option func(*Service)

// WithTopK sets how many foods survive ranking. Values outside 1..DefaultTopK
// are ignored.
func WithTopK(k int) Option {
	return func(s *Service) {
		if k > 0 && k <= DefaultTopK {
			s.topK = k
		}
	}
}

// NewService wires the two models and the catalog into a Service.
func NewService(classifier Classifier, scorer Scorer, foods *catalog.Catalog, opts ...Option) (*Service, error) {
	if classifier == nil || scorer == nil || foods == nil {
		return nil, errors.New("assessment service needs a classifier, a scorer and a food catalog")
	}
	s := &Service{
		classifier: classifier,
		scorer:     scorer,
		catalog:    foods,
		topK:       DefaultTopK,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewServiceFromBundle builds a Service from a loaded artifact bundle.
func NewServiceFromBundle(b *artifact.Bundle, opts ...Option) (*Service, error) {
	if b == nil {
		return nil, errors.New("artifact bundle is nil")
	}
	return NewService(b.Classifier, b.Recommender, b.Catalog, opts...)
}

// Process validates a decoded request body and assesses it.
func (s *Service) Process(ctx context.Context, raw map[string]any) (*Result, error) {
	start := time.Now()
	logState(ctx, StateReceived)

	p, err := ParseProfile(raw)
	if err != nil {
		outcome := "error"
		if apperrors.IsValidation(err) {
			validationFailuresTotal.WithLabelValues(string(apperrors.CodeOf(err))).Inc()
			outcome = "invalid"
		}
		assessmentDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
		slog.Debug("assessment rejected",
			"requestID", server.RequestID(ctx),
			"state", StateError,
			"error", err)
		return nil, err
	}
	logState(ctx, StateValidated)

	result, err := s.Assess(ctx, *p)
	if err != nil {
		assessmentDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, err
	}
	assessmentDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	return result, nil
}

// Assess computes metrics, classifies the child, ranks the catalog and
// applies the preference filter. p must already be valid.
func (s *Service) Assess(ctx context.Context, p Profile) (*Result, error) {
	m := ComputeMetrics(p)
	logState(ctx, StateMetricsComputed, "bmi", m.BMI, "bodyFat", m.BodyFatPercentage, "bmr", m.BMR)

	status, err := s.classifier.Classify([]float64{m.BMI, m.BodyFatPercentage, float64(p.Age), float64(p.Gender)})
	if err != nil {
		return nil, s.fail(ctx, StateClassified, "failed to classify nutrition status", err)
	}
	nutritionStatusTotal.WithLabelValues(status).Inc()
	logState(ctx, StateClassified, "status", status)

	scores, err := s.scorer.Score(childRecord(p, m, status), s.catalog.Records())
	if err != nil {
		return nil, s.fail(ctx, StateRecommended, "failed to score foods", err)
	}
	if len(scores) != s.catalog.Len() {
		return nil, s.fail(ctx, StateRecommended, "failed to score foods",
			fmt.Errorf("scorer returned %d scores for %d foods", len(scores), s.catalog.Len()))
	}

	top := TopK(scores, s.topK)
	ranked := make([]catalog.FoodItem, 0, len(top))
	for _, i := range top {
		ranked = append(ranked, s.catalog.Item(i))
	}
	logState(ctx, StateRecommended, "candidates", len(ranked))

	foods, fallback := FilterByPreference(ranked, p.FoodPreferences)
	if fallback {
		preferenceFallbackTotal.Inc()
	}
	logState(ctx, StateFiltered, "foods", len(foods), "fallback", fallback)

	return &Result{
		NutritionStatus:   status,
		BMI:               m.BMI,
		BodyFatPercentage: m.BodyFatPercentage,
		BMR:               m.BMR,
		Foods:             foods,
	}, nil
}

func (s *Service) fail(ctx context.Context, state State, msg string, err error) error {
	slog.Error(msg,
		"requestID", server.RequestID(ctx),
		"state", StateError,
		"failedAt", state,
		"error", err)
	return apperrors.Wrap(apperrors.ErrCodeInternal, msg, err)
}

func logState(ctx context.Context, state State, attrs ...any) {
	args := append([]any{"requestID", server.RequestID(ctx), "state", state}, attrs...)
	slog.Debug("assessment state", args...)
}

func childRecord(p Profile, m Metrics, status string) map[string]any {
	return map[string]any{
		ColumnAge:              p.Age,
		ColumnHeight:           p.Height,
		ColumnWeight:           p.Weight,
		ColumnBMI:              m.BMI,
		ColumnBodyFat:          m.BodyFatPercentage,
		ColumnBMR:              m.BMR,
		ColumnCalories:         m.Calories,
		ColumnNutritionStatus:  status,
		ColumnFoodPreferences:  p.FoodPreferences,
		ColumnHealthConditions: string(p.HealthConditions),
	}
}
