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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/nutrition-advisor/pkg/artifact"
	"github.com/NVIDIA/nutrition-advisor/pkg/catalog"
	apperrors "github.com/NVIDIA/nutrition-advisor/pkg/errors"
)

type stubClassifier struct {
	status string
	err    error

	mu  sync.Mutex
	got []float64
}

func (c *stubClassifier) Classify(features []float64) (string, error) {
	c.mu.Lock()
	c.got = append([]float64(nil), features...)
	c.mu.Unlock()
	return c.status, c.err
}

type stubScorer struct {
	scores []float64
	err    error

	mu    sync.Mutex
	child map[string]any
}

func (s *stubScorer) Score(child map[string]any, _ []map[string]any) ([]float64, error) {
	s.mu.Lock()
	s.child = child
	s.mu.Unlock()
	return s.scores, s.err
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.FoodItem{
		{"label": "Nasi", "Energy": 180.0},
		{"label": "Tempe", "Energy": 190.0},
		{"label": "Tahu", "Energy": 80.0},
		{"label": "Telur", "Energy": 155.0},
		{"label": "Ikan", "Energy": 120.0},
		{"label": "Bayam", "Energy": 23.0},
		{"label": "Pisang", "Energy": 89.0},
	})
	require.NoError(t, err)
	return c
}

func testService(t *testing.T, c Classifier, s Scorer, opts ...Option) *Service {
	t.Helper()
	svc, err := NewService(c, s, testCatalog(t), opts...)
	require.NoError(t, err)
	return svc
}

func labels(items []catalog.FoodItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Label()
	}
	return out
}

var sevenScores = []float64{0.1, 0.8, 0.3, 0.9, 0.8, -0.2, 0.5}

func TestService_Process(t *testing.T) {
	cls := &stubClassifier{status: "Gizi Baik"}
	sc := &stubScorer{scores: sevenScores}
	svc := testService(t, cls, sc)

	res, err := svc.Process(context.Background(), validRaw())
	require.NoError(t, err)

	assert.Equal(t, "Gizi Baik", res.NutritionStatus)
	assert.InDelta(t, 20.71, res.BMI, 1e-9)
	assert.InDelta(t, 10.95, res.BodyFatPercentage, 1e-9)
	assert.InDelta(t, 1124.36, res.BMR, 1e-9)
	// Top five are Telur, Tempe, Ikan, Pisang, Tahu; the preferences pick two.
	assert.Equal(t, []string{"Tempe", "Ikan"}, labels(res.Foods))

	assert.Equal(t, []float64{20.71, 10.95, 10, 1}, roundAll(cls.got))

	assert.Equal(t, "Gizi Baik", sc.child[ColumnNutritionStatus])
	assert.Equal(t, "Tempe,Ikan", sc.child[ColumnFoodPreferences])
	assert.Equal(t, "Sehat", sc.child[ColumnHealthConditions])
	assert.Equal(t, sc.child[ColumnBMR], sc.child[ColumnCalories])
	assert.Equal(t, 10, sc.child[ColumnAge])
}

func roundAll(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = round2(f)
	}
	return out
}

func TestService_PreferenceFallback(t *testing.T) {
	svc := testService(t, &stubClassifier{status: "Obesitas"}, &stubScorer{scores: sevenScores})

	raw := validRaw()
	raw["food_preferences"] = "Bayam"
	res, err := svc.Process(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Telur", "Tempe", "Ikan", "Pisang", "Tahu"}, labels(res.Foods))
}

func TestService_WithTopK(t *testing.T) {
	svc := testService(t, &stubClassifier{status: "x"}, &stubScorer{scores: sevenScores}, WithTopK(2))

	raw := validRaw()
	raw["food_preferences"] = "Ikan"
	res, err := svc.Process(context.Background(), raw)
	require.NoError(t, err)
	// Ikan is third, outside the top two, so the filter falls back.
	assert.Equal(t, []string{"Telur", "Tempe"}, labels(res.Foods))

	svc = testService(t, &stubClassifier{status: "x"}, &stubScorer{scores: sevenScores}, WithTopK(0))
	assert.Equal(t, DefaultTopK, svc.topK)
}

func TestService_WithTopKNeverExceedsDefault(t *testing.T) {
	svc := testService(t, &stubClassifier{status: "x"}, &stubScorer{scores: sevenScores}, WithTopK(7))
	assert.Equal(t, DefaultTopK, svc.topK)

	res, err := svc.Process(context.Background(), validRaw())
	require.NoError(t, err)
	assert.Len(t, res.Foods, DefaultTopK)
}

func TestService_ValidationError(t *testing.T) {
	cls := &stubClassifier{status: "x"}
	svc := testService(t, cls, &stubScorer{scores: sevenScores})

	_, err := svc.Process(context.Background(), without("weight"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeMissingField, errorCode(t, err))
	assert.Nil(t, cls.got, "classifier must not run on invalid input")
}

func TestService_ModelFailures(t *testing.T) {
	boom := errors.New("tensor shape mismatch")

	tests := []struct {
		name    string
		cls     *stubClassifier
		sc      *stubScorer
		wantMsg string
	}{
		{"classifier", &stubClassifier{err: boom}, &stubScorer{scores: sevenScores}, "failed to classify nutrition status"},
		{"scorer", &stubClassifier{status: "x"}, &stubScorer{err: boom}, "failed to score foods"},
		{"short scores", &stubClassifier{status: "x"}, &stubScorer{scores: []float64{0.1}}, "scorer returned 1 scores for 7 foods"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := testService(t, tt.cls, tt.sc).Process(context.Background(), validRaw())
			require.Error(t, err)
			assert.Nil(t, res)
			assert.Equal(t, apperrors.ErrCodeInternal, errorCode(t, err))
			assert.ErrorContains(t, err, tt.wantMsg)
		})
	}
}

func TestService_ConcurrentUse(t *testing.T) {
	svc := testService(t, &stubClassifier{status: "Gizi Baik"}, &stubScorer{scores: sevenScores})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.Process(context.Background(), validRaw())
			assert.NoError(t, err)
			assert.Equal(t, []string{"Tempe", "Ikan"}, labels(res.Foods))
		}()
	}
	wg.Wait()
}

func TestNewService_RequiresDependencies(t *testing.T) {
	_, err := NewService(nil, &stubScorer{}, testCatalog(t))
	assert.Error(t, err)
	_, err = NewService(&stubClassifier{}, nil, testCatalog(t))
	assert.Error(t, err)
	_, err = NewService(&stubClassifier{}, &stubScorer{}, nil)
	assert.Error(t, err)
	_, err = NewServiceFromBundle(nil)
	assert.Error(t, err)
}

func TestNewServiceFromBundle_SampleArtifacts(t *testing.T) {
	b, err := artifact.Load(context.Background(), "../artifact/testdata/bundle", artifact.LoadOptions{})
	require.NoError(t, err)

	svc, err := NewServiceFromBundle(b)
	require.NoError(t, err)

	res, err := svc.Process(context.Background(), validRaw())
	require.NoError(t, err)
	assert.Equal(t, "Gizi Baik", res.NutritionStatus)
	assert.NotEmpty(t, res.Foods)
	assert.LessOrEqual(t, len(res.Foods), DefaultTopK)
}
