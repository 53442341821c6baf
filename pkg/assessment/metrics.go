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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	assessmentDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nutrition_assessment_duration_seconds",
			Help:    "Time spent computing one assessment, by outcome",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	nutritionStatusTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutrition_status_total",
			Help: "Assessments by predicted nutrition status",
		},
		[]string{"status"},
	)

	validationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutrition_validation_failures_total",
			Help: "Rejected requests by validation error code",
		},
		[]string{"code"},
	)

	preferenceFallbackTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nutrition_preference_fallback_total",
			Help: "Assessments where no top food matched the preferences and the unfiltered list was returned",
		},
	)
)
