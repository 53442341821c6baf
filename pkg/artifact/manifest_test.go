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

package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validManifest() Manifest {
	return Manifest{
		Version: ManifestVersion,
		Name:    "sample",
		Artifacts: Files{
			Scaler:       "scaler.json",
			Labels:       "labels.json",
			Classifier:   "classifier.json",
			ChildEncoder: "child_encoder.json",
			FoodEncoder:  "food_encoder.json",
			Recommender:  "recommender.json",
			Catalog:      "foods.csv",
		},
	}
}

func TestManifest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Manifest)
		wantErr []string
	}{
		{name: "valid", mutate: func(*Manifest) {}},
		{
			name:    "wrong version",
			mutate:  func(m *Manifest) { m.Version = "v2" },
			wantErr: []string{"Manifest.Version", `"eq"`},
		},
		{
			name:    "missing name",
			mutate:  func(m *Manifest) { m.Name = "" },
			wantErr: []string{"Manifest.Name", `"required"`},
		},
		{
			name: "missing artifacts reported together",
			mutate: func(m *Manifest) {
				m.Artifacts.Scaler = ""
				m.Artifacts.Catalog = ""
			},
			wantErr: []string{"Manifest.Artifacts.Scaler", "Manifest.Artifacts.Catalog"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validManifest()
			tt.mutate(&m)
			err := m.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			for _, want := range tt.wantErr {
				assert.ErrorContains(t, err, want)
			}
		})
	}
}
