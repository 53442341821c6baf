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
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ManifestVersion is the only manifest schema this build reads.
const ManifestVersion = "v1"

// Manifest names every file of a model bundle. Paths are relative to the
// manifest, or absolute http(s) URLs, or cm://namespace/name/key entries.
type Manifest struct {
	Version   string `json:"version" yaml:"version" validate:"required,eq=v1"`
	Name      string `json:"name" yaml:"name" validate:"required"`
	Release   string `json:"release,omitempty" yaml:"release,omitempty"`
	Artifacts Files  `json:"artifacts" yaml:"artifacts" validate:"required"`
}

// Files lists the artifact paths of a bundle.
type Files struct {
	Scaler       string `json:"scaler" yaml:"scaler" validate:"required"`
	Labels       string `json:"labels" yaml:"labels" validate:"required"`
	Classifier   string `json:"classifier" yaml:"classifier" validate:"required"`
	ChildEncoder string `json:"child_encoder" yaml:"child_encoder" validate:"required"`
	FoodEncoder  string `json:"food_encoder" yaml:"food_encoder" validate:"required"`
	Recommender  string `json:"recommender" yaml:"recommender" validate:"required"`
	Catalog      string `json:"catalog" yaml:"catalog" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports every missing or invalid manifest field at once.
func (m *Manifest) Validate() error {
	err := validate.Struct(m)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid manifest: %w", err)
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid manifest: %s", strings.Join(problems, ", "))
}
