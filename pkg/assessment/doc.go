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

// Package assessment turns a child's measurements into a nutrition
// assessment: it validates the request, derives BMI, body fat and BMR,
// classifies the nutrition status, ranks the food catalog by similarity
// and narrows the top foods to the requested preferences.
//
// The models are reached through the Classifier and Scorer interfaces so
// the pipeline can run against a loaded artifact bundle or test doubles.
package assessment
