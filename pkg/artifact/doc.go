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

// Package artifact loads the model bundle the service runs on: a scaler,
// a label decoder, the classifier network, two feature encoders, the dual
// tower recommender and the food catalog, all named by a manifest.yaml.
//
// A bundle can live in a local directory, in an OCI registry
// (oci://registry/repository:tag, pulled with ORAS) or in a Kubernetes
// ConfigMap (cm://namespace/name) whose keys are the manifest entries.
//
//	bundle, err := artifact.Load(ctx, "oci://ghcr.io/nvidia/nutrition-bundle:v1", artifact.LoadOptions{})
//
// Package and Push publish a bundle directory to a registry.
package artifact
