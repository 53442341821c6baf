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

// Package serializer reads and writes JSON, YAML and table data across
// local files, http(s) URLs, Kubernetes ConfigMaps and HTTP responses.
//
// Reading:
//
//	manifest, err := serializer.FromFile[artifact.Manifest](ctx, "artifacts/manifest.yaml")
//	scaler, err := serializer.FromConfigMap[model.Scaler](ctx, kc, "cm://nutrition/model/scaler.json")
//
// Writing:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatTable, "")
//	err := w.Serialize(ctx, result)
//
// HTTP handlers respond with RespondJSON, which encodes before writing
// headers so a failed encoding never leaves a partial body.
package serializer
