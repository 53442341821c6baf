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

// Package header provides the kind, apiVersion and metadata fields shared
// by documents the CLI writes, so saved assessments and transfer records
// are self-describing:
//
//	report := Report{Header: header.New(header.KindAssessment, header.WithVersion("1.0.0"))}
//
// Metadata always holds an RFC 3339 UTC timestamp.
package header
