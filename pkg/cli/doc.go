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

// Package cli implements the nutri command-line tool.
//
// # Commands
//
// assess - Run the full assessment offline:
//
//	nutri assess --age 10 --height 130 --weight 35 --gender 1 \
//	  --food-preferences Tempe,Ikan --health-conditions Sehat [--artifacts DIR|oci://...|cm://...]
//
// The profile can also come from a JSON or YAML request body with -f, read
// from a file, an HTTP/HTTPS URL or a ConfigMap. Profile flags override it.
//
// metrics - Compute BMI, body fat percentage and BMR with the formulas only:
//
//	nutri metrics --age 10 --height 130 --weight 35 --gender 0 [--locale id]
//
// pull - Download an artifact bundle from an OCI registry:
//
//	nutri pull --source oci://ghcr.io/nvidia/nutrition-bundle:v1 --dir ./artifacts
//
// package - Pack a bundle directory into an OCI layout and optionally push it:
//
//	nutri package --dir ./artifacts --tag v1 --push oci://ghcr.io/nvidia/nutrition-bundle:v1
//
// # Output
//
//	--output, -o   File path or cm://namespace/name (default: stdout)
//	--format, -t   json, yaml or table (default: json)
package cli
