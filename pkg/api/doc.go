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

// Package api wires the nutrition advisor HTTP service: configuration,
// structured logging, artifact loading and the route table.
//
// # Usage
//
//	import (
//	    "log"
//	    "github.com/NVIDIA/nutrition-advisor/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Architecture
//
// The API layer is responsible for:
//   - Reading configuration from .env and the environment
//   - Configuring structured logging with application name and version
//   - Loading the artifact bundle once, before the listener starts
//   - Routing /process to the assessment service
//
// The pkg/server package handles the listener lifecycle, the middleware
// chain, the x-api-key check, health and readiness, and Prometheus metrics.
//
// # Endpoints
//
// Application endpoints (rate limited, x-api-key required when API_KEY is set):
//   - POST /process - Assess a child and recommend foods
//
// System endpoints:
//   - GET /        - Service info and route index
//   - GET /health  - Liveness, {"status":"ok","timestamp":...,"version":"1.0.0"}
//   - GET /ready   - Readiness
//   - GET /metrics - Prometheus metrics
//
// # Request Body (POST /process)
//
//	{
//	  "age": 10,
//	  "height": 130,
//	  "weight": 35,
//	  "gender": 1,
//	  "food_preferences": "Tempe,Ikan",
//	  "health_conditions": "Sehat"
//	}
//
// Example curl command:
//
//	curl -s -X POST http://localhost:8080/process \
//	  -H "x-api-key: $API_KEY" \
//	  -d '{"age":10,"height":130,"weight":35,"gender":1,"food_preferences":"Tempe","health_conditions":"Sehat"}'
//
// # Configuration
//
//   - API_KEY: shared secret for x-api-key (empty disables the check)
//   - ARTIFACTS: bundle directory, manifest, oci:// or cm:// source (default ./artifacts)
//   - ARTIFACTS_CACHE_DIR: destination of pulled OCI bundles
//   - KUBECONFIG: kubeconfig for cm:// sources
//   - TOP_K: foods kept after ranking (default 5)
//   - LOG_LEVEL: debug, info, warn or error (default info)
//   - REGISTRY_PLAIN_HTTP, REGISTRY_INSECURE_TLS: registry transport
//   - PORT, SHUTDOWN_TIMEOUT_SECONDS, RATE_LIMIT, RATE_LIMIT_BURST: read by pkg/server
package api
