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

// Package server provides the HTTP server shared by the nutrition advisor
// daemon: routing, middleware, health probes and the JSON error envelope.
//
// # Usage
//
//	routes := map[string]http.HandlerFunc{
//	    "/process": svc.HandleProcess,
//	}
//
//	s := server.New(
//	    server.WithName("nutrid"),
//	    server.WithVersion("1.0.0"),
//	    server.WithAPIKey(os.Getenv("API_KEY")),
//	    server.WithHandler(routes),
//	)
//	if err := s.Run(ctx); err != nil {
//	    slog.Error("server exited", "error", err)
//	}
//
// # Endpoints
//
// GET /health - liveness probe, never authenticated
//
//	{"status": "ok", "timestamp": "2026-01-02T03:04:05.000000Z", "version": "1.0.0"}
//
// GET /ready - readiness probe, 503 until the server has started
//
// GET /metrics - Prometheus exposition
//
// GET / - server name, version and registered routes; 404 for unknown paths
//
// Routes passed through WithHandler (other than "/") require the X-Api-Key
// header when an API key is configured. A missing or mismatched key yields
// 401 with {"error": "Unauthorized"}.
//
// # Middleware
//
// Every handler runs inside, from outermost: Prometheus metrics, API version
// negotiation, request ID tracking (X-Request-Id), panic recovery, token
// bucket rate limiting (golang.org/x/time/rate) and request logging.
//
// # Errors
//
// Non-2xx responses share one body:
//
//	{
//	  "error": "Field 'age' is required.",
//	  "code": "MISSING_FIELD",
//	  "message": "Field 'age' is required.",
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2026-01-02T03:04:05Z",
//	  "retryable": false
//	}
//
// HTTPStatusFromCode maps error codes from pkg/errors onto status codes:
// validation codes to 400, UNAUTHORIZED to 401, and anything unknown to 500.
package server
