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

package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/nutrition-advisor/pkg/artifact"
	"github.com/NVIDIA/nutrition-advisor/pkg/assessment"
	"github.com/NVIDIA/nutrition-advisor/pkg/logging"
	"github.com/NVIDIA/nutrition-advisor/pkg/server"
)

const (
	name           = "nutrid"
	versionDefault = "1.0.0"

	// ProcessPath is the assessment route.
	ProcessPath = "/process"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/nutrition-advisor/pkg/api.version=1.0.1"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// logConfigWarnings reports risky settings. It runs after the structured
// logger is installed so the records carry module and version.
func logConfigWarnings(cfg *Config) {
	if cfg.APIKey == "" {
		slog.Warn(EnvAPIKey + " is not set, /process accepts unauthenticated requests")
	}
}

// Serve loads the configuration and the artifact bundle, then serves the
// API until SIGINT or SIGTERM.
func Serve() error {
	ctx := context.Background()

	cfg, err := LoadConfig()
	if err != nil {
		logging.SetDefaultStructuredLogger(name, version)
		slog.Error("invalid configuration", "error", err)
		return err
	}

	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.LogLevel)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"artifacts", cfg.Artifacts,
	)
	logConfigWarnings(cfg)

	s, err := NewServer(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		return err
	}

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// NewServer loads the bundle named by cfg and returns a server routing
// /process to an assessment service built on it. Artifacts are loaded
// before the server exists, so it never accepts traffic without them.
func NewServer(ctx context.Context, cfg *Config) (*server.Server, error) {
	bundle, err := artifact.Load(ctx, cfg.Artifacts, artifact.LoadOptions{
		CacheDir:   cfg.CacheDir,
		Kubeconfig: cfg.Kubeconfig,
		Registry: artifact.RegistryOptions{
			PlainHTTP:   cfg.RegistryPlainHTTP,
			InsecureTLS: cfg.RegistryInsecureTLS,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load artifacts from %s: %w", cfg.Artifacts, err)
	}

	svc, err := assessment.NewServiceFromBundle(bundle, assessment.WithTopK(cfg.TopK))
	if err != nil {
		return nil, err
	}

	routes := map[string]http.HandlerFunc{
		ProcessPath: svc.HandleProcess,
	}

	return server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithAPIKey(cfg.APIKey),
		server.WithHandler(routes),
	), nil
}
