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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/NVIDIA/nutrition-advisor/pkg/assessment"
)

// Environment variables read by LoadConfig.
const (
	EnvAPIKey              = "API_KEY"
	EnvArtifacts           = "ARTIFACTS"
	EnvArtifactsCacheDir   = "ARTIFACTS_CACHE_DIR"
	EnvKubeconfig          = "KUBECONFIG"
	EnvTopK                = "TOP_K"
	EnvLogLevel            = "LOG_LEVEL"
	EnvRegistryPlainHTTP   = "REGISTRY_PLAIN_HTTP"
	EnvRegistryInsecureTLS = "REGISTRY_INSECURE_TLS"
)

// DefaultArtifacts is the bundle directory used when ARTIFACTS is unset.
const DefaultArtifacts = "./artifacts"

// Config is the service configuration.
type Config struct {
	// APIKey guards /process. Empty runs the service without authentication.
	APIKey string

	// Artifacts is the bundle source: a directory, a manifest file,
	// oci://registry/repository:tag or cm://namespace/name.
	Artifacts string

	// CacheDir receives bundles pulled from a registry.
	CacheDir string

	// Kubeconfig is used by ConfigMap sources.
	Kubeconfig string

	TopK     int
	LogLevel string

	RegistryPlainHTTP   bool
	RegistryInsecureTLS bool
}

// LoadConfig reads .env from the working directory when present, then the
// environment. Variables already set in the environment win over .env.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return configFromEnv(os.Getenv)
}

func configFromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		APIKey:     getenv(EnvAPIKey),
		Artifacts:  DefaultArtifacts,
		CacheDir:   getenv(EnvArtifactsCacheDir),
		Kubeconfig: getenv(EnvKubeconfig),
		TopK:       assessment.DefaultTopK,
		LogLevel:   "info",
	}

	if v := strings.TrimSpace(getenv(EnvArtifacts)); v != "" {
		cfg.Artifacts = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(getenv(EnvTopK)); v != "" {
		k, err := strconv.Atoi(v)
		if err != nil || k < 1 || k > assessment.DefaultTopK {
			return nil, fmt.Errorf("%s must be an integer between 1 and %d, got %q", EnvTopK, assessment.DefaultTopK, v)
		}
		cfg.TopK = k
	}

	var err error
	if cfg.RegistryPlainHTTP, err = boolEnv(getenv, EnvRegistryPlainHTTP); err != nil {
		return nil, err
	}
	if cfg.RegistryInsecureTLS, err = boolEnv(getenv, EnvRegistryInsecureTLS); err != nil {
		return nil, err
	}
	return cfg, nil
}

func boolEnv(getenv func(string) string, key string) (bool, error) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, v)
	}
	return b, nil
}
