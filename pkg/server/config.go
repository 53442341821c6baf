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

package server

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/nutrition-advisor/pkg/defaults"
)

// Environment variables read by NewConfig.
const (
	EnvPort            = "PORT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT_SECONDS"
	EnvRateLimit       = "RATE_LIMIT"
	EnvRateLimitBurst  = "RATE_LIMIT_BURST"
)

const (
	defaultPort           = 8080
	defaultRateLimit      = 100
	defaultRateLimitBurst = 200
)

// Config holds server configuration
type Config struct {
	Name    string
	Version string

	// Handlers are the API routes. "/" is public, every other path is
	// gated by APIKey.
	Handlers map[string]http.HandlerFunc

	Address string
	Port    int

	RateLimit      rate.Limit // requests per second
	RateLimitBurst int

	// APIKey is the shared secret expected in the x-api-key header.
	// Empty disables the check.
	APIKey string

	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// NewConfig returns the default configuration with environment overrides
// applied. Malformed or non-positive overrides are ignored.
func NewConfig() *Config {
	return configFromEnv(os.Getenv)
}

func configFromEnv(getenv func(string) string) *Config {
	cfg := &Config{
		Name:              "server",
		Version:           "undefined",
		Port:              defaultPort,
		RateLimit:         defaultRateLimit,
		RateLimitBurst:    defaultRateLimitBurst,
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}

	if port, ok := positiveInt(getenv(EnvPort)); ok && port <= 65535 {
		cfg.Port = port
	}
	// match the pod's termination grace period
	if seconds, ok := positiveInt(getenv(EnvShutdownTimeout)); ok {
		cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
	}
	if v := getenv(EnvRateLimit); v != "" {
		if limit, err := strconv.ParseFloat(v, 64); err == nil && limit > 0 {
			cfg.RateLimit = rate.Limit(limit)
		}
	}
	if burst, ok := positiveInt(getenv(EnvRateLimitBurst)); ok {
		cfg.RateLimitBurst = burst
	}

	return cfg
}

func positiveInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
