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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	cfg := configFromEnv(envOf(nil))

	assert.Empty(t, cfg.Address)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, rate.Limit(100), cfg.RateLimit)
	assert.Equal(t, 200, cfg.RateLimitBurst)
	assert.Empty(t, cfg.APIKey, "auth is disabled until a key is configured")
	assert.Equal(t, 5*time.Second, cfg.ReadHeaderTimeout)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 120*time.Second, cfg.IdleTimeout)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	cfg := configFromEnv(envOf(map[string]string{
		EnvPort:            "9090",
		EnvShutdownTimeout: "45",
		EnvRateLimit:       "2.5",
		EnvRateLimitBurst:  "5",
	}))

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 45*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, rate.Limit(2.5), cfg.RateLimit)
	assert.Equal(t, 5, cfg.RateLimitBurst)
}

func TestConfigFromEnv_InvalidValuesKeepDefaults(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"port not a number", map[string]string{EnvPort: "invalid"}},
		{"port out of range", map[string]string{EnvPort: "70000"}},
		{"negative shutdown", map[string]string{EnvShutdownTimeout: "-1"}},
		{"zero rate", map[string]string{EnvRateLimit: "0"}},
		{"burst not a number", map[string]string{EnvRateLimitBurst: "lots"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := configFromEnv(envOf(tt.env))
			def := configFromEnv(envOf(nil))
			assert.Equal(t, def, cfg)
		})
	}
}

func TestNewConfig_ReadsProcessEnv(t *testing.T) {
	t.Setenv(EnvPort, "9191")
	assert.Equal(t, 9191, NewConfig().Port)
}
