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

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/nutrition-advisor/pkg/k8s/client"
	"github.com/NVIDIA/nutrition-advisor/pkg/logging"
	"github.com/NVIDIA/nutrition-advisor/pkg/serializer"
)

const (
	name           = "nutri"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Flag constructors return fresh flags so every command tree parses into
// its own values.
func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output destination: file path or ConfigMap URI (cm://namespace/name). Default: stdout",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatJSON),
		Usage:   fmt.Sprintf("Output format (supported values: %v)", serializer.SupportedFormats()),
	}
}

func kubeconfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "kubeconfig",
		Usage:   "Path to kubeconfig for cm:// sources and outputs",
		Sources: cli.EnvVars("KUBECONFIG"),
	}
}

func registryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "plain-http",
			Usage:   "Use HTTP instead of HTTPS for the registry",
			Sources: cli.EnvVars("REGISTRY_PLAIN_HTTP"),
		},
		&cli.BoolFlag{
			Name:    "insecure-tls",
			Usage:   "Skip registry TLS certificate verification",
			Sources: cli.EnvVars("REGISTRY_INSECURE_TLS"),
		},
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Child nutrition assessment CLI",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date)
			return ctx, nil
		},
		Commands: []*cli.Command{
			assessCmd(),
			metricsCmd(),
			pullCmd(),
			packageCmd(),
		},
	}
}

// Execute runs the CLI with os.Args and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// parseOutputFormat reads and checks the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, supported values: %v", f, serializer.SupportedFormats())
	}
	return f, nil
}

// writeOutput serializes v to the --output destination.
func writeOutput(ctx context.Context, cmd *cli.Command, v any) error {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	ser, err := newSerializer(cmd, format)
	if err != nil {
		return err
	}
	defer func() {
		if closer, ok := ser.(serializer.Closer); ok {
			if err := closer.Close(); err != nil {
				slog.Warn("failed to close serializer", "error", err)
			}
		}
	}()

	return ser.Serialize(ctx, v)
}

// newSerializer honors --kubeconfig for cm:// outputs.
func newSerializer(cmd *cli.Command, format serializer.Format) (serializer.Serializer, error) {
	out := strings.TrimSpace(cmd.String("output"))
	if !strings.HasPrefix(out, serializer.ConfigMapURIScheme) {
		return serializer.NewFileWriterOrStdout(format, out), nil
	}

	namespace, cmName, _, err := serializer.ParseConfigMapURI(out)
	if err != nil {
		return nil, fmt.Errorf("invalid output %q: %w", out, err)
	}
	c, _, err := client.GetKubeClientWithConfig(cmd.String("kubeconfig"))
	if err != nil {
		return nil, fmt.Errorf("failed to get kubernetes client: %w", err)
	}
	return serializer.NewConfigMapWriter(c, namespace, cmName, format), nil
}
