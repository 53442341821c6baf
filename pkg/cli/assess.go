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
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/nutrition-advisor/pkg/artifact"
	"github.com/NVIDIA/nutrition-advisor/pkg/assessment"
	"github.com/NVIDIA/nutrition-advisor/pkg/header"
	"github.com/NVIDIA/nutrition-advisor/pkg/k8s/client"
	"github.com/NVIDIA/nutrition-advisor/pkg/serializer"
)

// AssessmentReport is the document written by the assess command.
type AssessmentReport struct {
	header.Header `yaml:",inline"`

	Profile assessment.Profile `json:"profile" yaml:"profile"`
	Metrics assessment.Metrics `json:"metrics" yaml:"metrics"`
	Result  *assessment.Result `json:"result" yaml:"result"`
}

// profileFlags map CLI flags onto request fields.
var profileFlags = []struct {
	flag  string
	field string
}{
	{"age", assessment.FieldAge},
	{"height", assessment.FieldHeight},
	{"weight", assessment.FieldWeight},
	{"gender", assessment.FieldGender},
	{"food-preferences", assessment.FieldFoodPreferences},
	{"health-conditions", assessment.FieldHealthConditions},
}

func profileCLIFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "age",
			Usage: "Age in years (1-18)",
		},
		&cli.FloatFlag{
			Name:  "height",
			Usage: "Height in centimeters",
		},
		&cli.FloatFlag{
			Name:  "weight",
			Usage: "Weight in kilograms",
		},
		&cli.IntFlag{
			Name:  "gender",
			Usage: "Gender: 1 male, 0 female",
		},
	}
}

func assessCmd() *cli.Command {
	flags := append(profileCLIFlags(),
		&cli.StringFlag{
			Name:  "food-preferences",
			Usage: "Comma separated food labels, matched exactly (e.g., Tempe,Ikan)",
		},
		&cli.StringFlag{
			Name: "health-conditions",
			Usage: fmt.Sprintf("Health condition (supported values: %v)",
				assessment.HealthConditions),
		},
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"f"},
			Usage: `Path/URI of a JSON or YAML request body.
	Supports: file paths, HTTP/HTTPS URLs, or ConfigMap URIs (cm://namespace/name[/key]).
	Profile flags override fields read from the input.`,
		},
		&cli.StringFlag{
			Name:    "artifacts",
			Aliases: []string{"a"},
			Value:   "./artifacts",
			Usage:   "Artifact bundle: directory, manifest file, oci://registry/repository:tag or cm://namespace/name",
			Sources: cli.EnvVars("ARTIFACTS"),
		},
		&cli.StringFlag{
			Name:    "cache-dir",
			Usage:   "Destination for bundles pulled from a registry",
			Sources: cli.EnvVars("ARTIFACTS_CACHE_DIR"),
		},
		&cli.IntFlag{
			Name:    "top-k",
			Value:   assessment.DefaultTopK,
			Usage:   fmt.Sprintf("Number of foods kept after ranking (1-%d)", assessment.DefaultTopK),
			Sources: cli.EnvVars("TOP_K"),
		},
		kubeconfigFlag(),
		outputFlag(),
		formatFlag(),
	)
	flags = append(flags, registryFlags()...)

	return &cli.Command{
		Name:                  "assess",
		EnableShellCompletion: true,
		Usage:                 "Assess a child's nutrition status and recommend foods",
		Description: `Run the full assessment offline against an artifact bundle:
  - Validate the profile
  - Compute BMI, body fat percentage and BMR
  - Classify the nutrition status
  - Rank the food catalog and apply the food preferences

Examples:
  nutri assess --age 10 --height 130 --weight 35 --gender 1 \
    --food-preferences Tempe,Ikan --health-conditions Sehat

  nutri assess -f child.yaml --artifacts oci://ghcr.io/nvidia/nutrition-bundle:v1 --format table`,
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			topK := int(cmd.Int("top-k"))
			if topK < 1 || topK > assessment.DefaultTopK {
				return fmt.Errorf("--top-k must be between 1 and %d, got %d", assessment.DefaultTopK, topK)
			}

			profile, err := profileFromCmd(ctx, cmd)
			if err != nil {
				return err
			}

			bundle, err := artifact.Load(ctx, cmd.String("artifacts"), artifact.LoadOptions{
				CacheDir:   cmd.String("cache-dir"),
				Kubeconfig: cmd.String("kubeconfig"),
				Registry:   registryOptions(cmd),
			})
			if err != nil {
				return fmt.Errorf("failed to load artifacts: %w", err)
			}

			svc, err := assessment.NewServiceFromBundle(bundle, assessment.WithTopK(topK))
			if err != nil {
				return err
			}

			res, err := svc.Assess(ctx, *profile)
			if err != nil {
				return err
			}

			return writeOutput(ctx, cmd, AssessmentReport{
				Header: header.New(header.KindAssessment,
					header.WithVersion(version),
					header.WithMetadata("artifacts", bundle.Source),
					header.WithMetadata("bundle", bundle.Manifest.Name),
					header.WithMetadata("release", bundle.Manifest.Release)),
				Profile: *profile,
				Metrics: assessment.ComputeMetrics(*profile),
				Result:  res,
			})
		},
	}
}

// profileFromCmd merges --input with the profile flags and validates the
// result the same way the HTTP API does.
func profileFromCmd(ctx context.Context, cmd *cli.Command) (*assessment.Profile, error) {
	raw := map[string]any{}

	if input := strings.TrimSpace(cmd.String("input")); input != "" {
		loaded, err := readRequest(ctx, input, cmd.String("kubeconfig"))
		if err != nil {
			return nil, fmt.Errorf("failed to read input from %q: %w", input, err)
		}
		if loaded != nil {
			raw = loaded
		}
	}

	for _, pf := range profileFlags {
		if !cmd.IsSet(pf.flag) {
			continue
		}
		switch pf.field {
		case assessment.FieldAge, assessment.FieldGender:
			raw[pf.field] = int(cmd.Int(pf.flag))
		case assessment.FieldHeight, assessment.FieldWeight:
			raw[pf.field] = cmd.Float(pf.flag)
		default:
			raw[pf.field] = cmd.String(pf.flag)
		}
	}

	return assessment.ParseProfile(raw)
}

func readRequest(ctx context.Context, input, kubeconfig string) (map[string]any, error) {
	if strings.HasPrefix(input, serializer.ConfigMapURIScheme) {
		c, _, err := client.GetKubeClientWithConfig(kubeconfig)
		if err != nil {
			return nil, fmt.Errorf("failed to get kubernetes client: %w", err)
		}
		m, err := serializer.FromConfigMap[map[string]any](ctx, c, input)
		if err != nil {
			return nil, err
		}
		return *m, nil
	}

	m, err := serializer.FromFile[map[string]any](ctx, input)
	if err != nil {
		return nil, err
	}
	return *m, nil
}

func registryOptions(cmd *cli.Command) artifact.RegistryOptions {
	return artifact.RegistryOptions{
		PlainHTTP:   cmd.Bool("plain-http"),
		InsecureTLS: cmd.Bool("insecure-tls"),
	}
}
