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
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/NVIDIA/nutrition-advisor/pkg/assessment"
	"github.com/NVIDIA/nutrition-advisor/pkg/header"
)

// Text output labels, translated per locale below.
const (
	msgBMI      = "Body mass index"
	msgBodyFat  = "Body fat percentage"
	msgBMR      = "Basal metabolic rate"
	msgCalories = "Daily calories"
)

// MetricsReport is the document written by the metrics command.
type MetricsReport struct {
	header.Header `yaml:",inline"`

	Profile assessment.Profile `json:"profile" yaml:"profile"`
	Metrics assessment.Metrics `json:"metrics" yaml:"metrics"`
}

var supportedLocales = []language.Tag{language.English, language.Indonesian}

func init() {
	id := language.Indonesian
	_ = message.SetString(id, msgBMI, "Indeks massa tubuh")
	_ = message.SetString(id, msgBodyFat, "Persentase lemak tubuh")
	_ = message.SetString(id, msgBMR, "Tingkat metabolisme basal")
	_ = message.SetString(id, msgCalories, "Kalori harian")
}

func metricsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "metrics",
		EnableShellCompletion: true,
		Usage:                 "Compute BMI, body fat percentage and BMR without any models",
		Description: `Compute the body metrics of a profile using the closed-form formulas only.
No artifact bundle is needed.

With --locale the result is printed as localized text instead of --format:

  nutri metrics --age 10 --height 130 --weight 35 --gender 1 --locale id`,
		Flags: append(profileCLIFlags(),
			&cli.StringFlag{
				Name:  "locale",
				Usage: fmt.Sprintf("Print localized text (supported values: %v)", supportedLocales),
			},
			outputFlag(),
			formatFlag(),
			kubeconfigFlag(),
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := metricsProfile(cmd)
			if err != nil {
				return err
			}
			m := assessment.ComputeMetrics(*p)

			if loc := cmd.String("locale"); loc != "" {
				tag, err := matchLocale(loc)
				if err != nil {
					return err
				}
				return printMetrics(os.Stdout, tag, m)
			}

			return writeOutput(ctx, cmd, MetricsReport{
				Header:  header.New(header.KindBodyMetrics, header.WithVersion(version)),
				Profile: *p,
				Metrics: m,
			})
		},
	}
}

// metricsProfile validates only what the formulas read.
func metricsProfile(cmd *cli.Command) (*assessment.Profile, error) {
	for _, f := range []string{"age", "height", "weight", "gender"} {
		if !cmd.IsSet(f) {
			return nil, fmt.Errorf("flag --%s is required", f)
		}
	}

	p := &assessment.Profile{
		Age:              int(cmd.Int("age")),
		Height:           cmd.Float("height"),
		Weight:           cmd.Float("weight"),
		Gender:           assessment.Gender(cmd.Int("gender")),
		HealthConditions: assessment.ConditionHealthy,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func matchLocale(s string) (language.Tag, error) {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", s, err)
	}
	matched, _, confidence := language.NewMatcher(supportedLocales).Match(tag)
	if confidence == language.No {
		return language.Und, fmt.Errorf("unsupported locale %q, supported values: %v", s, supportedLocales)
	}
	return matched, nil
}

func printMetrics(w io.Writer, tag language.Tag, m assessment.Metrics) error {
	p := message.NewPrinter(tag)
	lines := []struct {
		key  message.Reference
		val  float64
		unit string
	}{
		{msgBMI, m.BMI, "kg/m²"},
		{msgBodyFat, m.BodyFatPercentage, "%"},
		{msgBMR, m.BMR, "kcal"},
		{msgCalories, m.Calories, "kcal"},
	}
	for _, l := range lines {
		if _, err := p.Fprintf(w, "%s: %.2f %s\n", p.Sprintf(l.key), l.val, l.unit); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}
