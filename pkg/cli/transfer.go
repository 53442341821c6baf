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
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/nutrition-advisor/pkg/artifact"
	"github.com/NVIDIA/nutrition-advisor/pkg/header"
)

// TransferResult reports a pulled or pushed bundle.
type TransferResult struct {
	header.Header `yaml:",inline"`

	Reference   string `json:"reference" yaml:"reference"`
	Digest      string `json:"digest" yaml:"digest"`
	Destination string `json:"destination,omitempty" yaml:"destination,omitempty"`
	StorePath   string `json:"storePath,omitempty" yaml:"storePath,omitempty"`
}

func pullCmd() *cli.Command {
	return &cli.Command{
		Name:                  "pull",
		EnableShellCompletion: true,
		Usage:                 "Download an artifact bundle from an OCI registry",
		Description: `Pull an artifact bundle packaged with "nutri package" into a local directory
that can be passed to --artifacts or ARTIFACTS.

Example:
  nutri pull --source oci://ghcr.io/nvidia/nutrition-bundle:v1 --dir ./artifacts`,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "source",
				Aliases:  []string{"s"},
				Required: true,
				Usage:    "Bundle reference (oci://registry/repository[:tag])",
			},
			&cli.StringFlag{
				Name:  "dir",
				Value: "./artifacts",
				Usage: "Destination directory",
			},
			outputFlag(),
			formatFlag(),
		}, registryFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			src, err := parseOCIFlag(cmd.String("source"))
			if err != nil {
				return err
			}

			dir := cmd.String("dir")
			digest, err := artifact.Pull(ctx, src, dir, registryOptions(cmd))
			if err != nil {
				return err
			}

			return writeOutput(ctx, cmd, TransferResult{
				Header:      header.New(header.KindBundleTransfer, header.WithVersion(version)),
				Reference:   src.ImageReference(),
				Digest:      digest,
				Destination: dir,
			})
		},
	}
}

func packageCmd() *cli.Command {
	return &cli.Command{
		Name:                  "package",
		EnableShellCompletion: true,
		Usage:                 "Package an artifact bundle as an OCI artifact and optionally push it",
		Description: `Pack a bundle directory (it must hold manifest.yaml) into a local OCI
image layout. With --push the packaged bundle is copied to a registry.

Example:
  nutri package --dir ./artifacts --tag v1 \
    --push oci://ghcr.io/nvidia/nutrition-bundle:v1`,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Value: "./artifacts",
				Usage: "Bundle directory to package",
			},
			&cli.StringFlag{
				Name:  "layout",
				Value: "./dist/oci",
				Usage: "OCI image layout directory to write",
			},
			&cli.StringFlag{
				Name:  "tag",
				Usage: "Tag in the layout (default: the --push tag, or latest)",
			},
			&cli.StringFlag{
				Name:  "push",
				Usage: "Registry destination (oci://registry/repository[:tag])",
			},
			&cli.StringSliceFlag{
				Name:  "annotation",
				Usage: "Manifest annotation (format: key=value, can be repeated)",
			},
			outputFlag(),
			formatFlag(),
		}, registryFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			annotations, err := parseAnnotations(cmd.StringSlice("annotation"))
			if err != nil {
				return err
			}

			var dst *artifact.Source
			if push := cmd.String("push"); push != "" {
				if dst, err = parseOCIFlag(push); err != nil {
					return err
				}
			}

			tag := cmd.String("tag")
			if tag == "" {
				tag = artifact.DefaultTag
				if dst != nil {
					tag = dst.Tag
				}
			}

			pkg, err := artifact.Package(ctx, artifact.PackageOptions{
				SourceDir:   cmd.String("dir"),
				OutputDir:   cmd.String("layout"),
				Tag:         tag,
				Annotations: annotations,
			})
			if err != nil {
				return err
			}

			res := TransferResult{
				Header:    header.New(header.KindBundleTransfer, header.WithVersion(version)),
				Reference: tag,
				Digest:    pkg.Digest,
				StorePath: pkg.StorePath,
			}

			if dst != nil {
				if dst.Tag != tag {
					slog.Info("pushing layout tag under a different registry tag", "layout", tag, "registry", dst.Tag)
				}
				pushed, err := artifact.Push(ctx, pkg.StorePath, tag, dst, registryOptions(cmd))
				if err != nil {
					return err
				}
				res.Reference = dst.ImageReference()
				res.Digest = pushed
			}

			return writeOutput(ctx, cmd, res)
		},
	}
}

func parseOCIFlag(s string) (*artifact.Source, error) {
	if !strings.HasPrefix(s, artifact.OCIScheme) {
		s = artifact.OCIScheme + s
	}
	src, err := artifact.ParseSource(s)
	if err != nil {
		return nil, err
	}
	return src, nil
}

func parseAnnotations(values []string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(values))
	for _, v := range values {
		key, val, ok := strings.Cut(v, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid annotation %q, expected key=value", v)
		}
		out[key] = val
	}
	return out, nil
}
