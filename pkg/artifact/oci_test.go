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

package artifact

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"oras.land/oras-go/v2/content/oci"
)

func TestPackageAndPull_LocalLayout(t *testing.T) {
	ctx := context.Background()

	res, err := Package(ctx, PackageOptions{
		SourceDir:   sampleBundle,
		OutputDir:   t.TempDir(),
		Tag:         "v1",
		Annotations: map[string]string{"org.opencontainers.image.title": "nutrition-advisor-sample"},
	})
	require.NoError(t, err)
	assert.Equal(t, "v1", res.Tag)
	assert.Contains(t, res.Digest, "sha256:")

	_, err = os.Stat(filepath.Join(res.StorePath, "index.json"))
	require.NoError(t, err)

	layout, err := oci.New(res.StorePath)
	require.NoError(t, err)

	dest := t.TempDir()
	digest, err := pullFrom(ctx, layout, "v1", dest)
	require.NoError(t, err)
	assert.Equal(t, res.Digest, digest)

	_, err = os.Stat(filepath.Join(dest, ManifestFile))
	require.NoError(t, err)

	b, err := Load(ctx, dest, LoadOptions{})
	require.NoError(t, err)
	assertSampleBundle(t, b)
}

func TestPackage_Reproducible(t *testing.T) {
	ctx := context.Background()
	src := copyBundle(t)
	annotations := map[string]string{ociv1.AnnotationCreated: "2026-01-01T00:00:00Z"}

	first, err := Package(ctx, PackageOptions{SourceDir: src, OutputDir: t.TempDir(), Tag: "v1", Annotations: annotations})
	require.NoError(t, err)
	second, err := Package(ctx, PackageOptions{SourceDir: src, OutputDir: t.TempDir(), Tag: "v1", Annotations: annotations})
	require.NoError(t, err)

	assert.Equal(t, first.Digest, second.Digest)
}

func TestPackage_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Package(ctx, PackageOptions{SourceDir: sampleBundle, OutputDir: t.TempDir()})
	assert.ErrorContains(t, err, "tag is required")

	_, err = Package(ctx, PackageOptions{SourceDir: t.TempDir(), OutputDir: t.TempDir(), Tag: "v1"})
	assert.ErrorContains(t, err, ManifestFile)
}

func TestPushPull_RequireOCISource(t *testing.T) {
	ctx := context.Background()
	local := &Source{Kind: SourceLocal, ManifestPath: "manifest.yaml"}

	_, err := Push(ctx, t.TempDir(), "v1", local, RegistryOptions{})
	assert.Error(t, err)

	_, err = Pull(ctx, local, t.TempDir(), RegistryOptions{})
	assert.Error(t, err)

	_, err = Pull(ctx, nil, t.TempDir(), RegistryOptions{})
	assert.Error(t, err)
}
