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
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/file"
	"oras.land/oras-go/v2/content/oci"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"

	"github.com/NVIDIA/nutrition-advisor/pkg/defaults"
	apperrors "github.com/NVIDIA/nutrition-advisor/pkg/errors"
)

// ArtifactType is the OCI artifact type of a model bundle.
const ArtifactType = "application/vnd.nvidia.nutrition.bundle.v1"

// RegistryOptions configures the registry connection.
type RegistryOptions struct {
	// PlainHTTP talks HTTP instead of HTTPS.
	PlainHTTP bool
	// InsecureTLS skips certificate verification.
	InsecureTLS bool
}

// PackageOptions configures Package.
type PackageOptions struct {
	SourceDir   string
	OutputDir   string
	Tag         string
	Annotations map[string]string
}

// PackageResult describes a bundle packed into a local OCI layout.
type PackageResult struct {
	Digest    string
	Tag       string
	StorePath string
}

// Package packs the bundle directory SourceDir as a single reproducible
// layer into an OCI image layout under OutputDir.
func Package(ctx context.Context, opts PackageOptions) (*PackageResult, error) {
	if opts.Tag == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "tag is required to package a bundle")
	}
	if _, err := os.Stat(filepath.Join(opts.SourceDir, ManifestFile)); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("bundle directory %s has no %s", opts.SourceDir, ManifestFile), err)
	}

	absSource, err := filepath.Abs(opts.SourceDir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to resolve source directory", err)
	}
	storePath, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to resolve output directory", err)
	}

	fs, err := file.New(absSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create file store: %w", err)
	}
	defer func() { _ = fs.Close() }()
	fs.TarReproducible = true

	layer, err := fs.Add(ctx, ".", ociv1.MediaTypeImageLayerGzip, absSource)
	if err != nil {
		return nil, fmt.Errorf("failed to add bundle directory to store: %w", err)
	}

	manifestDesc, err := oras.PackManifest(ctx, fs, oras.PackManifestVersion1_1, ArtifactType,
		oras.PackManifestOptions{
			Layers:              []ociv1.Descriptor{layer},
			ManifestAnnotations: opts.Annotations,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to pack manifest: %w", err)
	}
	if err := fs.Tag(ctx, manifestDesc, opts.Tag); err != nil {
		return nil, fmt.Errorf("failed to tag manifest: %w", err)
	}

	layout, err := oci.New(storePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create OCI layout at %s: %w", storePath, err)
	}
	if _, err := oras.Copy(ctx, fs, opts.Tag, layout, opts.Tag, oras.DefaultCopyOptions); err != nil {
		return nil, fmt.Errorf("failed to copy bundle into OCI layout: %w", err)
	}

	slog.Info("bundle packaged",
		"source", absSource,
		"store", storePath,
		"tag", opts.Tag,
		"digest", manifestDesc.Digest.String())

	return &PackageResult{
		Digest:    manifestDesc.Digest.String(),
		Tag:       opts.Tag,
		StorePath: storePath,
	}, nil
}

// Push copies the bundle tagged tag in the OCI layout at storePath to the
// registry location in dst.
func Push(ctx context.Context, storePath, tag string, dst *Source, opts RegistryOptions) (string, error) {
	if dst == nil || dst.Kind != SourceOCI {
		return "", apperrors.New(apperrors.ErrCodeInvalidRequest, "push needs an oci:// destination")
	}

	layout, err := oci.New(storePath)
	if err != nil {
		return "", fmt.Errorf("failed to open OCI layout at %s: %w", storePath, err)
	}

	repo, err := newRepository(dst, opts)
	if err != nil {
		return "", err
	}

	desc, err := oras.Copy(ctx, layout, tag, repo, dst.Tag, oras.DefaultCopyOptions)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeUnavailable, "failed to push bundle to registry", err)
	}

	slog.Info("bundle pushed", "reference", dst.ImageReference(), "digest", desc.Digest.String())
	return desc.Digest.String(), nil
}

// Pull downloads the bundle at src into destDir and returns the manifest
// digest.
func Pull(ctx context.Context, src *Source, destDir string, opts RegistryOptions) (string, error) {
	if src == nil || src.Kind != SourceOCI {
		return "", apperrors.New(apperrors.ErrCodeInvalidRequest, "pull needs an oci:// source")
	}

	pullCtx, cancel := context.WithTimeout(ctx, defaults.ArtifactPullTimeout)
	defer cancel()

	repo, err := newRepository(src, opts)
	if err != nil {
		return "", err
	}

	slog.Info("pulling bundle", "reference", src.ImageReference(), "destination", destDir)

	digest, err := pullFrom(pullCtx, repo, src.Tag, destDir)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeUnavailable,
			fmt.Sprintf("failed to pull %s", src.ImageReference()), err)
	}
	return digest, nil
}

// pullFrom unpacks the artifact tagged tag in target into destDir.
func pullFrom(ctx context.Context, target oras.ReadOnlyTarget, tag, destDir string) (string, error) {
	absDest, err := filepath.Abs(destDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve destination: %w", err)
	}
	if err := os.MkdirAll(absDest, 0o755); err != nil {
		return "", fmt.Errorf("failed to create destination %s: %w", absDest, err)
	}

	fs, err := file.New(absDest)
	if err != nil {
		return "", fmt.Errorf("failed to create file store: %w", err)
	}
	defer func() { _ = fs.Close() }()

	desc, err := oras.Copy(ctx, target, tag, fs, tag, oras.DefaultCopyOptions)
	if err != nil {
		return "", err
	}
	return desc.Digest.String(), nil
}

func newRepository(src *Source, opts RegistryOptions) (*remote.Repository, error) {
	repo, err := remote.NewRepository(fmt.Sprintf("%s/%s", src.Registry, src.Repository))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to initialize remote repository", err)
	}
	repo.PlainHTTP = opts.PlainHTTP
	repo.Client = newAuthClient(opts)
	return repo, nil
}

// newAuthClient uses Docker credentials when available.
func newAuthClient(opts RegistryOptions) *auth.Client {
	credStore, err := credentials.NewStoreFromDocker(credentials.StoreOptions{})
	if err != nil {
		slog.Debug("docker credentials unavailable", "error", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !opts.PlainHTTP && opts.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in
	}

	client := &auth.Client{
		Client: &http.Client{Transport: transport},
		Cache:  auth.NewCache(),
	}
	if credStore != nil {
		client.Credential = credentials.Credential(credStore)
	}
	return client
}
