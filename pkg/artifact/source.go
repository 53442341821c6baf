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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/distribution/reference"

	apperrors "github.com/NVIDIA/nutrition-advisor/pkg/errors"
	"github.com/NVIDIA/nutrition-advisor/pkg/serializer"
)

const (
	// OCIScheme prefixes registry sources: oci://registry/repository[:tag].
	OCIScheme = "oci://"

	// DefaultTag is pulled when an OCI source names no tag.
	DefaultTag = "latest"

	// ManifestFile is the manifest name inside a bundle directory or ConfigMap.
	ManifestFile = "manifest.yaml"
)

// SourceKind says where a bundle lives.
type SourceKind string

const (
	SourceLocal     SourceKind = "local"
	SourceOCI       SourceKind = "oci"
	SourceConfigMap SourceKind = "configmap"
)

// Source is a parsed bundle location.
type Source struct {
	Kind SourceKind

	// ManifestPath is the manifest file of a local bundle.
	ManifestPath string

	// Registry, Repository and Tag locate an OCI bundle.
	Registry   string
	Repository string
	Tag        string

	// Namespace and Name locate a ConfigMap bundle.
	Namespace string
	Name      string
}

// ParseSource accepts a bundle directory, a manifest file path,
// oci://registry/repository[:tag] or cm://namespace/name.
func ParseSource(s string) (*Source, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "artifact source is empty")
	}

	switch {
	case strings.HasPrefix(s, OCIScheme):
		return parseOCISource(strings.TrimPrefix(s, OCIScheme))
	case strings.HasPrefix(s, serializer.ConfigMapURIScheme):
		namespace, name, key, err := serializer.ParseConfigMapURI(s)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid ConfigMap source", err)
		}
		if key != "" {
			return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
				fmt.Sprintf("ConfigMap source must not name a key, got %q", key))
		}
		return &Source{Kind: SourceConfigMap, Namespace: namespace, Name: name}, nil
	default:
		return &Source{Kind: SourceLocal, ManifestPath: manifestPath(s)}, nil
	}
}

func parseOCISource(s string) (*Source, error) {
	ref, err := reference.ParseNormalizedNamed(s)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid OCI reference", err)
	}

	tag := DefaultTag
	if tagged, ok := ref.(reference.Tagged); ok {
		tag = tagged.Tag()
	}

	return &Source{
		Kind:       SourceOCI,
		Registry:   reference.Domain(ref),
		Repository: reference.Path(ref),
		Tag:        tag,
	}, nil
}

// manifestPath treats anything that is not a YAML or JSON file as a bundle
// directory holding manifest.yaml.
func manifestPath(p string) string {
	if info, err := os.Stat(p); err == nil && info.IsDir() {
		return filepath.Join(p, ManifestFile)
	}
	switch strings.ToLower(filepath.Ext(p)) {
	case ".yaml", ".yml", ".json":
		return p
	default:
		return filepath.Join(p, ManifestFile)
	}
}

// ImageReference returns registry/repository:tag for OCI sources.
func (s *Source) ImageReference() string {
	if s.Kind != SourceOCI {
		return ""
	}
	return fmt.Sprintf("%s/%s:%s", s.Registry, s.Repository, s.Tag)
}

// String returns the source in the form ParseSource accepts.
func (s *Source) String() string {
	switch s.Kind {
	case SourceOCI:
		return OCIScheme + s.ImageReference()
	case SourceConfigMap:
		return fmt.Sprintf("%s%s/%s", serializer.ConfigMapURIScheme, s.Namespace, s.Name)
	default:
		return s.ManifestPath
	}
}
