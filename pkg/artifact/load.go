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
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/nutrition-advisor/pkg/catalog"
	"github.com/NVIDIA/nutrition-advisor/pkg/defaults"
	apperrors "github.com/NVIDIA/nutrition-advisor/pkg/errors"
	"github.com/NVIDIA/nutrition-advisor/pkg/k8s/client"
	"github.com/NVIDIA/nutrition-advisor/pkg/model"
	"github.com/NVIDIA/nutrition-advisor/pkg/serializer"
)

// Bundle holds every loaded artifact. It is built once and only read
// afterwards, so it is safe to share across requests.
type Bundle struct {
	Source      string
	Manifest    Manifest
	Classifier  *model.Classifier
	Recommender *model.Recommender
	Catalog     *catalog.Catalog
	LoadedAt    time.Time
}

// LoadOptions configures Load.
type LoadOptions struct {
	// CacheDir receives pulled OCI bundles. Defaults to a temp directory.
	CacheDir string
	// Kubeconfig is used for ConfigMap sources and cm:// entries.
	Kubeconfig string
	// KubeClient overrides client discovery.
	KubeClient client.Interface
	// Registry configures OCI pulls.
	Registry RegistryOptions
}

// Load resolves source, reads its manifest and decodes all artifacts
// concurrently into a Bundle.
func Load(ctx context.Context, source string, opts LoadOptions) (*Bundle, error) {
	src, err := ParseSource(source)
	if err != nil {
		return nil, err
	}

	if src.Kind == SourceOCI {
		dir := opts.CacheDir
		if dir == "" {
			if dir, err = os.MkdirTemp("", "nutrition-bundle-*"); err != nil {
				return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create bundle cache directory", err)
			}
		}
		if _, err := Pull(ctx, src, dir, opts.Registry); err != nil {
			return nil, err
		}
		src = &Source{Kind: SourceLocal, ManifestPath: filepath.Join(dir, ManifestFile)}
	}

	loadCtx, cancel := context.WithTimeout(ctx, defaults.ArtifactLoadTimeout)
	defer cancel()

	f := &fetcher{opts: opts}
	if src.Kind == SourceConfigMap {
		if f.data, err = f.readConfigMap(loadCtx, src.Namespace, src.Name); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeUnavailable, "failed to read bundle ConfigMap", err)
		}
	} else {
		f.baseDir = filepath.Dir(src.ManifestPath)
	}

	manifestRaw, err := f.fetch(loadCtx, path.Base(filepath.ToSlash(manifestName(src))))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeUnavailable, "failed to read bundle manifest", err)
	}
	manifest, err := serializer.Unmarshal[Manifest](serializer.FormatFromPath(manifestName(src)), manifestRaw)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to decode bundle manifest", err)
	}
	if err := manifest.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "bundle manifest is invalid", err)
	}

	b, err := loadArtifacts(loadCtx, f, manifest.Artifacts)
	if err != nil {
		return nil, err
	}
	b.Source = source
	b.Manifest = *manifest
	b.LoadedAt = time.Now().UTC()

	slog.Info("artifact bundle loaded",
		"source", source,
		"name", manifest.Name,
		"release", manifest.Release,
		"classes", len(b.Classifier.Labels.Classes),
		"foods", b.Catalog.Len())

	return b, nil
}

func manifestName(src *Source) string {
	if src.Kind == SourceConfigMap {
		return ManifestFile
	}
	return src.ManifestPath
}

func loadArtifacts(ctx context.Context, f *fetcher, files Files) (*Bundle, error) {
	var (
		scaler      *model.Scaler
		labels      *model.LabelDecoder
		network     *model.Network
		childEnc    *model.FeatureEncoder
		foodEnc     *model.FeatureEncoder
		towers      *model.DualTower
		foodCatalog *catalog.Catalog
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { scaler, err = decode[model.Scaler](gctx, f, files.Scaler); return })
	g.Go(func() (err error) { labels, err = decode[model.LabelDecoder](gctx, f, files.Labels); return })
	g.Go(func() (err error) { network, err = decode[model.Network](gctx, f, files.Classifier); return })
	g.Go(func() (err error) { childEnc, err = decode[model.FeatureEncoder](gctx, f, files.ChildEncoder); return })
	g.Go(func() (err error) { foodEnc, err = decode[model.FeatureEncoder](gctx, f, files.FoodEncoder); return })
	g.Go(func() (err error) { towers, err = decode[model.DualTower](gctx, f, files.Recommender); return })
	g.Go(func() error {
		raw, err := f.fetch(gctx, files.Catalog)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", files.Catalog, err)
		}
		foodCatalog, err = catalog.Parse(entryName(files.Catalog), raw)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to load artifacts", err)
	}

	classifier, err := model.NewClassifier(scaler, network, labels)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "classifier artifacts do not fit together", err)
	}
	recommender, err := model.NewRecommender(childEnc, foodEnc, towers)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "recommender artifacts do not fit together", err)
	}

	return &Bundle{
		Classifier:  classifier,
		Recommender: recommender,
		Catalog:     foodCatalog,
	}, nil
}

func decode[T any](ctx context.Context, f *fetcher, name string) (*T, error) {
	raw, err := f.fetch(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	v, err := serializer.Unmarshal[T](serializer.FormatFromPath(entryName(name)), raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return v, nil
}

// entryName returns the last path element, which carries the extension
// for files, URLs and cm:// keys alike.
func entryName(p string) string {
	return path.Base(filepath.ToSlash(p))
}

// fetcher reads manifest entries relative to a bundle directory or from
// the bundle ConfigMap. Absolute http(s) and cm:// entries are read directly.
type fetcher struct {
	opts    LoadOptions
	baseDir string
	// data holds the bundle ConfigMap, read once before any entry.
	data map[string]string
}

func (f *fetcher) fetch(ctx context.Context, entry string) ([]byte, error) {
	switch {
	case strings.HasPrefix(entry, "http://"), strings.HasPrefix(entry, "https://"):
		return serializer.ReadBytes(ctx, entry)
	case strings.HasPrefix(entry, serializer.ConfigMapURIScheme):
		namespace, name, key, err := serializer.ParseConfigMapURI(entry)
		if err != nil {
			return nil, err
		}
		if key == "" {
			return nil, fmt.Errorf("ConfigMap entry %s names no key", entry)
		}
		data, err := f.readConfigMap(ctx, namespace, name)
		if err != nil {
			return nil, err
		}
		return lookup(data, namespace+"/"+name, key)
	case f.data != nil:
		return lookup(f.data, "bundle", entry)
	case filepath.IsAbs(entry):
		return serializer.ReadBytes(ctx, entry)
	default:
		return serializer.ReadBytes(ctx, filepath.Join(f.baseDir, entry))
	}
}

func (f *fetcher) readConfigMap(ctx context.Context, namespace, name string) (map[string]string, error) {
	c := f.opts.KubeClient
	if c == nil {
		var err error
		if c, _, err = client.GetKubeClientWithConfig(f.opts.Kubeconfig); err != nil {
			return nil, fmt.Errorf("failed to get kubernetes client: %w", err)
		}
	}
	return serializer.ReadConfigMap(ctx, c, namespace, name)
}

func lookup(data map[string]string, where, key string) ([]byte, error) {
	v, ok := data[key]
	if !ok {
		return nil, fmt.Errorf("ConfigMap %s has no key %q", where, key)
	}
	return []byte(v), nil
}
