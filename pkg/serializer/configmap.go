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

package serializer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"

	"github.com/NVIDIA/nutrition-advisor/pkg/defaults"
	"github.com/NVIDIA/nutrition-advisor/pkg/k8s/client"
)

const (
	// ConfigMapURIScheme prefixes ConfigMap locations: cm://namespace/name[/key].
	ConfigMapURIScheme = "cm://"

	// ConfigMapDataKey is the data key base name used when a URI names no key.
	ConfigMapDataKey = "data"

	fieldManager = "nutri"
)

// ParseConfigMapURI splits cm://namespace/name[/key]. The key is empty when
// the URI does not name one.
func ParseConfigMapURI(uri string) (namespace, name, key string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	parts := strings.SplitN(strings.TrimPrefix(uri, ConfigMapURIScheme), "/", 3)
	if len(parts) < 2 {
		return "", "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])
	if len(parts) == 3 {
		key = strings.TrimSpace(parts[2])
	}

	if namespace == "" {
		return "", "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}
	return namespace, name, key, nil
}

// ReadConfigMap returns the data of a ConfigMap. Binary data is merged in
// as strings.
func ReadConfigMap(ctx context.Context, c client.Interface, namespace, name string) (map[string]string, error) {
	readCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapReadTimeout)
	defer cancel()

	cm, err := c.CoreV1().ConfigMaps(namespace).Get(readCtx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get ConfigMap %s/%s: %w", namespace, name, err)
	}

	data := make(map[string]string, len(cm.Data)+len(cm.BinaryData))
	for k, v := range cm.Data {
		data[k] = v
	}
	for k, v := range cm.BinaryData {
		data[k] = string(v)
	}
	return data, nil
}

// FromConfigMap decodes one ConfigMap entry into a new T. Without a key in
// the URI, data.yaml then data.json are tried.
func FromConfigMap[T any](ctx context.Context, c client.Interface, uri string) (*T, error) {
	namespace, name, key, err := ParseConfigMapURI(uri)
	if err != nil {
		return nil, err
	}

	data, err := ReadConfigMap(ctx, c, namespace, name)
	if err != nil {
		return nil, err
	}

	candidates := []string{key}
	if key == "" {
		candidates = []string{ConfigMapDataKey + ".yaml", ConfigMapDataKey + ".json"}
	}

	for _, k := range candidates {
		content, ok := data[k]
		if !ok {
			continue
		}
		slog.Debug("reading from ConfigMap",
			"namespace", namespace,
			"name", name,
			"key", k,
			"size", len(content))
		return Unmarshal[T](FormatFromPath(k), []byte(content))
	}

	return nil, fmt.Errorf("ConfigMap %s/%s has no entry %s", namespace, name, strings.Join(candidates, " or "))
}

// ConfigMapWriter applies serialized output to a ConfigMap with server-side
// apply, creating or replacing it.
type ConfigMapWriter struct {
	client    client.Interface
	namespace string
	name      string
	format    Format
}

// NewConfigMapWriter returns a writer for namespace/name. A nil client is
// resolved with client.GetKubeClient on first use.
func NewConfigMapWriter(c client.Interface, namespace, name string, format Format) *ConfigMapWriter {
	if format.IsUnknown() {
		slog.Warn("unknown format, defaulting to JSON", "format", format)
		format = FormatJSON
	}
	return &ConfigMapWriter{
		client:    c,
		namespace: namespace,
		name:      name,
		format:    format,
	}
}

// Serialize stores v under data.<ext> together with its format and a UTC
// timestamp.
func (w *ConfigMapWriter) Serialize(ctx context.Context, v any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	if w.client == nil {
		c, _, err := client.GetKubeClient()
		if err != nil {
			return fmt.Errorf("failed to get kubernetes client: %w", err)
		}
		w.client = c
	}

	content, err := marshal(w.format, v)
	if err != nil {
		return err
	}

	dataKey := ConfigMapDataKey + "." + w.format.Extension()
	cm := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":      "nutrition-advisor",
			"app.kubernetes.io/component": "assessment",
		}).
		WithData(map[string]string{
			dataKey:     string(content),
			"format":    string(w.format),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})

	slog.Info("applying ConfigMap",
		"namespace", w.namespace,
		"name", w.name,
		"format", w.format)

	_, err = w.client.CoreV1().ConfigMaps(w.namespace).Apply(writeCtx, cm, metav1.ApplyOptions{
		FieldManager: fieldManager,
		Force:        true,
	})
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}
	return nil
}

// Close is a no-op.
func (w *ConfigMapWriter) Close() error {
	return nil
}
