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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Reader decodes JSON or YAML from an io.Reader. Close releases the
// underlying source when it is closeable.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
}

// NewReader returns a Reader for input. Table format cannot be read.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	if format.IsUnknown() {
		return nil, fmt.Errorf("unknown format: %s", format)
	}
	if format == FormatTable {
		return nil, fmt.Errorf("table format does not support deserialization")
	}

	r := &Reader{
		format: format,
		input:  input,
	}
	if closer, ok := input.(io.Closer); ok {
		r.closer = closer
	}
	return r, nil
}

// NewFileReader opens a local path or an http(s) URL for decoding.
func NewFileReader(ctx context.Context, format Format, path string) (*Reader, error) {
	if isRemote(path) {
		data, err := NewHttpReader().ReadWithContext(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to download remote file: %w", err)
		}
		return NewReader(format, bytes.NewReader(data))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	r, err := NewReader(format, file)
	if err != nil {
		file.Close()
		return nil, err
	}
	return r, nil
}

// Deserialize decodes the next document into v.
func (r *Reader) Deserialize(v any) error {
	if r == nil {
		return fmt.Errorf("reader is nil")
	}
	if r.input == nil {
		return fmt.Errorf("input source is nil")
	}

	switch r.format {
	case FormatJSON:
		if err := json.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
		return nil
	case FormatYAML:
		if err := yaml.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}
}

// Close releases the source. Safe to call more than once.
func (r *Reader) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// Unmarshal decodes data in the given format into a new T.
func Unmarshal[T any](format Format, data []byte) (*T, error) {
	reader, err := NewReader(format, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var out T
	if err := reader.Deserialize(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FromFile decodes a local file or http(s) URL into a new T, choosing the
// format from the extension.
func FromFile[T any](ctx context.Context, path string) (*T, error) {
	format := FormatFromPath(path)
	slog.Debug("loading file", "path", path, "format", format)

	reader, err := NewFileReader(ctx, format, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil {
			slog.Warn("failed to close reader", "path", path, "error", closeErr)
		}
	}()

	var out T
	if err := reader.Deserialize(&out); err != nil {
		return nil, fmt.Errorf("failed to deserialize %q: %w", path, err)
	}
	return &out, nil
}

// ReadBytes returns the raw content of a local file or http(s) URL.
func ReadBytes(ctx context.Context, path string) ([]byte, error) {
	if isRemote(path) {
		return NewHttpReader().ReadWithContext(ctx, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func isRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
