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
	"log/slog"
	"path/filepath"
	"strings"
)

// Format is a serialization format.
type Format string

const (
	// FormatJSON is indented JSON.
	FormatJSON Format = "json"
	// FormatYAML is YAML with two-space indentation.
	FormatYAML Format = "yaml"
	// FormatTable is a flattened FIELD/VALUE table. Write-only.
	FormatTable Format = "table"
)

// IsUnknown reports whether f is not one of the supported formats.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable:
		return false
	default:
		return true
	}
}

// Extension returns the file extension used when storing f.
func (f Format) Extension() string {
	if f == FormatTable {
		return "txt"
	}
	return string(f)
}

// SupportedFormats returns the names of all output formats.
func SupportedFormats() []string {
	return []string{
		string(FormatJSON),
		string(FormatYAML),
		string(FormatTable),
	}
}

// FormatFromPath picks a format from a file extension, case-insensitively.
// Unknown extensions default to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".table", ".txt":
		return FormatTable
	default:
		slog.Warn("unknown file extension, defaulting to JSON", "path", path)
		return FormatJSON
	}
}
