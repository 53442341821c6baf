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

package header

import (
	"time"
)

// APIVersion is the apiVersion of every document the CLI writes.
const APIVersion = "nutrition.nvidia.com/v1"

// Kind identifies the type of a document.
type Kind string

const (
	KindAssessment     Kind = "Assessment"
	KindBodyMetrics    Kind = "BodyMetrics"
	KindBundleTransfer Kind = "BundleTransfer"
)

func (k Kind) String() string {
	return string(k)
}

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindAssessment, KindBodyMetrics, KindBundleTransfer:
		return true
	default:
		return false
	}
}

// Option configures a Header.
type Option func(*Header)

// WithMetadata sets one metadata entry.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithVersion records the tool version in metadata.
func WithVersion(version string) Option {
	return WithMetadata("version", version)
}

// New returns a header of kind stamped with the current UTC time.
func New(kind Kind, opts ...Option) Header {
	h := Header{
		Kind:       kind,
		APIVersion: APIVersion,
		Metadata: map[string]string{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

// Header carries Kubernetes-style kind, apiVersion and metadata fields.
type Header struct {
	Kind       Kind              `json:"kind" yaml:"kind"`
	APIVersion string            `json:"apiVersion" yaml:"apiVersion"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}
