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

package server

import (
	"mime"
	"net/http"
	"strings"
)

const (
	// DefaultAPIVersion is the default API version if none is negotiated
	DefaultAPIVersion = "v1"

	// vendorMediaPrefix precedes the version in a vendor media type,
	// e.g. application/vnd.nvidia.nutrition.v1+json.
	vendorMediaPrefix = "application/vnd.nvidia.nutrition."
)

// supportedAPIVersions lists versions clients may request.
var supportedAPIVersions = map[string]bool{
	"v1": true,
}

// negotiateAPIVersion picks the first supported version named by a vendor
// media type in the Accept header, falling back to DefaultAPIVersion.
func negotiateAPIVersion(r *http.Request) string {
	for _, entry := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(entry))
		if err != nil || !strings.HasPrefix(mediaType, vendorMediaPrefix) {
			continue
		}
		v := strings.TrimPrefix(mediaType, vendorMediaPrefix)
		v, _, _ = strings.Cut(v, "+")
		if supportedAPIVersions[v] {
			return v
		}
	}
	return DefaultAPIVersion
}

// SetAPIVersionHeader sets the API version header in the response.
func SetAPIVersionHeader(w http.ResponseWriter, version string) {
	w.Header().Set("X-API-Version", version)
}
